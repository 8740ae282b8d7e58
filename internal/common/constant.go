package common

// Storage keys used by the client-side key-value store. The names are part
// of the on-disk contract and must not change between releases.
const (
	KeyToken             = "truthlens_token"
	KeyUser              = "truthlens_user"
	KeyProfile           = "truthlens_profile"
	KeyEmailVerification = "truthlens_email_verification"
	KeyTheme             = "theme"
)

// Input limits enforced before any request leaves the client.
const (
	// MaxArticleChars caps the article text accepted by a verification request.
	MaxArticleChars = 200_000

	// MaxUploadBytes caps the size of an uploaded .txt article file.
	MaxUploadBytes = 204_800
)
