// Package api defines the client strategies for talking to the TruthLens
// backend. The HTTP implementation in this package talks to the real
// service; package mockapi provides drop-in simulators. Which one a page
// ends up using is decided once, at composition time.
package api

import (
	"context"

	"github.com/dmitrijs2005/truthlens/internal/client/models"
)

// VerificationClient produces a verification result for an article text.
// An empty token marks the request as a guest request.
type VerificationClient interface {
	Verify(ctx context.Context, token, text string) (*models.VerificationResult, error)
}

// AuthClient covers registration, login and the authenticated identity probe.
type AuthClient interface {
	Register(ctx context.Context, email, username, password string) (*models.Session, error)
	Login(ctx context.Context, username, password string) (*models.Session, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// ProfileClient covers profile reads/writes and the two-step email-change
// verification flow.
type ProfileClient interface {
	GetProfile(ctx context.Context, token string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.Profile, error)
	SendEmailVerification(ctx context.Context, token, newEmail string) (*models.EmailChallenge, error)
	VerifyEmail(ctx context.Context, token, challengeID, code string) error
}

// Pinger is an optional liveness probe. Both the HTTP client and the mocks
// implement it; the CLI uses it once on startup.
type Pinger interface {
	Ping(ctx context.Context) error
}
