package models

// Profile is the full account view shown on the profile page.
type Profile struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Bio        string `json:"bio"`
	JoinedDate string `json:"joinedDate"`
}

// ProfileUpdate carries the editable profile fields. Password is optional:
// an empty string means "keep the current one".
type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Password string `json:"password,omitempty"`
}
