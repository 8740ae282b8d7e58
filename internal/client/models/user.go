package models

// User is the minimal account identity returned by login/register and
// cached alongside the session token.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session couples an opaque backend token with the user it belongs to.
// The client never inspects the token; it only stores it and replays it
// as a bearer credential.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
