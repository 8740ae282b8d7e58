package models

import "time"

// EmailChallenge is a short-lived one-time code used to confirm ownership
// of a new email address before a profile change is applied.
//
// Only a bcrypt hash of the code is stored. DevCode carries the plain code
// back to the caller in development mode so the flow can be exercised
// without a mail transport; it is empty otherwise.
type EmailChallenge struct {
	VerificationID string    `json:"verificationId"`
	Email          string    `json:"email"`
	CodeHash       string    `json:"codeHash"`
	DevCode        string    `json:"devCode,omitempty"`
	ExpiresAt      time.Time `json:"expiresAt"`
	Attempts       int       `json:"attempts"`
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c *EmailChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
