package models

import "time"

// Session is what the client keeps between screens and runs: the vault
// owner's email, the vault key they typed at login and the bearer token the
// server issued. It has no expiry of its own; the token does.
type Session struct {
	Email     string    `json:"email"`
	VaultKey  string    `json:"vault_key"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// IsZero reports whether the session carries no identity.
func (s Session) IsZero() bool {
	return s.Email == "" || s.VaultKey == ""
}
