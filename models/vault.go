package models

import "time"

// Vault is the server-side account record. One vault belongs to exactly one
// email address and owns every file uploaded with that email.
//
// Secrets are never stored in the clear: the password and the security
// answer are bcrypt hashes and the vault key is kept as an HMAC digest.
type Vault struct {
	// VaultID is the internal identifier. Not exposed via JSON.
	VaultID int64 `json:"-"`

	// Email identifies the vault owner and is unique across all vaults.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the master password.
	PasswordHash string `json:"-"`

	// KeyHash is the HMAC-SHA256 digest of the vault key handed out at
	// creation time.
	KeyHash string `json:"-"`

	// SecurityQuestion is stored in the clear so it can be shown during
	// recovery.
	SecurityQuestion string `json:"security_question"`

	// SecurityAnswerHash is the bcrypt hash of the normalised answer.
	SecurityAnswerHash string `json:"-"`

	// FailedAttempts counts consecutive failed logins.
	FailedAttempts int `json:"-"`

	// Locked is set once FailedAttempts reaches the lock threshold. A locked
	// vault only accepts identity verification.
	Locked bool `json:"locked"`

	// Destroyed marks a tombstone left after the vault was destroyed. Its
	// secrets are cleared and every call except re-creation answers 410.
	Destroyed bool `json:"destroyed"`

	// DestroyedAt is set together with Destroyed.
	DestroyedAt *time.Time `json:"destroyed_at,omitempty"`

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with Vault.
func (v Vault) TableName() string {
	return "vaults"
}

// SecurityQuestions lists the recovery questions offered at registration.
// The first one is the default.
var SecurityQuestions = []string{
	"Mothers Maiden Name",
	"First Pet Name",
	"Favorite Teacher",
}
