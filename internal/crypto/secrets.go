package crypto

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type bcryptHasher struct {
	cost int
}

// NewSecretHasher returns a bcrypt backed [SecretHasher]. A cost below
// bcrypt.MinCost selects bcrypt.DefaultCost.
func NewSecretHasher(cost int) SecretHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (b *bcryptHasher) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (b *bcryptHasher) HashAnswer(answer string) (string, error) {
	return b.HashPassword(normalizeAnswer(answer))
}

func (b *bcryptHasher) VerifyAnswer(hash, answer string) bool {
	return b.VerifyPassword(hash, normalizeAnswer(answer))
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
