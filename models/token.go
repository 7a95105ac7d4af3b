package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued after a successful vault login.
//
// The subject claim carries the vault owner's email; it is cached in Email
// after parsing so handlers do not have to touch claims.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent in the Authorization header.
	SignedString string `json:"-"`

	// Email is the parsed subject.
	Email string `json:"-"`
}

// GetEmail returns the subject claim.
func (t *Token) GetEmail() (string, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", errors.New("empty subject")
	}
	return subject, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
