// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// EmailCtxKey is the key used to store the authenticated vault owner's email
// in the context. The auth middleware writes it after validating the bearer
// token.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.EmailCtxKey, "owner@example.com")
var EmailCtxKey = contextKey("email")

// GetEmailFromContext retrieves the vault owner's email from the context.
//
// Returns the email and an ok flag:
//   - ok == true : value is found, is a string and is not empty
//   - ok == false: value is missing, empty or has an unexpected type
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailCtxKey).(string)
	return email, ok && email != ""
}

// WithEmail returns a copy of ctx carrying email under [EmailCtxKey].
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, EmailCtxKey, email)
}
