package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		code string
		want ErrorClassification
	}{
		{pgerrcode.ConnectionFailure, Retryable},
		{pgerrcode.SerializationFailure, Retryable},
		{pgerrcode.DeadlockDetected, Retryable},
		{pgerrcode.CannotConnectNow, Retryable},
		{pgerrcode.UniqueViolation, NonRetryable},
		{pgerrcode.SyntaxError, NonRetryable},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: tt.code})
			assert.Equal(t, tt.want, c.Classify(err))
		})
	}

	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.True(t, c.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, c.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(fmt.Errorf("x: %w", sqlite3.Error{Code: sqlite3.ErrLocked})))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))

	assert.True(t, c.IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.True(t, c.IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}))
	assert.False(t, c.IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}))
	assert.False(t, c.IsUniqueViolation(errors.New("plain")))
}

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, IsPostgresDSN("postgres://u:p@h/db"))
	assert.True(t, IsPostgresDSN("postgresql://h/db"))
	assert.False(t, IsPostgresDSN("vault.db"))
	assert.False(t, IsPostgresDSN("file:vault.db?cache=shared"))
}
