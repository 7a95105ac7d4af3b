package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
)

const sessionsTable = "session"

// sessionRepository keeps the single client session in a one-row SQLite
// table (id is always 1).
type sessionRepository struct {
	*DB
	logger *logger.Logger
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *sessionRepository) Save(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	query, args, err := s.builder().
		Insert(sessionsTable).
		Columns("id", "email", "vault_key", "token", "created_at").
		Values(1, session.Email, session.VaultKey, session.Token, session.CreatedAt.UTC()).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"email = excluded.email, vault_key = excluded.vault_key, token = excluded.token, created_at = excluded.created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.Save").Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *sessionRepository) Load(ctx context.Context) (models.Session, error) {
	query, args, err := s.builder().
		Select("email", "vault_key", "token", "created_at").
		From(sessionsTable).
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var session models.Session
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&session.Email, &session.VaultKey, &session.Token, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.Load").Msg("failed to load session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return session, nil
}

func (s *sessionRepository) Clear(ctx context.Context) error {
	query, args, err := s.builder().Delete(sessionsTable).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.Clear").Msg("failed to clear session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
