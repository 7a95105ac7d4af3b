package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/models"
)

type clientSessionService struct {
	sessions store.SessionRepository
}

func NewClientSessionService(sessions store.SessionRepository) ClientSessionService {
	return &clientSessionService{sessions: sessions}
}

func (c *clientSessionService) Current(ctx context.Context) (models.Session, error) {
	session, err := c.sessions.Load(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Session{}, ErrNoSession
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}
	if session.IsZero() {
		return models.Session{}, ErrNoSession
	}
	return session, nil
}

func (c *clientSessionService) Save(ctx context.Context, session models.Session) error {
	if session.IsZero() {
		return ErrInvalidDataProvided
	}
	if err := c.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (c *clientSessionService) Clear(ctx context.Context) error {
	if err := c.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
