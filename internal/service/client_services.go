package service

import (
	"github.com/MKhiriev/go-file-vault/internal/adapter"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/store"
)

type ClientServices struct {
	SessionService ClientSessionService
	VaultService   ClientVaultService
}

func NewClientServices(localStore *store.ClientStorages, api adapter.VaultAPI, logger *logger.Logger) *ClientServices {
	sessions := NewClientSessionService(localStore.SessionRepository)

	return &ClientServices{
		SessionService: sessions,
		VaultService:   NewClientVaultService(api, sessions, logger),
	}
}
