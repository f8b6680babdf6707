package service

import (
	"github.com/MKhiriev/go-note-vault/internal/config"
	"github.com/MKhiriev/go-note-vault/internal/crypto"
	"github.com/MKhiriev/go-note-vault/internal/logger"
	"github.com/MKhiriev/go-note-vault/internal/session"
	"github.com/MKhiriev/go-note-vault/internal/store"
	"github.com/MKhiriev/go-note-vault/internal/utils"
)

type Services struct {
	AccountService AccountService
	NoteService    NoteService
}

func NewServices(storages *store.Storages, keychain crypto.KeyChainService, cache *session.Cache, cfg config.App, logger *logger.Logger) *Services {
	ids := utils.NewUUIDGenerator()
	return &Services{
		AccountService: NewAccountService(storages.ProfileRepository, keychain, cache, logger,
			WithPassphraseLength(cfg.PassphraseLength),
			WithIDGenerator(ids),
		),
		NoteService: NewNoteService(storages.ProfileRepository, storages.NoteRepository, keychain, cache, ids, logger),
	}
}
