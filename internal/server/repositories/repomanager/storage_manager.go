package repomanager

import (
	"github.com/dmitrijs2005/guildchat/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/guildchat/internal/server/repositories/guilds"
	"github.com/dmitrijs2005/guildchat/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/guildchat/internal/server/storage"
)

// StorageRepositoryManager wires all repositories onto one Store. The
// guild repository resolves message authors through the account
// repository created here.
type StorageRepositoryManager struct {
	accounts *accounts.StorageRepository
	sessions *sessions.StorageRepository
	guilds   *guilds.StorageRepository
}

func NewStorageRepositoryManager(store storage.Store) *StorageRepositoryManager {
	accountRepo := accounts.NewStorageRepository(store)
	return &StorageRepositoryManager{
		accounts: accountRepo,
		sessions: sessions.NewStorageRepository(store),
		guilds:   guilds.NewStorageRepository(store, accountRepo),
	}
}

func (m *StorageRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *StorageRepositoryManager) Sessions() sessions.Repository {
	return m.sessions
}

func (m *StorageRepositoryManager) Guilds() guilds.Repository {
	return m.guilds
}
