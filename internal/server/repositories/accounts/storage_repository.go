package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/guildchat/internal/common"
	"github.com/dmitrijs2005/guildchat/internal/server/models"
	"github.com/dmitrijs2005/guildchat/internal/server/storage"
)

const keyPrefix = "accounts"

type StorageRepository struct {
	store storage.Store
}

func NewStorageRepository(store storage.Store) *StorageRepository {
	return &StorageRepository{store: store}
}

func key(username string) string {
	return keyPrefix + "/" + username
}

func (r *StorageRepository) Create(ctx context.Context, account *models.Account) error {
	if !models.ValidUsername(account.Username) {
		return common.ErrInvalidUsername
	}

	_, err := r.store.Get(ctx, key(account.Username))
	if err == nil {
		return common.ErrAlreadyExists
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("probing account %s: %w", account.Username, err)
	}

	return r.put(ctx, account)
}

func (r *StorageRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if !models.ValidUsername(username) {
		return nil, common.ErrInvalidUsername
	}
	if username == models.DeletedUsername {
		return nil, common.ErrNotFound
	}

	data, err := r.store.Get(ctx, key(username))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("loading account %s: %w", username, err)
	}

	account := &models.Account{}
	if err := json.Unmarshal(data, account); err != nil {
		return nil, fmt.Errorf("%w: account %s: %v", common.ErrIntegrity, username, err)
	}
	if account.Username != username || account.Password.Value == "" || account.Password.Salt == "" {
		return nil, fmt.Errorf("%w: account %s: incomplete record", common.ErrIntegrity, username)
	}

	return account, nil
}

func (r *StorageRepository) Save(ctx context.Context, account *models.Account) error {
	if !models.ValidUsername(account.Username) {
		return common.ErrInvalidUsername
	}
	return r.put(ctx, account)
}

func (r *StorageRepository) Delete(ctx context.Context, username string) error {
	if !models.ValidUsername(username) {
		return common.ErrInvalidUsername
	}
	return r.store.Delete(ctx, key(username))
}

func (r *StorageRepository) ListUsernames(ctx context.Context) ([]string, error) {
	return r.store.ListKeys(ctx, keyPrefix)
}

func (r *StorageRepository) put(ctx context.Context, account *models.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshaling account %s: %w", account.Username, err)
	}
	if err := r.store.Put(ctx, key(account.Username), data); err != nil {
		return fmt.Errorf("persisting account %s: %w", account.Username, err)
	}
	return nil
}
