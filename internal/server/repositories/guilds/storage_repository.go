package guilds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/guildchat/internal/common"
	"github.com/dmitrijs2005/guildchat/internal/server/models"
	"github.com/dmitrijs2005/guildchat/internal/server/storage"
)

const keyPrefix = "guilds"

type StorageRepository struct {
	store    storage.Store
	accounts AccountResolver
}

func NewStorageRepository(store storage.Store, accounts AccountResolver) *StorageRepository {
	return &StorageRepository{store: store, accounts: accounts}
}

func key(id string) string {
	return keyPrefix + "/" + id
}

func (r *StorageRepository) Create(ctx context.Context, guild *models.Guild) error {
	if !models.ValidID(guild.ID) {
		return common.ErrInvalidID
	}

	_, err := r.store.Get(ctx, key(guild.ID))
	if err == nil {
		return common.ErrAlreadyExists
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("probing guild %s: %w", guild.ID, err)
	}

	return r.put(ctx, guild)
}

func (r *StorageRepository) Get(ctx context.Context, id string) (*models.Guild, error) {
	if !models.ValidID(id) {
		return nil, common.ErrInvalidID
	}

	data, err := r.store.Get(ctx, key(id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("loading guild %s: %w", id, err)
	}

	doc := &guildDoc{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: guild %s: %v", common.ErrIntegrity, id, err)
	}
	if doc.ID != id || !models.ValidName(doc.Name) {
		return nil, fmt.Errorf("%w: guild %s: incomplete record", common.ErrIntegrity, id)
	}

	return r.materialize(ctx, doc)
}

func (r *StorageRepository) Save(ctx context.Context, guild *models.Guild) error {
	if !models.ValidID(guild.ID) {
		return common.ErrInvalidID
	}
	return r.put(ctx, guild)
}

func (r *StorageRepository) ListIDs(ctx context.Context) ([]string, error) {
	return r.store.ListKeys(ctx, keyPrefix)
}

func (r *StorageRepository) put(ctx context.Context, guild *models.Guild) error {
	data, err := json.Marshal(serialize(guild))
	if err != nil {
		return fmt.Errorf("marshaling guild %s: %w", guild.ID, err)
	}
	if err := r.store.Put(ctx, key(guild.ID), data); err != nil {
		return fmt.Errorf("persisting guild %s: %w", guild.ID, err)
	}
	return nil
}

// materialize turns a persisted document back into the entity tree,
// resolving message authors through the account resolver. An author that
// is gone (or whose stored username is malformed) becomes the deleted-user
// placeholder; any other resolver failure aborts the load.
func (r *StorageRepository) materialize(ctx context.Context, doc *guildDoc) (*models.Guild, error) {
	guild := &models.Guild{
		ID:       doc.ID,
		Name:     doc.Name,
		Channels: make([]*models.Channel, 0, len(doc.Channels)),
	}

	for _, c := range doc.Channels {
		channel := &models.Channel{
			ID:       c.ID,
			Name:     c.Name,
			Messages: make([]*models.Message, 0, len(c.Messages)),
		}
		for _, m := range c.Messages {
			author, err := r.resolveAuthor(ctx, m.Author)
			if err != nil {
				return nil, err
			}
			channel.Messages = append(channel.Messages, &models.Message{
				Content: m.Content,
				Author:  author,
			})
		}
		guild.Channels = append(guild.Channels, channel)
	}

	return guild, nil
}

func (r *StorageRepository) resolveAuthor(ctx context.Context, username string) (*models.Account, error) {
	account, err := r.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrInvalidUsername) {
			return models.DeletedUserPlaceholder(), nil
		}
		return nil, fmt.Errorf("resolving author %s: %w", username, err)
	}
	return account, nil
}
