// Package guilds implements persistence for the guild → channel → message
// hierarchy. A guild persists as one document under guilds/<id>.json;
// message authors are stored as username strings and resolved into full
// accounts when the guild is loaded.
package guilds

import (
	"context"

	"github.com/dmitrijs2005/guildchat/internal/server/models"
)

// AccountResolver resolves message author back-references at load time.
// The accounts repository satisfies it.
type AccountResolver interface {
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
}

type Repository interface {
	// Create persists a new guild. It fails with common.ErrAlreadyExists
	// if a guild with the same id is already stored.
	Create(ctx context.Context, guild *models.Guild) error

	// Get loads a guild by id. The id is shape-validated before any
	// storage access. Messages whose author no longer resolves carry the
	// deleted-user placeholder; a guild load never fails because one
	// historical author was deleted.
	Get(ctx context.Context, id string) (*models.Guild, error)

	// Save persists the full current state of an existing guild,
	// including all channels and messages.
	Save(ctx context.Context, guild *models.Guild) error

	// ListIDs enumerates all persisted guild identifiers.
	ListIDs(ctx context.Context) ([]string, error)
}
