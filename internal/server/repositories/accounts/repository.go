// Package accounts implements persistence for account records. Each
// account is one document under accounts/<username>.json; the username is
// the immutable primary key.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/guildchat/internal/server/models"
)

type Repository interface {
	// Create persists a new account. It fails with common.ErrAlreadyExists
	// if a record with the same username is already stored.
	Create(ctx context.Context, account *models.Account) error

	// GetByUsername loads an account. The username is trimmed and
	// shape-validated before any storage access; a malformed one fails
	// with common.ErrInvalidUsername. The reserved deleted-user sentinel
	// is reported as common.ErrNotFound: it exists only to satisfy
	// back-references from historical messages.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// Save persists the full current state of an existing account.
	Save(ctx context.Context, account *models.Account) error

	// Delete removes the account record. It does not cascade to sessions
	// or authored messages; those are pruned lazily elsewhere.
	Delete(ctx context.Context, username string) error

	// ListUsernames enumerates all persisted account identifiers.
	ListUsernames(ctx context.Context) ([]string, error)
}
