package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/guildchat/internal/common"
	"github.com/dmitrijs2005/guildchat/internal/server/models"
	"github.com/dmitrijs2005/guildchat/internal/server/storage"
)

// MaxSessionAge is the absolute session lifetime. It is a constant, not
// configuration: every deployed node must agree on it.
const MaxSessionAge = 24 * time.Hour

const keyPrefix = "sessions"

// Tokens are UUID-shaped: 36 characters of hex digits and hyphens.
var tokenRegex = regexp.MustCompile(`^[0-9a-fA-F-]{36}$`)

// nowFn is a test seam for the clock.
var nowFn = time.Now

type StorageRepository struct {
	store storage.Store
}

func NewStorageRepository(store storage.Store) *StorageRepository {
	return &StorageRepository{store: store}
}

func key(id string) string {
	return keyPrefix + "/" + id
}

func (r *StorageRepository) Issue(ctx context.Context, username string) (string, error) {
	// Regenerate on the (cosmically unlikely) collision with an
	// existing record rather than overwrite someone else's session.
	var id string
	for {
		id = uuid.NewString()
		_, err := r.store.Get(ctx, key(id))
		if errors.Is(err, common.ErrNotFound) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("probing session id: %w", err)
		}
	}

	session := &models.Session{
		ID:        id,
		Username:  username,
		CreatedAt: nowFn().UnixMilli(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("marshaling session: %w", err)
	}
	if err := r.store.Put(ctx, key(id), data); err != nil {
		return "", fmt.Errorf("persisting session: %w", err)
	}
	return id, nil
}

func (r *StorageRepository) Resolve(ctx context.Context, id string) (*models.Session, error) {
	// Malformed tokens fail fast without a storage probe.
	if !tokenRegex.MatchString(id) {
		return nil, common.ErrInvalidSession
	}

	data, err := r.store.Get(ctx, key(id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}

	session := &models.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		r.discard(ctx, id)
		return nil, common.ErrInvalidSession
	}

	if !models.ValidUsername(session.Username) {
		r.discard(ctx, id)
		return nil, common.ErrInvalidSession
	}
	if session.CreatedAt <= 0 {
		r.discard(ctx, id)
		return nil, common.ErrInvalidSession
	}

	age := nowFn().Sub(time.UnixMilli(session.CreatedAt))
	if age > MaxSessionAge {
		r.discard(ctx, id)
		return nil, common.ErrSessionExpired
	}

	return session, nil
}

func (r *StorageRepository) Revoke(ctx context.Context, id string) error {
	if !tokenRegex.MatchString(id) {
		return nil
	}
	return r.store.Delete(ctx, key(id))
}

// discard removes a record that failed validation. The deletion is best
// effort; the caller's error already describes the real problem.
func (r *StorageRepository) discard(ctx context.Context, id string) {
	_ = r.store.Delete(ctx, key(id))
}
