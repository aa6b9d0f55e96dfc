// Package sessions implements the session store: opaque random tokens
// mapped to a username with an absolute creation time. Validity is
// re-checked on every resolution; there is no background sweep, so a
// stale record survives on disk only until the next time it is looked up.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/guildchat/internal/server/models"
)

type Repository interface {
	// Issue generates a fresh token for the username, persists the
	// session record, and returns the token.
	Issue(ctx context.Context, username string) (string, error)

	// Resolve loads and validates the session for a token.
	//
	// Failure modes:
	//   - common.ErrInvalidSession for a token that does not match the
	//     expected lexical shape (no storage access happens);
	//   - common.ErrNotFound for an absent record;
	//   - common.ErrInvalidSession for a structurally broken record;
	//   - common.ErrSessionExpired for a record past its maximum age.
	//
	// A broken or expired record is deleted as a side effect of the
	// failed resolution; Resolve is not read-only.
	Resolve(ctx context.Context, id string) (*models.Session, error)

	// Revoke deletes the session for a token. Revoking an absent or
	// malformed token is a no-op.
	Revoke(ctx context.Context, id string) error
}
