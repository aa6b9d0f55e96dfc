// Package services contains the collaborator-facing business logic. Each
// operation is a synchronous call returning a result or a typed failure,
// suitable for wrapping in any RPC or HTTP handler.
package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/guildchat/internal/common"
	"github.com/dmitrijs2005/guildchat/internal/logging"
	"github.com/dmitrijs2005/guildchat/internal/server/creds"
	"github.com/dmitrijs2005/guildchat/internal/server/models"
	"github.com/dmitrijs2005/guildchat/internal/server/repositories/repomanager"
)

// PublicAccount is the credential-free projection of an account handed to
// untrusted callers.
type PublicAccount struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// AccountUpdate carries the optional fields of an account update. Nil
// means "leave unchanged".
type AccountUpdate struct {
	Password    *string
	DisplayName *string
}

// AccountService implements registration, authentication, and account
// maintenance on top of the repositories and the credential engine.
type AccountService struct {
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

func NewAccountService(repos repomanager.RepositoryManager, logger logging.Logger) *AccountService {
	return &AccountService{repos: repos, logger: logger}
}

// CreateAccount validates all three fields, persists the new account, and
// returns a session token for it. The username is the immutable primary
// key; a duplicate fails with common.ErrAlreadyExists and leaves the
// first record untouched.
func (s *AccountService) CreateAccount(ctx context.Context, username, password, displayName string) (string, error) {
	username = strings.TrimSpace(username)
	if !models.ValidUsername(username) || username == models.DeletedUsername {
		return "", common.ErrInvalidUsername
	}
	if strings.TrimSpace(displayName) == "" {
		return "", common.ErrInvalidDisplayName
	}
	if err := creds.CheckPolicy(password); err != nil {
		return "", err
	}

	account := &models.Account{
		Username:    username,
		DisplayName: strings.TrimSpace(displayName),
		Password:    newCredential(password),
	}

	if err := s.repos.Accounts().Create(ctx, account); err != nil {
		return "", err
	}

	sessionID, err := s.repos.Sessions().Issue(ctx, username)
	if err != nil {
		return "", fmt.Errorf("issuing session: %w", err)
	}

	s.logger.Info(ctx, "account created", "username", username)
	return sessionID, nil
}

// Login verifies the credentials and issues a session. Unknown usernames
// and wrong passwords produce the identical common.ErrInvalidCredentials;
// the caller learns nothing about which factor failed. A derivation runs
// even for unknown usernames to keep response timing uniform.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	account, err := s.repos.Accounts().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrInvalidUsername) {
			creds.DeriveKey(password, creds.NewSalt())
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("loading account: %w", err)
	}

	salt, key, err := decodeCredential(account.Password)
	if err != nil {
		return "", err
	}
	if !creds.Verify(password, salt, key) {
		return "", common.ErrInvalidCredentials
	}

	sessionID, err := s.repos.Sessions().Issue(ctx, account.Username)
	if err != nil {
		return "", fmt.Errorf("issuing session: %w", err)
	}

	s.logger.Info(ctx, "login", "username", account.Username)
	return sessionID, nil
}

// Logout revokes the session. Revoking an unknown token is a no-op.
func (s *AccountService) Logout(ctx context.Context, sessionID string) error {
	return s.repos.Sessions().Revoke(ctx, sessionID)
}

// GetAccountBySession resolves a session token to its account. A session
// whose backing account has been deleted is revoked on the spot and the
// call fails with common.ErrInvalidSession; this is how sessions of
// removed accounts get pruned.
func (s *AccountService) GetAccountBySession(ctx context.Context, sessionID string) (*models.Account, error) {
	session, err := s.repos.Sessions().Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	account, err := s.repos.Accounts().GetByUsername(ctx, session.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrInvalidUsername) {
			if revokeErr := s.repos.Sessions().Revoke(ctx, sessionID); revokeErr != nil {
				s.logger.Warn(ctx, "revoking orphaned session failed", "error", revokeErr)
			}
			return nil, common.ErrInvalidSession
		}
		return nil, fmt.Errorf("loading account: %w", err)
	}

	return account, nil
}

// GetPublicAccount returns the public projection of an account. Unlike
// GetAccountBySession it never exposes credentials, and a malformed
// username is reported as absent rather than invalid.
func (s *AccountService) GetPublicAccount(ctx context.Context, username string) (*PublicAccount, error) {
	account, err := s.repos.Accounts().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrInvalidUsername) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &PublicAccount{Username: account.Username, DisplayName: account.DisplayName}, nil
}

// UpdateAccount applies the present fields of the update, re-validating
// each with the same rules as creation, and persists the full record. A
// failed validation leaves the stored record untouched.
func (s *AccountService) UpdateAccount(ctx context.Context, account *models.Account, update AccountUpdate) (*models.Account, error) {
	if update.Password != nil {
		if err := creds.CheckPolicy(*update.Password); err != nil {
			return nil, err
		}
	}
	if update.DisplayName != nil && strings.TrimSpace(*update.DisplayName) == "" {
		return nil, common.ErrInvalidDisplayName
	}

	// All validation passed; mutate in memory, then persist once.
	if update.Password != nil {
		account.Password = newCredential(*update.Password)
	}
	if update.DisplayName != nil {
		account.DisplayName = strings.TrimSpace(*update.DisplayName)
	}

	if err := s.repos.Accounts().Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes the persisted record. Sessions and authored
// messages are not touched: sessions die on their next resolution, and
// authorship resolves to the deleted-user placeholder from then on.
func (s *AccountService) DeleteAccount(ctx context.Context, account *models.Account) error {
	if err := s.repos.Accounts().Delete(ctx, account.Username); err != nil {
		return err
	}
	s.logger.Info(ctx, "account deleted", "username", account.Username)
	return nil
}

// ListAllAccounts enumerates persisted usernames. This is a directory
// lookup, not an authorization surface.
func (s *AccountService) ListAllAccounts(ctx context.Context) ([]string, error) {
	return s.repos.Accounts().ListUsernames(ctx)
}

func newCredential(password string) models.Credential {
	salt := creds.NewSalt()
	key := creds.DeriveKey(password, salt)
	return models.Credential{
		Value: hex.EncodeToString(key),
		Salt:  hex.EncodeToString(salt),
	}
}

func decodeCredential(c models.Credential) (salt, key []byte, err error) {
	salt, err = hex.DecodeString(c.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: credential salt: %v", common.ErrIntegrity, err)
	}
	key, err = hex.DecodeString(c.Value)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: credential value: %v", common.ErrIntegrity, err)
	}
	return salt, key, nil
}
