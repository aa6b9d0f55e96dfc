package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/guildchat/internal/common"
	"github.com/dmitrijs2005/guildchat/internal/logging"
	"github.com/dmitrijs2005/guildchat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/guildchat/internal/server/storage"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newAccountService(t *testing.T) (*AccountService, repomanager.RepositoryManager) {
	t.Helper()
	repos := repomanager.NewStorageRepositoryManager(storage.NewMemoryStore())
	return NewAccountService(repos, testLogger()), repos
}

func TestCreateAccount_ThenAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	sessionID, err := svc.CreateAccount(ctx, "john_doe", "secret1pass", "John Doe")
	require.NoError(t, err)
	assert.Len(t, sessionID, 36)

	loginSession, err := svc.Login(ctx, "john_doe", "secret1pass")
	require.NoError(t, err)

	account, err := svc.GetAccountBySession(ctx, loginSession)
	require.NoError(t, err)
	assert.Equal(t, "john_doe", account.Username)
	assert.Equal(t, "John Doe", account.DisplayName)
}

func TestCreateAccount_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	tests := []struct {
		name        string
		username    string
		password    string
		displayName string
		wantErr     error
	}{
		{"bad username", "john doe", "secret1pass", "John", common.ErrInvalidUsername},
		{"empty username", "", "secret1pass", "John", common.ErrInvalidUsername},
		{"reserved username", "deleted_user", "secret1pass", "John", common.ErrInvalidUsername},
		{"blank display name", "john_doe", "secret1pass", "   ", common.ErrInvalidDisplayName},
		{"weak password", "john_doe", "short", "John", common.ErrPasswordPolicy},
		{"digitless password", "john_doe", "abcdefgh", "John", common.ErrPasswordPolicy},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAccount(ctx, tc.username, tc.password, tc.displayName)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// None of the rejected attempts may have persisted anything.
	usernames, err := svc.ListAllAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, usernames)
}

func TestCreateAccount_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	_, err := svc.CreateAccount(ctx, "john_doe", "secret1pass", "First")
	require.NoError(t, err)

	_, err = svc.CreateAccount(ctx, "john_doe", "other2pass", "Second")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	public, err := svc.GetPublicAccount(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, "First", public.DisplayName)
}

func TestLogin_EnumerationResistance(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	_, err := svc.CreateAccount(ctx, "real_user", "secret1pass", "Real")
	require.NoError(t, err)

	_, ghostErr := svc.Login(ctx, "ghost", "whatever1")
	_, wrongErr := svc.Login(ctx, "real_user", "wrongpass1")

	// Identical error for unknown user and wrong password.
	assert.ErrorIs(t, ghostErr, common.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, common.ErrInvalidCredentials)
	assert.Equal(t, ghostErr.Error(), wrongErr.Error())
}

func TestLogin_TrimsPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	_, err := svc.CreateAccount(ctx, "john_doe", "secret1pass", "John")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "john_doe", "  secret1pass  ")
	assert.NoError(t, err)
}

func TestGetAccountBySession_DeletedAccountRevokesSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	sessionID, err := svc.CreateAccount(ctx, "john_doe", "secret1pass", "John")
	require.NoError(t, err)

	account, err := svc.GetAccountBySession(ctx, sessionID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, account))

	_, err = svc.GetAccountBySession(ctx, sessionID)
	assert.ErrorIs(t, err, common.ErrInvalidSession)

	// The orphaned session is gone, so the second attempt reports the
	// token as unknown.
	_, err = svc.GetAccountBySession(ctx, sessionID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLogout_RevokesSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	sessionID, err := svc.CreateAccount(ctx, "john_doe", "secret1pass", "John")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sessionID))

	_, err = svc.GetAccountBySession(ctx, sessionID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetPublicAccount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	_, err := svc.CreateAccount(ctx, "john_doe", "secret1pass", "John Doe")
	require.NoError(t, err)

	public, err := svc.GetPublicAccount(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, "john_doe", public.Username)
	assert.Equal(t, "John Doe", public.DisplayName)

	// Malformed usernames read as absent, not invalid.
	_, err = svc.GetPublicAccount(ctx, "not a user!")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.GetPublicAccount(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	sessionID, err := svc.CreateAccount(ctx, "john_doe", "secret1pass", "John")
	require.NoError(t, err)
	account, err := svc.GetAccountBySession(ctx, sessionID)
	require.NoError(t, err)

	newName := "Johnny"
	newPassword := "fresh2pass"
	_, err = svc.UpdateAccount(ctx, account, AccountUpdate{
		DisplayName: &newName,
		Password:    &newPassword,
	})
	require.NoError(t, err)

	// Old password no longer works, new one does.
	_, err = svc.Login(ctx, "john_doe", "secret1pass")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "john_doe", "fresh2pass")
	assert.NoError(t, err)

	public, err := svc.GetPublicAccount(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, "Johnny", public.DisplayName)
}

func TestUpdateAccount_FailedValidationWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	sessionID, err := svc.CreateAccount(ctx, "john_doe", "secret1pass", "John")
	require.NoError(t, err)
	account, err := svc.GetAccountBySession(ctx, sessionID)
	require.NoError(t, err)

	// Valid display name together with an invalid password: the whole
	// update must be rejected before any write.
	newName := "Johnny"
	badPassword := "short"
	_, err = svc.UpdateAccount(ctx, account, AccountUpdate{
		DisplayName: &newName,
		Password:    &badPassword,
	})
	assert.ErrorIs(t, err, common.ErrPasswordPolicy)

	public, err := svc.GetPublicAccount(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, "John", public.DisplayName)

	_, err = svc.Login(ctx, "john_doe", "secret1pass")
	assert.NoError(t, err)
}

func TestListAllAccounts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAccountService(t)

	_, err := svc.CreateAccount(ctx, "alice", "secret1pass", "Alice")
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, "bob", "secret1pass", "Bob")
	require.NoError(t, err)

	usernames, err := svc.ListAllAccounts(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, usernames)
}
