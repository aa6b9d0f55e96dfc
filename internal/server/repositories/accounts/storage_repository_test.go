package accounts

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/guildchat/internal/common"
	"github.com/dmitrijs2005/guildchat/internal/server/models"
	"github.com/dmitrijs2005/guildchat/internal/server/storage"
)

func newRepo(t *testing.T) (*StorageRepository, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewStorageRepository(store), store
}

func testAccount(username string) *models.Account {
	return &models.Account{
		Username:    username,
		DisplayName: "Test User",
		Password: models.Credential{
			Value: "deadbeef",
			Salt:  "cafe",
		},
	}
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.Create(ctx, testAccount("john_doe")))

	account, err := repo.GetByUsername(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, "john_doe", account.Username)
	assert.Equal(t, "Test User", account.DisplayName)
	assert.Equal(t, "deadbeef", account.Password.Value)
	assert.Equal(t, "cafe", account.Password.Salt)
}

func TestCreate_DuplicateKeepsFirstRecord(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	first := testAccount("john_doe")
	first.DisplayName = "First"
	require.NoError(t, repo.Create(ctx, first))

	second := testAccount("john_doe")
	second.DisplayName = "Second"
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	stored, err := repo.GetByUsername(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, "First", stored.DisplayName)
}

func TestGetByUsername_TrimsAndValidates(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)
	require.NoError(t, repo.Create(ctx, testAccount("john_doe")))

	account, err := repo.GetByUsername(ctx, "  john_doe  ")
	require.NoError(t, err)
	assert.Equal(t, "john_doe", account.Username)

	for _, username := range []string{"", "   ", "john doe", "jo.hn", "../etc"} {
		_, err := repo.GetByUsername(ctx, username)
		assert.ErrorIs(t, err, common.ErrInvalidUsername, "username %q", username)
	}
}

func TestGetByUsername_DeletedSentinelIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepo(t)

	// Even a physically present sentinel record must stay invisible.
	data, _ := json.Marshal(models.DeletedUserPlaceholder())
	require.NoError(t, store.Put(ctx, "accounts/"+models.DeletedUsername, data))

	_, err := repo.GetByUsername(ctx, models.DeletedUsername)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetByUsername_IntegrityErrors(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepo(t)

	tests := []struct {
		name string
		data []byte
	}{
		{"broken json", []byte(`{`)},
		{"missing password", []byte(`{"username":"john_doe","displayName":"J"}`)},
		{"missing salt", []byte(`{"username":"john_doe","displayName":"J","password":{"value":"aa"}}`)},
		{"username mismatch", []byte(`{"username":"other","displayName":"J","password":{"value":"aa","salt":"bb"}}`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "accounts/john_doe", tc.data))

			_, err := repo.GetByUsername(ctx, "john_doe")
			assert.ErrorIs(t, err, common.ErrIntegrity)
		})
	}
}

func TestSave_UpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	account := testAccount("john_doe")
	require.NoError(t, repo.Create(ctx, account))

	account.DisplayName = "Renamed"
	require.NoError(t, repo.Save(ctx, account))

	stored, err := repo.GetByUsername(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.DisplayName)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.Create(ctx, testAccount("john_doe")))
	require.NoError(t, repo.Delete(ctx, "john_doe"))

	_, err := repo.GetByUsername(ctx, "john_doe")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Deleting again is fine.
	require.NoError(t, repo.Delete(ctx, "john_doe"))
}

func TestListUsernames(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.Create(ctx, testAccount("alice")))
	require.NoError(t, repo.Create(ctx, testAccount("bob")))

	usernames, err := repo.ListUsernames(ctx)
	require.NoError(t, err)
	sort.Strings(usernames)
	assert.Equal(t, []string{"alice", "bob"}, usernames)
}

func TestRoundTrip_Serialization(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepo(t)

	account := testAccount("john_doe")
	require.NoError(t, repo.Create(ctx, account))

	// The persisted document stores scalars only: no derived state, no
	// embedded entities.
	data, err := store.Get(ctx, "accounts/john_doe")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.ElementsMatch(t, []string{"username", "displayName", "password"}, keysOf(doc))

	loaded, err := repo.GetByUsername(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, account, loaded)
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
