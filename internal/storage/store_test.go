package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfiller/docfiller/internal/model"
)

func submission(location string) model.Submission {
	return model.Submission{
		MasterData:  model.MasterData{CustomerNumber: "KD-1", FirstName: "Anna", LastName: "Muster"},
		GeneralInfo: model.GeneralInfo{ActivityLocation: location},
		WorkingTime: model.WorkingTime{Type: model.WorkingTimeConstant},
		Income:      model.Income{Type: model.IncomeExisting},
	}
}

// runStoreContract exercises the DraftStore behavior every backend must
// share.
func runStoreContract(t *testing.T, store DraftStore) {
	t.Helper()

	// Miss is a normal not-found outcome.
	_, err := store.Get("nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	// Update without create fails the same way.
	_, err = store.Update("nobody", submission("Berlin"))
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := store.Create("user-1", submission("Berlin"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := store.Get("user-1")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", got.FormData.GeneralInfo.ActivityLocation)

	// Ids increase monotonically across users.
	second, err := store.Create("user-2", submission("Hamburg"))
	require.NoError(t, err)
	assert.Greater(t, second.ID, created.ID)

	// Update preserves id and CreatedAt, replaces data, refreshes UpdatedAt.
	updated, err := store.Update("user-1", submission("München"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	assert.Equal(t, "München", updated.FormData.GeneralInfo.ActivityLocation)

	got, err = store.Get("user-1")
	require.NoError(t, err)
	assert.Equal(t, "München", got.FormData.GeneralInfo.ActivityLocation)
}

func TestMemStore(t *testing.T) {
	runStoreContract(t, NewMemStore())
}

func TestJSONStore(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	require.NoError(t, err)
	runStoreContract(t, store)
}

func TestJSONStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir)
	require.NoError(t, err)
	_, err = store.Create("user-1", submission("Berlin"))
	require.NoError(t, err)

	reopened, err := NewJSONStore(dir)
	require.NoError(t, err)
	got, err := reopened.Get("user-1")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", got.FormData.GeneralInfo.ActivityLocation)
}

func TestJSONStore_CorruptFileBackedUp(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "drafts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err = store.Get("user-1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	_, statErr := os.Stat(path + ".corrupt")
	assert.NoError(t, statErr, "corrupt file should be backed up")
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	defer store.Close()
	runStoreContract(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = store.Create("user-1", submission("Berlin"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get("user-1")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", got.FormData.GeneralInfo.ActivityLocation)
}
