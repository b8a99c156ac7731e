package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfiller/docfiller/internal/model"
	"github.com/docfiller/docfiller/internal/storage"
)

func TestFormService_SaveDraftUpserts(t *testing.T) {
	svc := NewFormService(storage.NewMemStore())

	sub := model.Submission{
		GeneralInfo: model.GeneralInfo{ActivityLocation: "Berlin"},
	}
	created, err := svc.SaveDraft("user-1", sub)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	sub.GeneralInfo.ActivityLocation = "Hamburg"
	updated, err := svc.SaveDraft("user-1", sub)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "second save must update, not create")
	assert.Equal(t, "Hamburg", updated.FormData.GeneralInfo.ActivityLocation)

	got, err := svc.GetDraft("user-1")
	require.NoError(t, err)
	assert.Equal(t, "Hamburg", got.FormData.GeneralInfo.ActivityLocation)
}

func TestFormService_GetDraftMiss(t *testing.T) {
	svc := NewFormService(storage.NewMemStore())
	_, err := svc.GetDraft("unknown")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
