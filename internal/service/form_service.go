// Package service ties the draft store and the fill pipeline together for
// the transport layers (HTTP handlers and MCP tools).
package service

import (
	"errors"

	"github.com/docfiller/docfiller/internal/model"
	"github.com/docfiller/docfiller/internal/storage"
)

// FormService owns draft persistence.
type FormService struct {
	store storage.DraftStore
}

func NewFormService(store storage.DraftStore) *FormService {
	return &FormService{store: store}
}

// GetDraft returns the stored draft for a user id, or storage.ErrNotFound.
func (s *FormService) GetDraft(userID string) (*model.Draft, error) {
	return s.store.Get(userID)
}

// SaveDraft upserts: the first save for a user id creates the record,
// subsequent saves replace the form data in place.
func (s *FormService) SaveDraft(userID string, data model.Submission) (*model.Draft, error) {
	draft, err := s.store.Update(userID, data)
	if errors.Is(err, storage.ErrNotFound) {
		return s.store.Create(userID, data)
	}
	return draft, err
}
