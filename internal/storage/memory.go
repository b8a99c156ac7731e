package storage

import (
	"sync"
	"time"

	"github.com/docfiller/docfiller/internal/model"
)

// MemStore keeps drafts in a plain map. It is the default backend and the
// one the handler tests run against.
type MemStore struct {
	mu     sync.RWMutex
	drafts map[string]*model.Draft
	nextID int64
	now    func() time.Time
}

// NewMemStore creates an empty in-memory draft store.
func NewMemStore() *MemStore {
	return &MemStore{
		drafts: make(map[string]*model.Draft),
		nextID: 1,
		now:    time.Now,
	}
}

func (s *MemStore) Get(userID string) (*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *draft
	return &copied, nil
}

func (s *MemStore) Create(userID string, data model.Submission) (*model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	draft := &model.Draft{
		ID:        s.nextID,
		UserID:    userID,
		FormData:  data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.drafts[userID] = draft
	copied := *draft
	return &copied, nil
}

func (s *MemStore) Update(userID string, data model.Submission) (*model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	draft.FormData = data
	draft.UpdatedAt = s.now()
	copied := *draft
	return &copied, nil
}

func (s *MemStore) Close() error { return nil }
