package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/docfiller/docfiller/internal/model"
)

// jsonState is the on-disk layout of the JSON backend: one file holding all
// drafts plus the id counter.
type jsonState struct {
	NextID int64                   `json:"nextId"`
	Drafts map[string]*model.Draft `json:"drafts"`
}

// JSONStore persists drafts in a single JSON file with atomic writes. Suited
// for single-instance deployments that must survive a restart without a
// database.
type JSONStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewJSONStore creates a JSON-file store under dir.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("cannot create data directory %s: %w", dir, err)
	}
	return &JSONStore{
		path: filepath.Join(dir, "drafts.json"),
		now:  time.Now,
	}, nil
}

func (s *JSONStore) load() (*jsonState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &jsonState{NextID: 1, Drafts: map[string]*model.Draft{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}
	var state jsonState
	if err := json.Unmarshal(data, &state); err != nil {
		// Back up corrupt file and start over.
		backupPath := s.path + ".corrupt"
		_ = os.Rename(s.path, backupPath)
		return nil, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", s.path, backupPath, err)
	}
	if state.Drafts == nil {
		state.Drafts = map[string]*model.Draft{}
	}
	if state.NextID < 1 {
		state.NextID = 1
	}
	return &state, nil
}

func (s *JSONStore) save(state *jsonState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(userID string) (*model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return nil, err
	}
	draft, ok := state.Drafts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return draft, nil
}

func (s *JSONStore) Create(userID string, data model.Submission) (*model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return nil, err
	}
	now := s.now()
	draft := &model.Draft{
		ID:        state.NextID,
		UserID:    userID,
		FormData:  data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	state.NextID++
	state.Drafts[userID] = draft
	if err := s.save(state); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *JSONStore) Update(userID string, data model.Submission) (*model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return nil, err
	}
	draft, ok := state.Drafts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	draft.FormData = data
	draft.UpdatedAt = s.now()
	if err := s.save(state); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *JSONStore) Close() error { return nil }
