package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/docfiller/docfiller/internal/model"
)

// Schema for the SQLite backend. Safe to apply multiple times.
const schema = `
CREATE TABLE IF NOT EXISTS form_submissions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL UNIQUE,
    form_data TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_form_submissions_user_id ON form_submissions(user_id);
`

// SQLiteStore persists drafts in a SQLite database file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path and applies the
// schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Get(userID string) (*model.Draft, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, form_data, created_at, updated_at FROM form_submissions WHERE user_id = ?`,
		userID,
	)

	var draft model.Draft
	var formData, createdAt, updatedAt string
	err := row.Scan(&draft.ID, &draft.UserID, &formData, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	if err := json.Unmarshal([]byte(formData), &draft.FormData); err != nil {
		return nil, fmt.Errorf("corrupt form data for user %s: %w", userID, err)
	}
	if draft.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("corrupt created_at for user %s: %w", userID, err)
	}
	if draft.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("corrupt updated_at for user %s: %w", userID, err)
	}
	return &draft, nil
}

func (s *SQLiteStore) Create(userID string, data model.Submission) (*model.Draft, error) {
	formData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal form data: %w", err)
	}
	now := s.now()
	ts := now.Format(time.RFC3339Nano)

	res, err := s.db.Exec(
		`INSERT INTO form_submissions (user_id, form_data, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		userID, string(formData), ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert draft: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read draft id: %w", err)
	}

	return &model.Draft{
		ID:        id,
		UserID:    userID,
		FormData:  data,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) Update(userID string, data model.Submission) (*model.Draft, error) {
	formData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal form data: %w", err)
	}
	now := s.now()

	res, err := s.db.Exec(
		`UPDATE form_submissions SET form_data = ?, updated_at = ? WHERE user_id = ?`,
		string(formData), now.Format(time.RFC3339Nano), userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.Get(userID)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
