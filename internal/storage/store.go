// Package storage persists in-progress declaration drafts keyed by the
// client-generated user id.
package storage

import (
	"errors"

	"github.com/docfiller/docfiller/internal/model"
)

// ErrNotFound signals a draft miss. It is a normal outcome for unknown user
// ids, not a failure.
var ErrNotFound = errors.New("draft not found")

// DraftStore is the draft persistence contract. Create assigns a new
// monotonically increasing id and both timestamps; Update replaces the form
// data and refreshes UpdatedAt while preserving id and CreatedAt. Last
// writer wins; there is no lost-update detection.
type DraftStore interface {
	Get(userID string) (*model.Draft, error)
	Create(userID string, data model.Submission) (*model.Draft, error)
	Update(userID string, data model.Submission) (*model.Draft, error)
	Close() error
}
