package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IngestJobStatus represents the status of an ingest job
type IngestJobStatus string

const (
	JobStatusPending    IngestJobStatus = "pending"
	JobStatusInProgress IngestJobStatus = "in_progress"
	JobStatusCompleted  IngestJobStatus = "completed"
	JobStatusFailed     IngestJobStatus = "failed"
)

// PrimaryKey selects how documents are keyed in the search index
type PrimaryKey string

const (
	// PrimaryKeyID keys by identity; fragments of one law overwrite each other
	PrimaryKeyID PrimaryKey = "id"
	// PrimaryKeyFragment keys by identity and article position
	PrimaryKeyFragment PrimaryKey = "fragment"
)

// ParsePrimaryKey validates a primary key mode. Empty means PrimaryKeyFragment.
func ParsePrimaryKey(s string) (PrimaryKey, error) {
	switch PrimaryKey(s) {
	case "", PrimaryKeyFragment:
		return PrimaryKeyFragment, nil
	case PrimaryKeyID:
		return PrimaryKeyID, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPrimaryKey, s)
}

// KeyOf returns the index key of doc under this mode
func (k PrimaryKey) KeyOf(doc LegalDocument) string {
	if k == PrimaryKeyID {
		return doc.ID()
	}
	return doc.FragmentKey()
}

// IngestBatch is a unit of indexing work, passed in-process or through the queue
type IngestBatch struct {
	JobID      uuid.UUID       `json:"job_id"`
	PrimaryKey PrimaryKey      `json:"primary_key"`
	Source     string          `json:"source"`
	Documents  []LegalDocument `json:"documents"`
}

// IngestJob tracks one batch submitted for indexing
type IngestJob struct {
	ID            uuid.UUID       `json:"id"`
	Status        IngestJobStatus `json:"status"`
	Source        string          `json:"source"` // "api", "register"
	PrimaryKey    PrimaryKey      `json:"primary_key"`
	DocumentCount int             `json:"document_count"`
	ErrorMessage  *string         `json:"error_message,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}
