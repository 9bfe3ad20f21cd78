package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Project stages, mirroring the sales pipeline the RFP belongs to.
const (
	StageProspect   = "prospect"
	StageInProgress = "in_progress"
	StageOnHold     = "on_hold"
	StageCompleted  = "completed"
	StageCancelled  = "cancelled"
)

// ValidStage reports whether s is a known project stage.
func ValidStage(s string) bool {
	switch s {
	case StageProspect, StageInProgress, StageOnHold, StageCompleted, StageCancelled:
		return true
	}
	return false
}

// ProjectRecord represents an RFP project in the database.
type ProjectRecord struct {
	ID          string // UUID
	Name        string
	Type        string
	Description string
	Stage       string
	DueDate     time.Time
	Value       int64 // Monetary value of the deal
	CreatedAt   time.Time
}

// DocumentRecord represents an uploaded RFP source document in the database.
// The file contents live in the filestore; StoragePath is relative to its root.
type DocumentRecord struct {
	FileID      string // UUID
	ProjectID   string
	Filename    string // Original name without extension
	FileType    string // Extension without dot, lowercased ("pdf", "docx", ...)
	StoragePath string
	UploadedAt  time.Time
}

// QARecord is one entry of the append-only question/answer log for a project.
// Rows are never updated or deleted by the application.
type QARecord struct {
	ID        int64
	ProjectID string
	Question  string
	Answer    string
	CreatedAt time.Time
}
