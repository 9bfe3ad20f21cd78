package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// QAStore defines the interface for the append-only question/answer log.
type QAStore interface {
	// Append records a question/answer pair for a project.
	Append(ctx context.Context, projectID, question, answer string) error
	// ListByProject returns all QA records for a project, newest first.
	ListByProject(ctx context.Context, projectID string) ([]QARecord, error)
}

// QARepo provides methods for QA history operations.
// It implements the QAStore interface.
type QARepo struct {
	db *sql.DB
}

// NewQARepo creates a new QARepo.
func NewQARepo(db *sql.DB) *QARepo {
	return &QARepo{db: db}
}

// Append records a question/answer pair for a project.
// Duplicate question texts are allowed; deduplication happens at read time.
func (r *QARepo) Append(ctx context.Context, projectID, question, answer string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO qa_history (project_id, question, answer) VALUES (?, ?, ?)",
		projectID, question, answer,
	)
	if err != nil {
		return fmt.Errorf("failed to append qa record: %w", err)
	}
	return nil
}

// ListByProject returns all QA records for a project, newest first.
// Returns an empty slice if the project has no history (not an error).
func (r *QARepo) ListByProject(ctx context.Context, projectID string) ([]QARecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, project_id, question, answer, created_at FROM qa_history WHERE project_id = ? ORDER BY id DESC",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query qa history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []QARecord
	for rows.Next() {
		var rec QARecord
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.Question, &rec.Answer, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan qa record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}
