package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_stores.go -package=mocks rfp-rag/internal/storage ProjectStore,DocumentStore,QAStore

import (
	"context"
	"database/sql"
	"fmt"
)

// ProjectStore defines the interface for project metadata operations.
type ProjectStore interface {
	// Insert inserts a new project. The project.ID must be set (UUID).
	Insert(ctx context.Context, project *ProjectRecord) error
	// GetByID gets a project by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)
	// ListAll returns all projects ordered by creation time, newest first.
	ListAll(ctx context.Context) ([]ProjectRecord, error)
	// UpdateStage moves a project to a new stage. Returns ErrNotFound if absent.
	UpdateStage(ctx context.Context, id, stage string) error
}

// ProjectRepo provides methods for project operations.
// It implements the ProjectStore interface.
type ProjectRepo struct {
	db *sql.DB
}

// NewProjectRepo creates a new ProjectRepo.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Insert inserts a new project. The project.ID must be set (UUID).
func (r *ProjectRepo) Insert(ctx context.Context, project *ProjectRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (id, name, type, description, stage, due_date, value) VALUES (?, ?, ?, ?, ?, ?, ?)",
		project.ID, project.Name, project.Type, project.Description, project.Stage, project.DueDate, project.Value,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// GetByID gets a project by its ID. Returns ErrNotFound if not found.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*ProjectRecord, error) {
	var p ProjectRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, type, description, stage, due_date, value, created_at FROM projects WHERE id = ?",
		id,
	).Scan(&p.ID, &p.Name, &p.Type, &p.Description, &p.Stage, &p.DueDate, &p.Value, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query project: %w", err)
	}

	return &p, nil
}

// ListAll returns all projects ordered by creation time, newest first.
func (r *ProjectRepo) ListAll(ctx context.Context) ([]ProjectRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, type, description, stage, due_date, value, created_at FROM projects ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var projects []ProjectRecord
	for rows.Next() {
		var p ProjectRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Description, &p.Stage, &p.DueDate, &p.Value, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return projects, nil
}

// UpdateStage moves a project to a new stage. Returns ErrNotFound if absent.
func (r *ProjectRepo) UpdateStage(ctx context.Context, id, stage string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE projects SET stage = ? WHERE id = ?", stage, id)
	if err != nil {
		return fmt.Errorf("failed to update project stage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
