package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines the interface for RFP document metadata operations.
type DocumentStore interface {
	// Insert inserts a new document record. The doc.FileID must be set (UUID).
	Insert(ctx context.Context, doc *DocumentRecord) error
	// GetByID gets a document by its file ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, fileID string) (*DocumentRecord, error)
	// ListByProject returns all documents for a project ordered by upload time.
	ListByProject(ctx context.Context, projectID string) ([]DocumentRecord, error)
}

// DocumentRepo provides methods for document metadata operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert inserts a new document record. The doc.FileID must be set (UUID).
func (r *DocumentRepo) Insert(ctx context.Context, doc *DocumentRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (file_id, project_id, filename, file_type, storage_path) VALUES (?, ?, ?, ?, ?)",
		doc.FileID, doc.ProjectID, doc.Filename, doc.FileType, doc.StoragePath,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// GetByID gets a document by its file ID. Returns ErrNotFound if not found.
func (r *DocumentRepo) GetByID(ctx context.Context, fileID string) (*DocumentRecord, error) {
	var d DocumentRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT file_id, project_id, filename, file_type, storage_path, uploaded_at FROM documents WHERE file_id = ?",
		fileID,
	).Scan(&d.FileID, &d.ProjectID, &d.Filename, &d.FileType, &d.StoragePath, &d.UploadedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	return &d, nil
}

// ListByProject returns all documents for a project ordered by upload time.
// Returns an empty slice if the project has no documents (not an error).
func (r *DocumentRepo) ListByProject(ctx context.Context, projectID string) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT file_id, project_id, filename, file_type, storage_path, uploaded_at FROM documents WHERE project_id = ? ORDER BY uploaded_at",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []DocumentRecord
	for rows.Next() {
		var d DocumentRecord
		if err := rows.Scan(&d.FileID, &d.ProjectID, &d.Filename, &d.FileType, &d.StoragePath, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}
