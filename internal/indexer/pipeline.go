package indexer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rfp-rag/internal/contextutil"
	"rfp-rag/internal/filestore"
	"rfp-rag/internal/llm"
	"rfp-rag/internal/storage"
	"rfp-rag/internal/vectorstore"
)

// Pipeline orchestrates the ingestion of a project's uploaded documents into
// the project's vector collection: load, chunk, embed, upsert.
type Pipeline struct {
	projectRepo  storage.ProjectStore
	documentRepo storage.DocumentStore
	files        *filestore.Store
	embedder     llm.Embedder
	vectorStore  vectorstore.VectorStore
	vectorSize   int
	splitter     *Splitter
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	projectRepo storage.ProjectStore,
	documentRepo storage.DocumentStore,
	files *filestore.Store,
	embedder llm.Embedder,
	vectorStore vectorstore.VectorStore,
	vectorSize int,
) *Pipeline {
	return &Pipeline{
		projectRepo:  projectRepo,
		documentRepo: documentRepo,
		files:        files,
		embedder:     embedder,
		vectorStore:  vectorStore,
		vectorSize:   vectorSize,
		splitter:     NewSplitter(),
	}
}

// IngestProject loads, chunks, embeds, and indexes every document uploaded to
// the project. Documents that cannot be loaded (missing file, unsupported
// format) are logged and skipped; embedding or vector store failures abort
// the run wrapped in ErrIngestion with the cause preserved.
//
// Re-ingesting is additive: chunks from earlier runs are not removed or
// deduplicated.
func (p *Pipeline) IngestProject(ctx context.Context, projectID string) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := p.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", projectID, err)
	}

	docs, err := p.documentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for project %s: %w", projectID, err)
	}

	collection := vectorstore.ProjectNamespace(projectID)
	if err := p.vectorStore.EnsureCollection(ctx, collection, p.vectorSize); err != nil {
		return nil, fmt.Errorf("%w: ensure collection %s: %w", ErrIngestion, collection, err)
	}

	result := &Result{}
	var allChunks []Chunk

	for _, doc := range docs {
		// Context may be cancelled between documents
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		path, err := p.files.Resolve(doc.StoragePath)
		if err != nil {
			logger.WarnContext(ctx, "skipping document with invalid storage path",
				"file_id", doc.FileID, "storage_path", doc.StoragePath, "error", err)
			result.DocumentsSkipped++
			continue
		}

		text, err := ExtractText(path, doc.FileType)
		if err != nil {
			logger.WarnContext(ctx, "skipping document that failed to load",
				"file_id", doc.FileID, "file_type", doc.FileType, "error", err)
			result.DocumentsSkipped++
			continue
		}

		chunks := p.splitter.Split(doc.FileID, text)
		if len(chunks) == 0 {
			logger.WarnContext(ctx, "document produced no chunks", "file_id", doc.FileID)
		}

		allChunks = append(allChunks, chunks...)
		result.DocumentsProcessed++
	}

	if len(allChunks) == 0 {
		logger.InfoContext(ctx, "ingestion produced no chunks",
			"project_id", projectID,
			"documents_processed", result.DocumentsProcessed,
			"documents_skipped", result.DocumentsSkipped)
		return result, nil
	}

	texts := make([]string, len(allChunks))
	for i, chunk := range allChunks {
		texts[i] = chunk.Text
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: embed %d chunks for project %s: %w", ErrIngestion, len(texts), projectID, err)
	}
	if len(embeddings) != len(allChunks) {
		return nil, fmt.Errorf("%w: embedding count mismatch: expected %d, got %d", ErrIngestion, len(allChunks), len(embeddings))
	}

	points := make([]vectorstore.Point, len(allChunks))
	for i, chunk := range allChunks {
		points[i] = vectorstore.Point{
			ID:  uuid.New().String(),
			Vec: embeddings[i],
			Meta: map[string]any{
				"source_document_id": chunk.SourceDocumentID,
				"text":               chunk.Text,
				"ordinal":            chunk.Ordinal,
				"project_id":         projectID,
			},
		}
	}

	if err := p.vectorStore.Upsert(ctx, collection, points); err != nil {
		return nil, fmt.Errorf("%w: upsert %d points for project %s: %w", ErrIngestion, len(points), projectID, err)
	}

	result.ChunksInserted = len(points)

	logger.InfoContext(ctx, "ingestion completed",
		"project_id", projectID,
		"chunks_inserted", result.ChunksInserted,
		"documents_processed", result.DocumentsProcessed,
		"documents_skipped", result.DocumentsSkipped)

	return result, nil
}
