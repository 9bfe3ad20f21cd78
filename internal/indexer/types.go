package indexer

import "errors"

// ErrUnsupportedFormat is returned when a document's file type is outside the
// closed set of extractable formats.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrIngestion wraps failures that abort an ingestion run. Per-document load
// failures are skipped instead; only embedding and vector store failures
// carry this sentinel.
var ErrIngestion = errors.New("ingestion failed")

// Chunk is a contiguous slice of a document's extracted text. Offsets are in
// runes, not bytes.
type Chunk struct {
	SourceDocumentID string
	Ordinal          int
	Text             string
	CharStart        int
	CharEnd          int
}

// Result summarizes one ingestion run over a project's documents.
type Result struct {
	ChunksInserted     int
	DocumentsProcessed int
	DocumentsSkipped   int
}
