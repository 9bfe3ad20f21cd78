package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"rfp-rag/internal/filestore"
	"rfp-rag/internal/llm"
	llmmocks "rfp-rag/internal/llm/mocks"
	"rfp-rag/internal/storage"
	storagemocks "rfp-rag/internal/storage/mocks"
	"rfp-rag/internal/vectorstore"
	vsmocks "rfp-rag/internal/vectorstore/mocks"
)

const testVectorSize = 4

type pipelineMocks struct {
	projectRepo  *storagemocks.MockProjectStore
	documentRepo *storagemocks.MockDocumentStore
	embedder     *llmmocks.MockEmbedder
	vectorStore  *vsmocks.MockVectorStore
	files        *filestore.Store
}

func newTestPipeline(t *testing.T) (*Pipeline, *pipelineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &pipelineMocks{
		projectRepo:  storagemocks.NewMockProjectStore(ctrl),
		documentRepo: storagemocks.NewMockDocumentStore(ctrl),
		embedder:     llmmocks.NewMockEmbedder(ctrl),
		vectorStore:  vsmocks.NewMockVectorStore(ctrl),
		files:        filestore.New(t.TempDir()),
	}

	p := NewPipeline(m.projectRepo, m.documentRepo, m.files, m.embedder, m.vectorStore, testVectorSize)
	return p, m
}

// saveDocxFixture writes a docx into the pipeline's file store and returns
// its storage path.
func saveDocxFixture(t *testing.T, files *filestore.Store, fileID string, paragraphs []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), fileID+".docx")
	writeDocxFixture(t, path, paragraphs)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open fixture: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	storagePath, err := files.Save(fileID, "docx", f)
	if err != nil {
		t.Fatalf("failed to save fixture: %v", err)
	}
	return storagePath
}

func testDocument(fileID, projectID, fileType, storagePath string) storage.DocumentRecord {
	return storage.DocumentRecord{
		FileID:      fileID,
		ProjectID:   projectID,
		Filename:    "requirements",
		FileType:    fileType,
		StoragePath: storagePath,
		UploadedAt:  time.Now().UTC(),
	}
}

func fakeEmbeddings(texts []string) [][]float32 {
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = make([]float32, testVectorSize)
		vecs[i][0] = float32(i) + 1
	}
	return vecs
}

func TestPipeline_IngestProject(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	storagePath := saveDocxFixture(t, m.files, "doc-1", []string{
		"The vendor offers a cloud-hosted ticketing platform.",
		"Support is available 24/7 with a 4-hour SLA.",
	})

	m.projectRepo.EXPECT().GetByID(ctx, "p1").Return(&storage.ProjectRecord{ID: "p1", Name: "Acme RFP"}, nil)
	m.documentRepo.EXPECT().ListByProject(ctx, "p1").Return([]storage.DocumentRecord{
		testDocument("doc-1", "p1", "docx", storagePath),
	}, nil)
	m.vectorStore.EXPECT().EnsureCollection(ctx, "project_p1", testVectorSize).Return(nil)
	m.embedder.EXPECT().EmbedTexts(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, texts []string) ([][]float32, error) {
			return fakeEmbeddings(texts), nil
		})
	m.vectorStore.EXPECT().Upsert(ctx, "project_p1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, points []vectorstore.Point) error {
			if len(points) == 0 {
				t.Fatal("no points upserted")
			}
			for _, pt := range points {
				if pt.ID == "" {
					t.Error("point has empty ID")
				}
				if pt.Meta["source_document_id"] != "doc-1" {
					t.Errorf("source_document_id = %v", pt.Meta["source_document_id"])
				}
				if pt.Meta["project_id"] != "p1" {
					t.Errorf("project_id = %v", pt.Meta["project_id"])
				}
				if text, _ := pt.Meta["text"].(string); text == "" {
					t.Error("point payload is missing chunk text")
				}
			}
			return nil
		})

	result, err := p.IngestProject(ctx, "p1")
	if err != nil {
		t.Fatalf("IngestProject() error = %v", err)
	}
	if result.DocumentsProcessed != 1 {
		t.Errorf("DocumentsProcessed = %d, want 1", result.DocumentsProcessed)
	}
	if result.DocumentsSkipped != 0 {
		t.Errorf("DocumentsSkipped = %d, want 0", result.DocumentsSkipped)
	}
	if result.ChunksInserted == 0 {
		t.Error("ChunksInserted = 0, want at least 1")
	}
}

func TestPipeline_IngestProject_SkipsUnloadableDocuments(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	storagePath := saveDocxFixture(t, m.files, "doc-1", []string{"Pricing is tiered by seat count."})

	m.projectRepo.EXPECT().GetByID(ctx, "p1").Return(&storage.ProjectRecord{ID: "p1"}, nil)
	m.documentRepo.EXPECT().ListByProject(ctx, "p1").Return([]storage.DocumentRecord{
		testDocument("doc-1", "p1", "docx", storagePath),
		testDocument("doc-2", "p1", "xlsx", "2026/01/01/doc-2.xlsx"),
		testDocument("doc-3", "p1", "docx", "2026/01/01/doc-3.docx"), // file never written
	}, nil)
	m.vectorStore.EXPECT().EnsureCollection(ctx, "project_p1", testVectorSize).Return(nil)
	m.embedder.EXPECT().EmbedTexts(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, texts []string) ([][]float32, error) {
			return fakeEmbeddings(texts), nil
		})
	m.vectorStore.EXPECT().Upsert(ctx, "project_p1", gomock.Any()).Return(nil)

	result, err := p.IngestProject(ctx, "p1")
	if err != nil {
		t.Fatalf("IngestProject() error = %v", err)
	}
	if result.DocumentsProcessed != 1 {
		t.Errorf("DocumentsProcessed = %d, want 1", result.DocumentsProcessed)
	}
	if result.DocumentsSkipped != 2 {
		t.Errorf("DocumentsSkipped = %d, want 2", result.DocumentsSkipped)
	}
}

func TestPipeline_IngestProject_ProjectNotFound(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	m.projectRepo.EXPECT().GetByID(ctx, "missing").Return(nil, storage.ErrNotFound)

	_, err := p.IngestProject(ctx, "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want storage.ErrNotFound", err)
	}
}

func TestPipeline_IngestProject_NoDocuments(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	m.projectRepo.EXPECT().GetByID(ctx, "p1").Return(&storage.ProjectRecord{ID: "p1"}, nil)
	m.documentRepo.EXPECT().ListByProject(ctx, "p1").Return(nil, nil)
	m.vectorStore.EXPECT().EnsureCollection(ctx, "project_p1", testVectorSize).Return(nil)

	result, err := p.IngestProject(ctx, "p1")
	if err != nil {
		t.Fatalf("IngestProject() error = %v", err)
	}
	if result.ChunksInserted != 0 || result.DocumentsProcessed != 0 || result.DocumentsSkipped != 0 {
		t.Errorf("result = %+v, want all zero", result)
	}
}

func TestPipeline_IngestProject_EmbedFailure(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	storagePath := saveDocxFixture(t, m.files, "doc-1", []string{"Contract terms are net 30."})

	m.projectRepo.EXPECT().GetByID(ctx, "p1").Return(&storage.ProjectRecord{ID: "p1"}, nil)
	m.documentRepo.EXPECT().ListByProject(ctx, "p1").Return([]storage.DocumentRecord{
		testDocument("doc-1", "p1", "docx", storagePath),
	}, nil)
	m.vectorStore.EXPECT().EnsureCollection(ctx, "project_p1", testVectorSize).Return(nil)
	m.embedder.EXPECT().EmbedTexts(ctx, gomock.Any()).Return(nil, llm.ErrProvider)

	_, err := p.IngestProject(ctx, "p1")
	if !errors.Is(err, ErrIngestion) {
		t.Errorf("error = %v, want ErrIngestion", err)
	}
	if !errors.Is(err, llm.ErrProvider) {
		t.Errorf("error = %v, should preserve the provider cause", err)
	}
}

func TestPipeline_IngestProject_UpsertFailure(t *testing.T) {
	p, m := newTestPipeline(t)
	ctx := context.Background()

	storagePath := saveDocxFixture(t, m.files, "doc-1", []string{"Reference customers include two regional banks."})

	m.projectRepo.EXPECT().GetByID(ctx, "p1").Return(&storage.ProjectRecord{ID: "p1"}, nil)
	m.documentRepo.EXPECT().ListByProject(ctx, "p1").Return([]storage.DocumentRecord{
		testDocument("doc-1", "p1", "docx", storagePath),
	}, nil)
	m.vectorStore.EXPECT().EnsureCollection(ctx, "project_p1", testVectorSize).Return(nil)
	m.embedder.EXPECT().EmbedTexts(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, texts []string) ([][]float32, error) {
			return fakeEmbeddings(texts), nil
		})
	m.vectorStore.EXPECT().Upsert(ctx, "project_p1", gomock.Any()).Return(errors.New("qdrant unavailable"))

	_, err := p.IngestProject(ctx, "p1")
	if !errors.Is(err, ErrIngestion) {
		t.Errorf("error = %v, want ErrIngestion", err)
	}
}
