package assembler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"rfp-rag/internal/llm"
	llmmocks "rfp-rag/internal/llm/mocks"
	"rfp-rag/internal/rag"
	"rfp-rag/internal/storage"
	storagemocks "rfp-rag/internal/storage/mocks"
)

func qa(id int64, question, answer string) storage.QARecord {
	return storage.QARecord{
		ID:        id,
		ProjectID: "p1",
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
}

func TestFilterQA(t *testing.T) {
	// History arrives newest-first; duplicates keep the newest entry.
	history := []storage.QARecord{
		qa(5, "What is the SLA?", "Four hours."),
		qa(4, "  what is the sla? ", "An older answer."),
		qa(3, "Do you offer training?", rag.InsufficientAnswer),
		qa(2, "What is the price?", "Tiered by seat count."),
		qa(1, "", "An answer with no question."),
	}

	filtered := FilterQA(history)
	if len(filtered) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(filtered), filtered)
	}
	if filtered[0].ID != 5 {
		t.Errorf("first record ID = %d, want newest duplicate (5)", filtered[0].ID)
	}
	if filtered[1].ID != 2 {
		t.Errorf("second record ID = %d, want 2", filtered[1].ID)
	}
}

func TestFilterQA_DropsPaddedFallbackAnswer(t *testing.T) {
	history := []storage.QARecord{
		qa(1, "Anything about penalties?", "  "+rag.InsufficientAnswer+"\n"),
	}
	if got := FilterQA(history); len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}

func TestFilterQA_Idempotent(t *testing.T) {
	history := []storage.QARecord{
		qa(3, "What is the SLA?", "Four hours."),
		qa(2, "what is the SLA?", "Older."),
		qa(1, "What is the price?", "Tiered."),
	}

	once := FilterQA(history)
	twice := FilterQA(once)
	if !reflect.DeepEqual(once, twice) {
		t.Error("FilterQA should be idempotent")
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Acme Procurement 2026", "acme-procurement-2026"},
		{"  Weird -- Name!!  ", "weird-name"},
		{"***", "rfp-document"},
	}

	for _, tt := range tests {
		if got := Slug(tt.name); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func newTestAssembler(t *testing.T, exportDir string) (*Assembler, *storagemocks.MockProjectStore, *storagemocks.MockQAStore, *llmmocks.MockGenerator) {
	t.Helper()
	ctrl := gomock.NewController(t)

	projectRepo := storagemocks.NewMockProjectStore(ctrl)
	qaRepo := storagemocks.NewMockQAStore(ctrl)
	generator := llmmocks.NewMockGenerator(ctrl)

	return New(projectRepo, qaRepo, generator, exportDir), projectRepo, qaRepo, generator
}

func testAssemblerProject() *storage.ProjectRecord {
	return &storage.ProjectRecord{
		ID:          "p1",
		Name:        "Acme Procurement",
		Type:        "SaaS",
		Description: "Identity management platform replacement",
		Stage:       storage.StageInProgress,
		DueDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Value:       250000,
	}
}

func TestAssembler_BuildDocument(t *testing.T) {
	exportDir := t.TempDir()
	a, projectRepo, qaRepo, generator := newTestAssembler(t, exportDir)
	ctx := context.Background()

	projectRepo.EXPECT().GetByID(ctx, "p1").Return(testAssemblerProject(), nil)
	qaRepo.EXPECT().ListByProject(ctx, "p1").Return([]storage.QARecord{
		qa(2, "What is the SLA?", "Four hours, 24/7."),
		qa(1, "What is the price?", "Tiered by seat count."),
	}, nil)
	generator.EXPECT().ChatWithMessages(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, messages []llm.Message, _ llm.ChatParams) (string, error) {
			if !strings.Contains(messages[0].Content, "never fabricate") {
				t.Error("system prompt should forbid fabrication")
			}
			user := messages[1].Content
			if !strings.Contains(user, "Acme Procurement") {
				t.Error("user message should carry the project name")
			}
			if !strings.Contains(user, "Identity management platform replacement") {
				t.Error("user message should carry the project description")
			}
			if !strings.Contains(user, "Value: 250000") {
				t.Error("user message should carry the project value")
			}
			if !strings.Contains(user, "Q: What is the SLA?") {
				t.Error("user message should carry the filtered transcript")
			}
			return "## Support\n- Four-hour SLA, 24/7\n\n## Pricing\nTiered by seat count.", nil
		})

	doc, err := a.BuildDocument(ctx, "p1")
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if doc.Filename != "acme-procurement.docx" {
		t.Errorf("filename = %q", doc.Filename)
	}
	if len(doc.Content) == 0 {
		t.Error("content is empty")
	}
	if doc.PersistErr != nil {
		t.Errorf("PersistErr = %v, want nil", doc.PersistErr)
	}

	persisted, err := os.ReadFile(doc.PersistedPath)
	if err != nil {
		t.Fatalf("failed to read persisted file: %v", err)
	}
	if len(persisted) != len(doc.Content) {
		t.Error("persisted file differs from returned content")
	}
	wantDir := filepath.Join(exportDir, time.Now().UTC().Format("2006-01-02"))
	if filepath.Dir(doc.PersistedPath) != wantDir {
		t.Errorf("persisted under %q, want %q", filepath.Dir(doc.PersistedPath), wantDir)
	}
}

func TestAssembler_BuildDocument_NoUsableHistory(t *testing.T) {
	a, projectRepo, qaRepo, _ := newTestAssembler(t, t.TempDir())
	ctx := context.Background()

	projectRepo.EXPECT().GetByID(ctx, "p1").Return(testAssemblerProject(), nil)
	qaRepo.EXPECT().ListByProject(ctx, "p1").Return([]storage.QARecord{
		qa(1, "Do you offer training?", rag.InsufficientAnswer),
	}, nil)

	_, err := a.BuildDocument(ctx, "p1")
	if !errors.Is(err, ErrNoQAHistory) {
		t.Errorf("error = %v, want ErrNoQAHistory", err)
	}
}

func TestAssembler_BuildDocument_ProjectNotFound(t *testing.T) {
	a, projectRepo, _, _ := newTestAssembler(t, t.TempDir())
	ctx := context.Background()

	projectRepo.EXPECT().GetByID(ctx, "missing").Return(nil, storage.ErrNotFound)

	_, err := a.BuildDocument(ctx, "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want storage.ErrNotFound", err)
	}
}

func TestAssembler_BuildDocument_PersistFailureStillReturnsBytes(t *testing.T) {
	// Point the export dir at a regular file so MkdirAll fails.
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create blocking file: %v", err)
	}

	a, projectRepo, qaRepo, generator := newTestAssembler(t, blocked)
	ctx := context.Background()

	projectRepo.EXPECT().GetByID(ctx, "p1").Return(testAssemblerProject(), nil)
	qaRepo.EXPECT().ListByProject(ctx, "p1").Return([]storage.QARecord{
		qa(1, "What is the SLA?", "Four hours."),
	}, nil)
	generator.EXPECT().ChatWithMessages(ctx, gomock.Any(), gomock.Any()).Return("## Support\nFour-hour SLA.", nil)

	doc, err := a.BuildDocument(ctx, "p1")
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if len(doc.Content) == 0 {
		t.Error("content should be returned despite persist failure")
	}
	if doc.PersistErr == nil {
		t.Error("PersistErr should be set when the export write fails")
	}
	if doc.PersistedPath != "" {
		t.Errorf("PersistedPath = %q, want empty", doc.PersistedPath)
	}
}

func TestAssembler_BuildDocument_GenerationFailure(t *testing.T) {
	a, projectRepo, qaRepo, generator := newTestAssembler(t, t.TempDir())
	ctx := context.Background()

	projectRepo.EXPECT().GetByID(ctx, "p1").Return(testAssemblerProject(), nil)
	qaRepo.EXPECT().ListByProject(ctx, "p1").Return([]storage.QARecord{
		qa(1, "What is the SLA?", "Four hours."),
	}, nil)
	generator.EXPECT().ChatWithMessages(ctx, gomock.Any(), gomock.Any()).Return("", llm.ErrProvider)

	_, err := a.BuildDocument(ctx, "p1")
	if !errors.Is(err, llm.ErrProvider) {
		t.Errorf("error = %v, want llm.ErrProvider", err)
	}
}
