package assembler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rfp-rag/internal/contextutil"
	"rfp-rag/internal/docgen"
	"rfp-rag/internal/llm"
	"rfp-rag/internal/rag"
	"rfp-rag/internal/storage"
)

// ErrNoQAHistory is returned when a project has no usable question/answer
// history left after filtering.
var ErrNoQAHistory = errors.New("no usable QA history")

// candidate sections the synthesis prompt may emit, in document order
var sectionNames = []string{
	"Company Introduction",
	"Product",
	"Support",
	"Contract Policies",
	"Pricing",
	"Reference",
}

// Assembler turns a project's QA history into a rendered RFP response
// document.
type Assembler struct {
	projectRepo storage.ProjectStore
	qaRepo      storage.QAStore
	generator   llm.Generator
	exportDir   string
}

// New creates an assembler that persists rendered documents under exportDir.
func New(projectRepo storage.ProjectStore, qaRepo storage.QAStore, generator llm.Generator, exportDir string) *Assembler {
	return &Assembler{
		projectRepo: projectRepo,
		qaRepo:      qaRepo,
		generator:   generator,
		exportDir:   exportDir,
	}
}

// Document is the result of one assembly run. Content is always populated on
// success; PersistErr reports a failed export write without failing the run.
type Document struct {
	Filename      string
	Content       []byte
	PersistedPath string
	PersistErr    error
}

// BuildDocument fetches and filters the project's QA history, synthesizes the
// response body with one chat call, renders the .docx, and persists a copy
// under the export directory. Rendering and persistence are decoupled: the
// bytes are returned even when the export write fails.
func (a *Assembler) BuildDocument(ctx context.Context, projectID string) (*Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	project, err := a.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", projectID, err)
	}

	history, err := a.qaRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load QA history for project %s: %w", projectID, err)
	}

	filtered := FilterQA(history)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: project %s", ErrNoQAHistory, projectID)
	}

	body, err := a.synthesize(ctx, project, filtered)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize document body: %w", err)
	}

	qaPairs := make([]docgen.QAPair, len(filtered))
	for i, rec := range filtered {
		qaPairs[i] = docgen.QAPair{Question: rec.Question, Answer: rec.Answer}
	}

	now := time.Now().UTC()
	content, err := docgen.Render(docgen.DocumentData{
		ProjectName: project.Name,
		ProjectType: project.Type,
		Description: project.Description,
		Stage:       project.Stage,
		DueDate:     project.DueDate,
		Value:       project.Value,
		Body:        body,
		QA:          qaPairs,
		GeneratedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}

	doc := &Document{
		Filename: Slug(project.Name) + ".docx",
		Content:  content,
	}

	persistedPath, persistErr := a.persist(doc.Filename, content, now)
	if persistErr != nil {
		logger.WarnContext(ctx, "failed to persist rendered document",
			"project_id", projectID, "error", persistErr)
		doc.PersistErr = persistErr
	} else {
		doc.PersistedPath = persistedPath
	}

	logger.InfoContext(ctx, "assembled RFP document",
		"project_id", projectID,
		"qa_pairs", len(filtered),
		"bytes", len(content),
		"persisted", persistErr == nil)

	return doc, nil
}

// FilterQA deduplicates history by question (case-insensitive, whitespace
// trimmed), keeping the newest entry, and drops answers that are the
// retrieval fallback sentence. History is expected newest-first and order is
// preserved. Filtering is idempotent.
func FilterQA(history []storage.QARecord) []storage.QARecord {
	seen := make(map[string]bool, len(history))
	filtered := make([]storage.QARecord, 0, len(history))

	for _, rec := range history {
		if strings.TrimSpace(rec.Answer) == rag.InsufficientAnswer {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(rec.Question))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		filtered = append(filtered, rec)
	}

	return filtered
}

func (a *Assembler) synthesize(ctx context.Context, project *storage.ProjectRecord, history []storage.QARecord) (string, error) {
	var transcript strings.Builder
	for _, rec := range history {
		fmt.Fprintf(&transcript, "Q: %s\nA: %s\n\n", rec.Question, rec.Answer)
	}

	systemPrompt := "You are writing the body of an RFP response document for a vendor. " +
		"Using only the question/answer context provided, write the document as plain text with '## ' section headings, " +
		"'- ' bullet lists, and short paragraphs. Candidate sections, in order: " +
		strings.Join(sectionNames, ", ") + ". " +
		"Include a section only if the QA context supports it; never fabricate information."

	userMessage := fmt.Sprintf(
		"Project: %s\nType: %s\nDescription: %s\nStage: %s\nDue date: %s\nValue: %d\n\nQA context:\n\n%s",
		project.Name, project.Type, project.Description, project.Stage,
		project.DueDate.Format("2006-01-02"), project.Value, transcript.String())

	body, err := a.generator.ChatWithMessages(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userMessage},
	}, llm.ChatParams{Temperature: 0.7})
	if err != nil {
		return "", err
	}

	return body, nil
}

// persist writes the rendered bytes to <exportDir>/<yyyy-mm-dd>/<filename>.
func (a *Assembler) persist(filename string, content []byte, now time.Time) (string, error) {
	dir := filepath.Join(a.exportDir, now.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// Slug converts a project name into a filesystem-safe file stem.
func Slug(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "rfp-document"
	}
	return slug
}
