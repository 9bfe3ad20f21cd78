package rag

import (
	"context"
	"fmt"
	"strings"

	"rfp-rag/internal/contextutil"
	"rfp-rag/internal/llm"
	"rfp-rag/internal/storage"
	"rfp-rag/internal/vectorstore"
)

// InsufficientAnswer is the exact sentence returned when retrieval yields
// nothing, and the sentence the model is instructed to emit when the context
// does not cover the question. The assembler filters it out of RFP documents
// by string comparison, so it must never be reworded.
const InsufficientAnswer = "I don't have enough information to answer that."

const systemPrompt = "You are an assistant answering vendor questions for an RFP response team. " +
	"Answer the question using only the information in the provided context. " +
	"If the context does not contain enough information to answer the question, reply with exactly: " +
	InsufficientAnswer

// Engine answers questions against a project's indexed documents and records
// every answered question in the project's QA history.
type Engine struct {
	projectRepo storage.ProjectStore
	qaRepo      storage.QAStore
	embedder    llm.Embedder
	generator   llm.Generator
	vectorStore vectorstore.VectorStore
	vectorSize  int
	retrievalK  int
}

// NewEngine creates a new RAG engine. retrievalK is the number of chunks
// retrieved per question.
func NewEngine(
	projectRepo storage.ProjectStore,
	qaRepo storage.QAStore,
	embedder llm.Embedder,
	generator llm.Generator,
	vectorStore vectorstore.VectorStore,
	vectorSize int,
	retrievalK int,
) *Engine {
	return &Engine{
		projectRepo: projectRepo,
		qaRepo:      qaRepo,
		embedder:    embedder,
		generator:   generator,
		vectorStore: vectorStore,
		vectorSize:  vectorSize,
		retrievalK:  retrievalK,
	}
}

// Answer retrieves the top-k chunks for the question from the project's
// collection and generates an answer grounded in them. Zero retrieved chunks
// short-circuit to InsufficientAnswer without a generation call. Every
// returned answer is appended to the project's QA history; a failed append
// fails the call.
func (e *Engine) Answer(ctx context.Context, projectID, question string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question must not be empty")
	}

	if _, err := e.projectRepo.GetByID(ctx, projectID); err != nil {
		return "", fmt.Errorf("failed to load project %s: %w", projectID, err)
	}

	collection := vectorstore.ProjectNamespace(projectID)
	if err := e.vectorStore.EnsureCollection(ctx, collection, e.vectorSize); err != nil {
		return "", fmt.Errorf("failed to ensure collection %s: %w", collection, err)
	}

	embeddings, err := e.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}
	if len(embeddings) != 1 {
		return "", fmt.Errorf("expected 1 question embedding, got %d", len(embeddings))
	}

	results, err := e.vectorStore.Search(ctx, collection, embeddings[0], e.retrievalK)
	if err != nil {
		return "", fmt.Errorf("failed to search collection %s: %w", collection, err)
	}

	var answer string
	if len(results) == 0 {
		logger.InfoContext(ctx, "no chunks retrieved, returning fallback answer",
			"project_id", projectID)
		answer = InsufficientAnswer
	} else {
		answer, err = e.generate(ctx, question, results)
		if err != nil {
			return "", err
		}
	}

	if err := e.qaRepo.Append(ctx, projectID, question, answer); err != nil {
		return "", fmt.Errorf("failed to record answer: %w", err)
	}

	logger.InfoContext(ctx, "question answered",
		"project_id", projectID,
		"chunks_used", len(results),
		"answer_length", len(answer))

	return answer, nil
}

// generate builds the grounded prompt from the ranked results and calls the
// chat model.
func (e *Engine) generate(ctx context.Context, question string, results []vectorstore.SearchResult) (string, error) {
	var contextBuilder strings.Builder
	contextBuilder.WriteString("Context:\n\n")
	for i, result := range results {
		text, _ := result.Meta["text"].(string)
		fmt.Fprintf(&contextBuilder, "[%d] %s\n\n", i+1, text)
	}

	userMessage := fmt.Sprintf("%sQuestion: %s", contextBuilder.String(), question)

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userMessage},
	}

	answer, err := e.generator.ChatWithMessages(ctx, messages, llm.ChatParams{
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	return answer, nil
}
