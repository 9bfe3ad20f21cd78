package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService rfp-rag/internal/service ChatService

import (
	"context"

	"rfp-rag/internal/contextutil"
	"rfp-rag/internal/llm"
)

// ChatRequest carries a raw conversation to forward to the chat model.
// Unlike the RAG engine, no retrieval context is added and nothing is
// recorded in QA history.
type ChatRequest struct {
	Messages []llm.Message
}

// ChatResponse is the model's reply.
type ChatResponse struct {
	Reply string
}

// ChatService provides direct chat passthrough to the configured model.
type ChatService interface {
	ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// chatService implements ChatService.
type chatService struct {
	generator llm.Generator
}

// NewChatService creates a new ChatService.
func NewChatService(generator llm.Generator) ChatService {
	return &chatService{generator: generator}
}

// ProcessChat validates and forwards the conversation.
func (s *chatService) ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(req.Messages) == 0 {
		logger.WarnContext(ctx, "empty message list in chat request")
		return ChatResponse{}, &ValidationError{
			Field:   "messages",
			Message: "cannot be empty",
		}
	}
	for _, msg := range req.Messages {
		if msg.Content == "" {
			return ChatResponse{}, &ValidationError{
				Field:   "messages",
				Message: "message content cannot be empty",
			}
		}
	}

	reply, err := s.generator.ChatWithMessages(ctx, req.Messages, llm.ChatParams{})
	if err != nil {
		logger.ErrorContext(ctx, "failed to get chat response", "error", err)
		return ChatResponse{}, WrapError(err, "failed to get chat response")
	}

	logger.InfoContext(ctx, "chat request processed", "messages", len(req.Messages), "reply_length", len(reply))
	return ChatResponse{Reply: reply}, nil
}
