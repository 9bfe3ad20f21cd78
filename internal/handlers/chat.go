package handlers

import (
	"encoding/json"
	"net/http"

	"rfp-rag/internal/contextutil"
	"rfp-rag/internal/llm"
	"rfp-rag/internal/service"
)

// ChatHandler handles direct chat passthrough requests.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatMessage is one turn of the forwarded conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload for chat passthrough.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the model's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ServeHTTP handles POST /api/chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", "malformed JSON body")
		return
	}

	messages := make([]llm.Message, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = llm.Message{Role: msg.Role, Content: msg.Content}
	}

	resp, err := h.chatService.ProcessChat(ctx, service.ChatRequest{Messages: messages})
	if err != nil {
		writeDomainError(w, ctx, err)
		return
	}

	logger.InfoContext(ctx, "chat processed", "messages", len(messages))
	writeJSON(w, http.StatusOK, ChatResponse{Reply: resp.Reply})
}
