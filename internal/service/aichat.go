package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/classpilot/classpilot-go/internal/api"
	"github.com/classpilot/classpilot-go/internal/models"
)

// AIChatService covers AI chat over processed materials: initiating or
// attaching to a chat, observing document ingestion, and exchanging messages.
type AIChatService struct {
	client *api.Client
}

// NewAIChatService creates an AIChatService on the shared client.
func NewAIChatService(client *api.Client) *AIChatService {
	return &AIChatService{client: client}
}

// InitiateChat starts (or attaches to) an AI chat for a material. The result
// may already name a conversation or report the material as processed, in
// which case no status polling is needed.
func (s *AIChatService) InitiateChat(ctx context.Context, materialID string) (*api.Result[models.InitiateChatResult], error) {
	return api.Do[models.InitiateChatResult](ctx, s.client, api.Request{
		Endpoint: "/ai-chat/initiate-ai-chat",
		Method:   http.MethodPost,
		Body:     map[string]string{"materialId": materialID},
	})
}

// ProcessingStatus reports the ingestion state of a material.
func (s *AIChatService) ProcessingStatus(ctx context.Context, materialID string) (*api.Result[models.ProcessingStatus], error) {
	return api.Do[models.ProcessingStatus](ctx, s.client, api.Request{
		Endpoint: "/ai-chat/processing-status/" + url.PathEscape(materialID),
		Method:   http.MethodGet,
	})
}

// SendMessageRequest is an outgoing chat message.
type SendMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
}

// SendMessage sends a user message and returns the assistant's reply.
func (s *AIChatService) SendMessage(ctx context.Context, req SendMessageRequest) (*api.Result[models.ChatMessage], error) {
	return api.Do[models.ChatMessage](ctx, s.client, api.Request{
		Endpoint: "/ai-chat/send-message",
		Method:   http.MethodPost,
		Body:     req,
	})
}

// Conversation fetches a conversation with its messages.
func (s *AIChatService) Conversation(ctx context.Context, conversationID string) (*api.Result[models.Conversation], error) {
	return api.Do[models.Conversation](ctx, s.client, api.Request{
		Endpoint: "/ai-chat/conversations/" + url.PathEscape(conversationID),
		Method:   http.MethodGet,
	})
}
