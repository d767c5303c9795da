package models

import "time"

// Processing status values reported by the document-ingestion pipeline.
const (
	ProcessingPending    = "pending"
	ProcessingStarting   = "starting"
	ProcessingInProgress = "processing"
	ProcessingCompleted  = "completed"
	ProcessingFailed     = "failed"
	ProcessingNotFound   = "not_found"
)

// ProcessingStatus is the polled state of a material-ingestion job.
type ProcessingStatus struct {
	MaterialID      string `json:"materialId"`
	Status          string `json:"status"`
	ProcessedChunks int    `json:"processedChunks,omitempty"`
	TotalChunks     int    `json:"totalChunks,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Terminal reports whether the ingestion job can make no further progress.
func (p *ProcessingStatus) Terminal() bool {
	switch p.Status {
	case ProcessingCompleted, ProcessingFailed, ProcessingNotFound:
		return true
	}
	return false
}

// InitiateChatResult is the response to the initiate-ai-chat call. The backend
// may report an existing conversation or an already-processed material, in
// which case no polling is needed.
type InitiateChatResult struct {
	ConversationID   string `json:"conversationId,omitempty"`
	AlreadyProcessed bool   `json:"alreadyProcessed"`
	Status           string `json:"status,omitempty"`
}

// Conversation is an AI chat thread linked to a processed material.
type Conversation struct {
	ID         string        `json:"id"`
	MaterialID string        `json:"materialId"`
	Title      string        `json:"title,omitempty"`
	Messages   []ChatMessage `json:"messages,omitempty"`
	CreatedAt  *time.Time    `json:"createdAt,omitempty"`
}

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversationId"`
	Role           string     `json:"role"` // "user" or "assistant"
	Content        string     `json:"content"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}
