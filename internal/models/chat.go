package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRecord is one persisted prompt/reply exchange. Records are append-only.
type ChatRecord struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	Prompt    string    `json:"prompt" gorm:"type:text;not null"`
	Reply     string    `json:"reply" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}

func (ChatRecord) TableName() string {
	return "chats"
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Prompt string `json:"prompt"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// RecordEvent is published on the record feed after a ChatRecord is stored.
type RecordEvent struct {
	Type   string      `json:"type"`
	Record *ChatRecord `json:"record"`
}
