package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Content        string
	IsBot          bool
	ConversationId uuid.UUID
	CreatedAt      time.Time
}
