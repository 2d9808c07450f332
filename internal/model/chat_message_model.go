package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one immutable turn in a user's conversation. ConversationId
// equals UserId: each user has a single continuous thread. CreatedAt is the
// ordering key, so the user turn of a pair must be inserted before the bot turn.
type ChatMessage struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Content        string    `gorm:"type:text;not null"`
	IsBot          bool      `gorm:"not null;default:false"`
	ConversationId uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
