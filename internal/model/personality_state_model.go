package model

import (
	"time"

	"github.com/google/uuid"
)

// PersonalityState holds the per-user trait vector. Exactly one row per user;
// the unique index backs that invariant.
type PersonalityState struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	SassLevel       float64   `gorm:"type:double precision;not null"`
	Patience        float64   `gorm:"type:double precision;not null"`
	Sweetness       float64   `gorm:"type:double precision;not null"`
	Mood            string    `gorm:"type:varchar(50);not null"`
	LastInteraction time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (PersonalityState) TableName() string {
	return "personality_states"
}
