package entity

import (
	"time"

	"github.com/google/uuid"
)

type PersonalityState struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	SassLevel       float64
	Patience        float64
	Sweetness       float64
	Mood            string
	LastInteraction time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
