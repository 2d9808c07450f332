package mapper

import (
	"time"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/model"
)

type CompanionMapper struct{}

func NewCompanionMapper() *CompanionMapper {
	return &CompanionMapper{}
}

// Personality State Mappers

func (m *CompanionMapper) PersonalityStateToEntity(s *model.PersonalityState) *entity.PersonalityState {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.PersonalityState{
		Id:              s.Id,
		UserId:          s.UserId,
		SassLevel:       s.SassLevel,
		Patience:        s.Patience,
		Sweetness:       s.Sweetness,
		Mood:            s.Mood,
		LastInteraction: s.LastInteraction,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *CompanionMapper) PersonalityStateToModel(s *entity.PersonalityState) *model.PersonalityState {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.PersonalityState{
		Id:              s.Id,
		UserId:          s.UserId,
		SassLevel:       s.SassLevel,
		Patience:        s.Patience,
		Sweetness:       s.Sweetness,
		Mood:            s.Mood,
		LastInteraction: s.LastInteraction,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

// Chat Message Mappers

func (m *CompanionMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:             msg.Id,
		UserId:         msg.UserId,
		Content:        msg.Content,
		IsBot:          msg.IsBot,
		ConversationId: msg.ConversationId,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *CompanionMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:             msg.Id,
		UserId:         msg.UserId,
		Content:        msg.Content,
		IsBot:          msg.IsBot,
		ConversationId: msg.ConversationId,
		CreatedAt:      msg.CreatedAt,
	}
}
