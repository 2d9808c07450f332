package implementation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/mapper"
	"ai-companion-be/internal/model"
	"ai-companion-be/internal/repository/contract"
)

type PersonalityStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CompanionMapper
}

func NewPersonalityStateRepository(db *gorm.DB) contract.PersonalityStateRepository {
	return &PersonalityStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewCompanionMapper(),
	}
}

func (r *PersonalityStateRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.PersonalityState, error) {
	var m model.PersonalityState
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PersonalityStateToEntity(&m), nil
}

func (r *PersonalityStateRepositoryImpl) Create(ctx context.Context, state *entity.PersonalityState) error {
	m := r.mapper.PersonalityStateToModel(state)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*state = *r.mapper.PersonalityStateToEntity(m)
	return nil
}

func (r *PersonalityStateRepositoryImpl) UpdateByUserId(ctx context.Context, state *entity.PersonalityState) error {
	// Resolve the row again by user id; the storage id from the earlier read
	// is not assumed to still be in hand. Concurrent writers race here and
	// the last write wins.
	var m model.PersonalityState
	if err := r.db.WithContext(ctx).Where("user_id = ?", state.UserId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("personality state for user %s disappeared", state.UserId)
		}
		return err
	}

	updates := map[string]interface{}{
		"sass_level":       state.SassLevel,
		"patience":         state.Patience,
		"sweetness":        state.Sweetness,
		"mood":             state.Mood,
		"last_interaction": state.LastInteraction,
	}
	return r.db.WithContext(ctx).Model(&m).Updates(updates).Error
}
