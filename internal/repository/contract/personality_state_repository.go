package contract

import (
	"context"

	"github.com/google/uuid"

	"ai-companion-be/internal/entity"
)

// PersonalityStateRepository is the store adapter for the per-user trait
// vector. FindByUserId returns (nil, nil) when no state exists yet; that is
// the only recoverable miss. UpdateByUserId re-resolves the row by user id
// rather than trusting a storage id held across the request, and overwrites
// the mutable fields unconditionally (last write wins).
type PersonalityStateRepository interface {
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.PersonalityState, error)
	Create(ctx context.Context, state *entity.PersonalityState) error
	UpdateByUserId(ctx context.Context, state *entity.PersonalityState) error
}
