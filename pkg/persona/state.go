package persona

import (
	"time"

	"github.com/google/uuid"

	"ai-companion-be/internal/entity"
)

// Moods is the closed set of moods a companion can be in.
var Moods = []string{
	MoodIrritated,
	MoodPlayful,
	MoodSarcastic,
	MoodDramatic,
	MoodPassiveAggressive,
}

const (
	MoodIrritated         = "irritated"
	MoodPlayful           = "playful"
	MoodSarcastic         = "sarcastic"
	MoodDramatic          = "dramatic"
	MoodPassiveAggressive = "passive-aggressive"
)

// Trait bounds and drift parameters.
const (
	TraitMin = 0.1
	TraitMax = 1.0

	driftSpread      = 0.1 // each step moves a trait by at most half of this
	moodSwitchChance = 0.2
)

func IsValidMood(mood string) bool {
	for _, m := range Moods {
		if m == mood {
			return true
		}
	}
	return false
}

// NewDefaultState draws the initial trait vector for a user's first contact:
// sass in [0.5, 1.0), patience in [0.2, 0.8), sweetness in [0.3, 0.7), a
// uniformly random mood.
func NewDefaultState(userId uuid.UUID, rng Rand, now time.Time) *entity.PersonalityState {
	return &entity.PersonalityState{
		UserId:          userId,
		SassLevel:       0.5 + rng.Float64()*0.5,
		Patience:        0.2 + rng.Float64()*0.6,
		Sweetness:       0.3 + rng.Float64()*0.4,
		Mood:            Moods[rng.Intn(len(Moods))],
		LastInteraction: now,
	}
}

// Evolve advances the trait vector one step after a completed turn: each
// trait drifts by an independent uniform delta in [-0.05, +0.05] and is
// clamped back into [0.1, 1.0], the mood is redrawn with probability 0.2
// (the redraw may repeat the current mood), and LastInteraction is stamped.
// The input state is left untouched; a new state is returned.
func Evolve(state *entity.PersonalityState, rng Rand, now time.Time) *entity.PersonalityState {
	next := *state

	next.SassLevel = clampTrait(next.SassLevel + (rng.Float64()-0.5)*driftSpread)
	next.Patience = clampTrait(next.Patience + (rng.Float64()-0.5)*driftSpread)
	next.Sweetness = clampTrait(next.Sweetness + (rng.Float64()-0.5)*driftSpread)

	if rng.Float64() < moodSwitchChance {
		next.Mood = Moods[rng.Intn(len(Moods))]
	}

	next.LastInteraction = now
	return &next
}

func clampTrait(v float64) float64 {
	if v < TraitMin {
		return TraitMin
	}
	if v > TraitMax {
		return TraitMax
	}
	return v
}
