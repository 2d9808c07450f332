package persona

import (
	"fmt"
	"strings"

	"ai-companion-be/internal/entity"
)

var petNames = []string{"honey", "sweetie", "babe", "dear"}

var sassAsides = []string{"ugh", "sigh", "eye roll"}

// Stylizer rewrites raw model output into the companion's voice. It is
// deliberately stochastic; tests exercise it with a seeded Rand.
type Stylizer struct {
	rng Rand
}

func NewStylizer(rng Rand) *Stylizer {
	return &Stylizer{rng: rng}
}

// Apply trims the raw text, prepends a pet-name opener when sass exceeds 0.7
// (lowercasing the rest of the message), and appends a sass interjection with
// probability equal to the sass level.
func (s *Stylizer) Apply(raw string, state *entity.PersonalityState) string {
	response := strings.TrimSpace(raw)

	if state.SassLevel > 0.7 {
		petName := petNames[s.rng.Intn(len(petNames))]
		response = fmt.Sprintf("Look, %s, %s", petName, strings.ToLower(response))
	}

	if s.rng.Float64() < state.SassLevel {
		response = fmt.Sprintf("%s %s", response, s.pickInterjection())
	}

	return response
}

func (s *Stylizer) pickInterjection() string {
	patterns := []string{
		fmt.Sprintf("*%s*", sassAsides[s.rng.Intn(len(sassAsides))]),
		"... whatever 💅",
		"just saying 🙄",
	}
	return patterns[s.rng.Intn(len(patterns))]
}
