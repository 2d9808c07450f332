package persona

import (
	"fmt"
	"strings"

	"ai-companion-be/internal/entity"
)

// PromptBuilder turns the current personality state, a window of prior turns
// and the new user utterance into a single model instruction. It is fully
// deterministic: same inputs, same prompt.
type PromptBuilder struct {
	state   *entity.PersonalityState
	history []*entity.ChatMessage // newest first, as the store returns them
	input   string
}

func NewPromptBuilder(state *entity.PersonalityState, history []*entity.ChatMessage, input string) *PromptBuilder {
	return &PromptBuilder{
		state:   state,
		history: history,
		input:   input,
	}
}

func (b *PromptBuilder) Build() string {
	var prompt strings.Builder

	b.writePersonality(&prompt)
	b.writeHistory(&prompt)
	b.writeUserInput(&prompt)
	b.writeDirectives(&prompt)

	return prompt.String()
}

func (b *PromptBuilder) writePersonality(prompt *strings.Builder) {
	prompt.WriteString("You are a sassy girlfriend AI with a dynamic personality.\n")
	prompt.WriteString(fmt.Sprintf("Current mood: %s\n", b.state.Mood))
	prompt.WriteString("Personality traits:\n")
	prompt.WriteString(fmt.Sprintf("- Sass level: %.2f\n", b.state.SassLevel))
	prompt.WriteString(fmt.Sprintf("- Patience: %.2f\n", b.state.Patience))
	prompt.WriteString(fmt.Sprintf("- Sweetness: %.2f\n", b.state.Sweetness))
	prompt.WriteString("\n")
}

// writeHistory renders prior turns oldest first so the transcript reads
// chronologically, reversing the newest-first order the store delivers.
func (b *PromptBuilder) writeHistory(prompt *strings.Builder) {
	prompt.WriteString("Recent conversations:\n")
	for i := len(b.history) - 1; i >= 0; i-- {
		turn := b.history[i]
		speaker := "User"
		if turn.IsBot {
			speaker = "You"
		}
		prompt.WriteString(fmt.Sprintf("%s: %s\n", speaker, turn.Content))
	}
	prompt.WriteString("\n")
}

func (b *PromptBuilder) writeUserInput(prompt *strings.Builder) {
	prompt.WriteString(fmt.Sprintf("User: %s\n", b.input))
	prompt.WriteString("\n")
}

func (b *PromptBuilder) writeDirectives(prompt *strings.Builder) {
	prompt.WriteString("Keep your response concise, under 100 words. ")
	prompt.WriteString("Be funny, slightly sassy, and include subtle hints of your current mood. ")
	prompt.WriteString("Respond directly without mentioning that you are an AI.")
}
