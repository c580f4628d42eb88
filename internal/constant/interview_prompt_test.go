package constant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleForRole(t *testing.T) {
	t.Run("known role returns its style", func(t *testing.T) {
		style := StyleForRole("behavioral")
		assert.Equal(t, "experience-based questions", style.Approach)
	})

	t.Run("unknown role falls back to technical", func(t *testing.T) {
		style := StyleForRole("backend-engineer")
		assert.Equal(t, roleStyles["technical"], style)
	})
}

func TestBuildInterviewPrompt(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		history := []HistoryTurn{
			{Sender: ChatMessageSenderUser, Text: "I want to practice Technical Skills"},
			{Sender: ChatMessageSenderBot, Text: "Great, tell me about yourself."},
		}
		first := BuildInterviewPrompt("technical", "extra context", "ready", history)
		second := BuildInterviewPrompt("technical", "extra context", "ready", history)
		assert.Equal(t, first, second)
	})

	t.Run("contains role style and message", func(t *testing.T) {
		prompt := BuildInterviewPrompt("leadership", "", "I lead a team of five", nil)
		assert.Contains(t, prompt, "leadership scenarios and decision-making")
		assert.Contains(t, prompt, "Current skill area: leadership")
		assert.Contains(t, prompt, `"I lead a team of five"`)
	})

	t.Run("includes role context when supplied", func(t *testing.T) {
		prompt := BuildInterviewPrompt("technical", "IMPORTANT CONTEXT: the user is practicing for the role: SRE.", "hi", nil)
		assert.Contains(t, prompt, "practicing for the role: SRE")
	})

	t.Run("labels history turns", func(t *testing.T) {
		history := []HistoryTurn{
			{Sender: ChatMessageSenderUser, Text: "my answer"},
			{Sender: ChatMessageSenderBot, Text: "my question"},
		}
		prompt := BuildInterviewPrompt("behavioral", "", "next", history)
		assert.Contains(t, prompt, "Candidate: my answer")
		assert.Contains(t, prompt, "Coach: my question")
	})

	t.Run("omits history block when empty", func(t *testing.T) {
		prompt := BuildInterviewPrompt("technical", "", "hello", nil)
		assert.False(t, strings.Contains(prompt, "Conversation so far:"))
	})
}
