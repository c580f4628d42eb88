package service

import (
	"context"
	"testing"

	"mockbot-be/internal/dto"
	"mockbot-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRejectsEmptyInputBeforeUpstream(t *testing.T) {
	tests := []struct {
		name    string
		message string
		role    string
	}{
		{name: "empty message", message: "", role: "technical"},
		{name: "whitespace message", message: "   ", role: "technical"},
		{name: "empty role", message: "hello", role: ""},
		{name: "whitespace role", message: "hello", role: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := &fakeGenerator{reply: "should not be called"}
			svc := NewChatService(generator, nopLogger{}, nil)

			_, err := svc.Chat(context.Background(), &dto.ChatRequest{
				Message: tt.message,
				Role:    tt.role,
			})
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.Equal(t, 0, generator.calls)
		})
	}
}

func TestChatBlocksInappropriateContent(t *testing.T) {
	generator := &fakeGenerator{reply: "unused"}
	svc := NewChatService(generator, nopLogger{}, nil)

	_, err := svc.Chat(context.Background(), &dto.ChatRequest{
		Message: "How do I HACK the interview process?",
		Role:    "technical",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, 0, generator.calls)
}

func TestChatBuildsPromptAndReturnsReply(t *testing.T) {
	generator := &fakeGenerator{reply: "Great, let's begin. Tell me about yourself."}
	publisher := &recordingPublisher{}
	svc := NewChatService(generator, nopLogger{}, publisher)

	resp, err := svc.Chat(context.Background(), &dto.ChatRequest{
		Message:     "I'm ready to start",
		Role:        "behavioral",
		RoleContext: "\n\nIMPORTANT CONTEXT: The user is practicing for the skill: behavioral.",
		ConversationHistory: []dto.ChatTurn{
			{Sender: "user", Text: "Hi"},
			{Sender: "bot", Text: "Welcome!"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Great, let's begin. Tell me about yourself.", resp.Reply)
	assert.Equal(t, 1, generator.calls)

	assert.Contains(t, generator.prompt, "behavioral")
	assert.Contains(t, generator.prompt, `"I'm ready to start"`)
	assert.Contains(t, generator.prompt, "IMPORTANT CONTEXT")
	assert.Contains(t, generator.prompt, "Candidate: Hi")

	assert.Contains(t, publisher.eventTypes(), EventChatTurn)
}

func TestChatPropagatesUpstreamErrors(t *testing.T) {
	upstreamErr := apperror.Upstream(apperror.KindUpstreamRateLimited,
		"AI service is busy. Please try again in a moment.", "quota exceeded")
	generator := &fakeGenerator{err: upstreamErr}
	svc := NewChatService(generator, nopLogger{}, nil)

	_, err := svc.Chat(context.Background(), &dto.ChatRequest{
		Message: "hello",
		Role:    "technical",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindUpstreamRateLimited, apperror.KindOf(err))
	assert.Equal(t, 1, generator.calls)
}
