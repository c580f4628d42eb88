package service

import (
	"context"
	"strings"

	"mockbot-be/internal/constant"
	"mockbot-be/internal/dto"
	"mockbot-be/internal/pkg/apperror"
	"mockbot-be/internal/pkg/logger"
	"mockbot-be/pkg/events"
	"mockbot-be/pkg/gemini"
)

const EventChatTurn = "CHAT_TURN"

// blockedWords is a coarse pre-filter applied before anything reaches
// the AI provider.
var blockedWords = []string{"inappropriate", "offensive", "spam", "hack", "exploit"}

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	generator        gemini.Generator
	log              logger.ILogger
	publisherService IPublisherService
}

func NewChatService(generator gemini.Generator, log logger.ILogger, publisherService IPublisherService) IChatService {
	return &chatService{
		generator:        generator,
		log:              log,
		publisherService: publisherService,
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	role := strings.TrimSpace(req.Role)

	// Both checks run before any upstream call.
	if message == "" || role == "" {
		return nil, apperror.Validation("Message and role are required.")
	}

	messageLower := strings.ToLower(message)
	for _, word := range blockedWords {
		if strings.Contains(messageLower, word) {
			return nil, apperror.Validation("Message contains inappropriate content. Please keep it professional and workplace-appropriate.")
		}
	}

	history := make([]constant.HistoryTurn, len(req.ConversationHistory))
	for i, turn := range req.ConversationHistory {
		history[i] = constant.HistoryTurn{
			Sender: turn.Sender,
			Text:   turn.Text,
		}
	}

	prompt := constant.BuildInterviewPrompt(role, req.RoleContext, message, history)

	reply, err := s.generator.GenerateReply(ctx, prompt)
	if err != nil {
		s.log.Warn("chat", "upstream generation failed", map[string]interface{}{
			"role":  role,
			"error": err.Error(),
		})
		return nil, err
	}

	if s.publisherService != nil {
		_ = s.publisherService.Publish(ctx, events.NewBaseEvent(EventChatTurn, map[string]interface{}{
			"role":        role,
			"message_len": len(message),
			"reply_len":   len(reply),
			"history_len": len(history),
		}))
	}

	return &dto.ChatResponse{Reply: reply}, nil
}
