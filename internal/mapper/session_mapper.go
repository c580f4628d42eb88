package mapper

import (
	"encoding/json"
	"fmt"

	"mockbot-be/internal/entity"
	"mockbot-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.InterviewSession) (*entity.InterviewSession, error) {
	if s == nil {
		return nil, nil
	}

	var messages []entity.Message
	if len(s.Messages) > 0 {
		if err := json.Unmarshal(s.Messages, &messages); err != nil {
			return nil, fmt.Errorf("unmarshal session messages: %w", err)
		}
	}

	return &entity.InterviewSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Role:      s.Role,
		Title:     s.Title,
		Messages:  messages,
		CreatedAt: s.CreatedAt,
	}, nil
}

func (m *SessionMapper) ToModel(s *entity.InterviewSession) (*model.InterviewSession, error) {
	if s == nil {
		return nil, nil
	}

	// Stored as "[]" rather than NULL so reads never hit an empty jsonb.
	messages := s.Messages
	if messages == nil {
		messages = []entity.Message{}
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("marshal session messages: %w", err)
	}

	return &model.InterviewSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Role:      s.Role,
		Title:     s.Title,
		Messages:  raw,
		CreatedAt: s.CreatedAt,
	}, nil
}

func (m *SessionMapper) ToEntities(sessions []*model.InterviewSession) ([]*entity.InterviewSession, error) {
	entities := make([]*entity.InterviewSession, len(sessions))
	for i, s := range sessions {
		e, err := m.ToEntity(s)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
