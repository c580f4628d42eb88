package mapper

import (
	"encoding/json"
	"fmt"

	"mockbot-be/internal/entity"
	"mockbot-be/internal/model"
)

type ActivityLogMapper struct{}

func NewActivityLogMapper() *ActivityLogMapper {
	return &ActivityLogMapper{}
}

func (m *ActivityLogMapper) ToModel(l *entity.ActivityLog) (*model.ActivityLog, error) {
	if l == nil {
		return nil, nil
	}

	var raw []byte
	if l.Payload != nil {
		var err error
		raw, err = json.Marshal(l.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal activity payload: %w", err)
		}
	}

	return &model.ActivityLog{
		Id:         l.Id,
		EventType:  l.EventType,
		Payload:    raw,
		OccurredAt: l.OccurredAt,
		CreatedAt:  l.CreatedAt,
	}, nil
}

func (m *ActivityLogMapper) ToEntity(l *model.ActivityLog) (*entity.ActivityLog, error) {
	if l == nil {
		return nil, nil
	}

	var payload map[string]interface{}
	if len(l.Payload) > 0 {
		if err := json.Unmarshal(l.Payload, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal activity payload: %w", err)
		}
	}

	return &entity.ActivityLog{
		Id:         l.Id,
		EventType:  l.EventType,
		Payload:    payload,
		OccurredAt: l.OccurredAt,
		CreatedAt:  l.CreatedAt,
	}, nil
}
