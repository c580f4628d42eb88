package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	Id         uuid.UUID
	EventType  string
	Payload    map[string]interface{}
	OccurredAt time.Time
	CreatedAt  time.Time
}
