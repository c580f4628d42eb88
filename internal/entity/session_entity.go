package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single transcript line. Sender is either "user" or "bot".
type Message struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type InterviewSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Role      string
	Title     string
	Messages  []Message
	CreatedAt time.Time
}
