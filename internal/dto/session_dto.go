package dto

import (
	"time"

	"github.com/google/uuid"
)

type MessageDTO struct {
	Sender    string    `json:"sender" validate:"required,oneof=user bot"`
	Text      string    `json:"text" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
}

type SaveSessionRequest struct {
	Role     string       `json:"role" validate:"required"`
	Title    string       `json:"title"`
	Messages []MessageDTO `json:"messages" validate:"omitempty,dive"`
}

type RenameSessionRequest struct {
	Title string `json:"title" validate:"required"`
}

type SessionResponse struct {
	Id        uuid.UUID    `json:"id"`
	Role      string       `json:"role"`
	Title     string       `json:"title"`
	Messages  []MessageDTO `json:"messages"`
	CreatedAt time.Time    `json:"created_at"`
}
