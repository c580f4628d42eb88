package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InterviewSession struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role      string         `gorm:"type:varchar(100);not null"`
	Title     string         `gorm:"type:varchar(255);not null;default:''"`
	Messages  datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}
