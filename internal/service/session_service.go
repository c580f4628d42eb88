package service

import (
	"context"
	"strings"
	"time"

	"mockbot-be/internal/dto"
	"mockbot-be/internal/entity"
	"mockbot-be/internal/pkg/apperror"
	"mockbot-be/internal/repository/specification"
	"mockbot-be/internal/repository/unitofwork"
	"mockbot-be/pkg/events"

	"github.com/google/uuid"
)

const (
	EventSessionSaved   = "SESSION_SAVED"
	EventSessionDeleted = "SESSION_DELETED"
)

type ISessionService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveSessionRequest) (*dto.SessionResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	Rename(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.RenameSessionRequest) (*dto.SessionResponse, error)
}

type sessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) ISessionService {
	return &sessionService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func toMessageEntities(messages []dto.MessageDTO) []entity.Message {
	result := make([]entity.Message, len(messages))
	for i, m := range messages {
		ts := m.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		result[i] = entity.Message{
			Sender:    m.Sender,
			Text:      m.Text,
			Timestamp: ts,
		}
	}
	return result
}

func toSessionResponse(session *entity.InterviewSession) *dto.SessionResponse {
	messages := make([]dto.MessageDTO, len(session.Messages))
	for i, m := range session.Messages {
		messages[i] = dto.MessageDTO{
			Sender:    m.Sender,
			Text:      m.Text,
			Timestamp: m.Timestamp,
		}
	}
	return &dto.SessionResponse{
		Id:        session.Id,
		Role:      session.Role,
		Title:     session.Title,
		Messages:  messages,
		CreatedAt: session.CreatedAt,
	}
}

// Save always creates a new record. Saving the same transcript twice
// yields two sessions.
func (s *sessionService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveSessionRequest) (*dto.SessionResponse, error) {
	if strings.TrimSpace(req.Role) == "" {
		return nil, apperror.Validation("role is required")
	}

	session := &entity.InterviewSession{
		Id:        uuid.New(),
		UserId:    userId,
		Role:      req.Role,
		Title:     req.Title,
		Messages:  toMessageEntities(req.Messages),
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}

	if s.publisherService != nil {
		_ = s.publisherService.Publish(ctx, events.NewBaseEvent(EventSessionSaved, map[string]interface{}{
			"user_id":    userId.String(),
			"session_id": session.Id.String(),
			"role":       session.Role,
			"messages":   len(session.Messages),
		}))
	}

	return toSessionResponse(session), nil
}

func (s *sessionService) List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	result := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		result[i] = toSessionResponse(session)
	}
	return result, nil
}

// Delete is owner-scoped. A session belonging to another user is
// indistinguishable from a missing one.
func (s *sessionService) Delete(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if session == nil {
		return apperror.NotFound("Session not found.")
	}

	if err := uow.SessionRepository().Delete(ctx, sessionId); err != nil {
		return apperror.Internal(err)
	}

	if s.publisherService != nil {
		_ = s.publisherService.Publish(ctx, events.NewBaseEvent(EventSessionDeleted, map[string]interface{}{
			"user_id":    userId.String(),
			"session_id": sessionId.String(),
		}))
	}
	return nil
}

func (s *sessionService) Rename(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.RenameSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if session == nil {
		return nil, apperror.NotFound("Session not found.")
	}

	session.Title = req.Title
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}

	return toSessionResponse(session), nil
}
