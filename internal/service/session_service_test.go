package service

import (
	"context"
	"testing"
	"time"

	"mockbot-be/internal/dto"
	"mockbot-be/internal/entity"
	"mockbot-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSession(t *testing.T, factory *fakeUowFactory, userId uuid.UUID, role string, createdAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := factory.uow.sessions.Create(context.Background(), &entity.InterviewSession{
		Id:        id,
		UserId:    userId,
		Role:      role,
		Messages:  []entity.Message{},
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	return id
}

func TestSaveSessionCreatesNewRecordEachTime(t *testing.T) {
	factory := newFakeUowFactory()
	svc := NewSessionService(factory, nil)
	ctx := context.Background()
	userId := uuid.New()

	req := &dto.SaveSessionRequest{
		Role: "behavioral",
		Messages: []dto.MessageDTO{
			{Sender: "user", Text: "I want to practice Behavioral Questions"},
			{Sender: "bot", Text: "Tell me about a time you led a project."},
			{Sender: "user", Text: "Last year I led a migration."},
			{Sender: "bot", Text: "Good. What was the hardest tradeoff?"},
		},
	}

	first, err := svc.Save(ctx, userId, req)
	require.NoError(t, err)
	second, err := svc.Save(ctx, userId, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.Id, second.Id)

	list, err := svc.List(ctx, userId)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Len(t, list[0].Messages, 4)
}

func TestSaveSessionRequiresRole(t *testing.T) {
	svc := NewSessionService(newFakeUowFactory(), nil)

	_, err := svc.Save(context.Background(), uuid.New(), &dto.SaveSessionRequest{Role: "   "})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestListSessionsNewestFirst(t *testing.T) {
	factory := newFakeUowFactory()
	svc := NewSessionService(factory, nil)
	userId := uuid.New()

	base := time.Now().Add(-time.Hour)
	s1 := seedSession(t, factory, userId, "technical", base)
	s2 := seedSession(t, factory, userId, "behavioral", base.Add(10*time.Minute))
	s3 := seedSession(t, factory, userId, "leadership", base.Add(20*time.Minute))

	list, err := svc.List(context.Background(), userId)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, s3, list[0].Id)
	assert.Equal(t, s2, list[1].Id)
	assert.Equal(t, s1, list[2].Id)
}

func TestSessionsAreOwnerScoped(t *testing.T) {
	factory := newFakeUowFactory()
	svc := NewSessionService(factory, nil)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	sessionId := seedSession(t, factory, owner, "technical", time.Now())

	// Another user cannot see it.
	list, err := svc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Deleting someone else's session reads as missing.
	err = svc.Delete(ctx, other, sessionId)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	// The owner still has it, and can delete it.
	list, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, owner, sessionId))
	list, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteMissingSession(t *testing.T) {
	svc := NewSessionService(newFakeUowFactory(), nil)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestRenameSession(t *testing.T) {
	factory := newFakeUowFactory()
	svc := NewSessionService(factory, nil)
	ctx := context.Background()

	owner := uuid.New()
	sessionId := seedSession(t, factory, owner, "presentation", time.Now())

	renamed, err := svc.Rename(ctx, owner, sessionId, &dto.RenameSessionRequest{Title: "Demo day prep"})
	require.NoError(t, err)
	assert.Equal(t, "Demo day prep", renamed.Title)

	// Rename is owner-scoped like delete.
	_, err = svc.Rename(ctx, uuid.New(), sessionId, &dto.RenameSessionRequest{Title: "hijack"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestSavePublishesEvent(t *testing.T) {
	factory := newFakeUowFactory()
	publisher := &recordingPublisher{}
	svc := NewSessionService(factory, publisher)

	_, err := svc.Save(context.Background(), uuid.New(), &dto.SaveSessionRequest{
		Role:     "technical",
		Messages: []dto.MessageDTO{{Sender: "user", Text: "hello"}},
	})
	require.NoError(t, err)
	assert.Contains(t, publisher.eventTypes(), EventSessionSaved)
}
