package service

import (
	"context"
	"sort"
	"sync"

	"mockbot-be/internal/entity"
	"mockbot-be/internal/repository/contract"
	"mockbot-be/internal/repository/specification"
	"mockbot-be/internal/repository/unitofwork"
	"mockbot-be/pkg/events"

	"github.com/google/uuid"
)

// In-memory repository fakes. Specifications are interpreted by type
// so service-level filtering behaves like the real queries.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *fakeUserRepo) matches(user *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if user.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if user.Email != s.Email {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.Id] = &copied
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if r.matches(user, specs) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.User
	for _, user := range r.users {
		if r.matches(user, specs) {
			copied := *user
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeUserRepo) UpdateImage(ctx context.Context, userId uuid.UUID, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userId]; ok {
		user.ImageURL = &imageURL
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userId]; ok {
		user.PasswordHash = hash
	}
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.InterviewSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[uuid.UUID]*entity.InterviewSession{}}
}

func (r *fakeSessionRepo) matches(session *entity.InterviewSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if session.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if session.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.InterviewSession) error {
	return r.Create(ctx, session)
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InterviewSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, session := range r.sessions {
		if r.matches(session, specs) {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.InterviewSession
	for _, session := range r.sessions {
		if r.matches(session, specs) {
			copied := *session
			result = append(result, &copied)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "created_at" {
			sort.Slice(result, func(i, j int) bool {
				if order.Desc {
					return result[i].CreatedAt.After(result[j].CreatedAt)
				}
				return result[i].CreatedAt.Before(result[j].CreatedAt)
			})
		}
	}
	return result, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeActivityLogRepo struct {
	mu   sync.Mutex
	logs []*entity.ActivityLog
}

func newFakeActivityLogRepo() *fakeActivityLogRepo {
	return &fakeActivityLogRepo{}
}

func (r *fakeActivityLogRepo) Create(ctx context.Context, log *entity.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *log
	r.logs = append(r.logs, &copied)
	return nil
}

func (r *fakeActivityLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.ActivityLog{}, r.logs...), nil
}

func (r *fakeActivityLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.logs)), nil
}

type fakeUnitOfWork struct {
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	activity *fakeActivityLogRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return u.users
}

func (u *fakeUnitOfWork) SessionRepository() contract.SessionRepository {
	return u.sessions
}

func (u *fakeUnitOfWork) ActivityLogRepository() contract.ActivityLogRepository {
	return u.activity
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{
		uow: &fakeUnitOfWork{
			users:    newFakeUserRepo(),
			sessions: newFakeSessionRepo(),
			activity: newFakeActivityLogRepo(),
		},
	}
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, evt := range p.events {
		types[i] = evt.EventType()
	}
	return types
}

type fakeGenerator struct {
	mu     sync.Mutex
	calls  int
	prompt string
	reply  string
	err    error
}

func (g *fakeGenerator) GenerateReply(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
