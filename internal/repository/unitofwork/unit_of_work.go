package unitofwork

import (
	"context"

	"mockbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	ActivityLogRepository() contract.ActivityLogRepository
}
