package contract

import (
	"context"

	"mockbot-be/internal/entity"
	"mockbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpdateImage(ctx context.Context, userId uuid.UUID, imageURL string) error
	UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error
}
