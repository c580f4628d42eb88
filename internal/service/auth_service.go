package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"mockbot-be/internal/dto"
	"mockbot-be/internal/entity"
	"mockbot-be/internal/pkg/apperror"
	"mockbot-be/internal/pkg/mailer"
	"mockbot-be/internal/repository/specification"
	"mockbot-be/internal/repository/unitofwork"
	"mockbot-be/pkg/events"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	EventUserRegistered = "USER_REGISTERED"
	EventUserLogin      = "USER_LOGIN"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory       unitofwork.RepositoryFactory
	emailService     mailer.IEmailService
	publisherService IPublisherService
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	publisherService IPublisherService,
) IAuthService {
	return &authService{
		uowFactory:       uowFactory,
		emailService:     emailService,
		publisherService: publisherService,
	}
}

func toUserResponse(user *entity.User) dto.UserResponse {
	imageURL := ""
	if user.ImageURL != nil {
		imageURL = *user.ImageURL
	}
	return dto.UserResponse{
		Id:        user.Id,
		Name:      user.Name,
		Email:     user.Email,
		ImageURL:  imageURL,
		CreatedAt: user.CreatedAt,
	}
}

func signToken(userId uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return token.SignedString([]byte(secret))
}

// Register creates the account and returns the new user. No token is
// issued; the caller logs in afterwards.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Check for existing user
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Email already in use.")
	}

	// 2. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// 3. Create user
	user := &entity.User{
		Id:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	go func() {
		if emailErr := s.emailService.SendWelcome(user.Email, user.Name); emailErr != nil {
			fmt.Printf("Error sending welcome email: %v\n", emailErr)
		}
	}()

	if s.publisherService != nil {
		_ = s.publisherService.Publish(ctx, events.NewBaseEvent(EventUserRegistered, map[string]interface{}{
			"user_id": user.Id.String(),
			"email":   user.Email,
		}))
	}

	res := toUserResponse(user)
	return &res, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The same message covers unknown email and wrong password.
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.Validation("Invalid credentials.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Validation("Invalid credentials.")
	}

	signedToken, err := signToken(user.Id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if s.publisherService != nil {
		_ = s.publisherService.Publish(ctx, events.NewBaseEvent(EventUserLogin, map[string]interface{}{
			"user_id": user.Id.String(),
		}))
	}

	return &dto.LoginResponse{
		Token: signedToken,
		User:  toUserResponse(user),
	}, nil
}
