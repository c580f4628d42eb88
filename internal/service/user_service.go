package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"mockbot-be/internal/dto"
	"mockbot-be/internal/pkg/apperror"
	"mockbot-be/internal/repository/specification"
	"mockbot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error
	UploadProfileImage(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (string, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	uploadDir  string
	baseURL    string
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, uploadDir, baseURL string) IUserService {
	return &userService{
		uowFactory: uowFactory,
		uploadDir:  uploadDir,
		baseURL:    baseURL,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found.")
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found.")
	}

	if req.Email != user.Email {
		// New email must not belong to another account.
		existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if existing != nil && existing.Id != userId {
			return nil, apperror.Conflict("Email already in use.")
		}
		user.Email = req.Email
	}

	user.Name = req.Name
	if req.ImageURL != nil {
		user.ImageURL = req.ImageURL
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.NotFound("User not found.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperror.Validation("Current password is incorrect.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := uow.UserRepository().UpdatePassword(ctx, userId, string(hash)); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *userService) UploadProfileImage(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (string, error) {
	// 1. Validate file size (max 2MB)
	if file.Size > 2*1024*1024 {
		return "", apperror.Validation("File too large (max 2MB).")
	}

	// 2. Open file
	src, err := file.Open()
	if err != nil {
		return "", apperror.Internal(err)
	}
	defer src.Close()

	// 3. Create upload directory
	uploadDir := filepath.Join(s.uploadDir, "profile")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", apperror.Internal(err)
	}

	// 4. Generate unique filename
	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("%s_%d%s", userId.String(), time.Now().Unix(), ext)
	dstPath := filepath.Join(uploadDir, filename)

	// 5. Save file
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", apperror.Internal(err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", apperror.Internal(err)
	}

	// 6. Generate public URL
	publicURL := fmt.Sprintf("%s/uploads/profile/%s", s.baseURL, filename)

	// 7. Update user profile in DB
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().UpdateImage(ctx, userId, publicURL); err != nil {
		return "", apperror.Internal(err)
	}

	return publicURL, nil
}
