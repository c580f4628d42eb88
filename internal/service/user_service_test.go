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
	"golang.org/x/crypto/bcrypt"
)

func newUserServiceForTest() (IUserService, *fakeUowFactory) {
	factory := newFakeUowFactory()
	svc := NewUserService(factory, "./uploads", "http://localhost:5001")
	return svc, factory
}

func seedUser(t *testing.T, factory *fakeUowFactory, name, email, password string) uuid.UUID {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		Id:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, factory.uow.users.Create(context.Background(), user))
	return user.Id
}

func TestUpdateProfilePersistsFields(t *testing.T) {
	svc, factory := newUserServiceForTest()
	ctx := context.Background()
	userId := seedUser(t, factory, "Ada", "ada@example.com", "secret123")

	imageURL := "http://localhost:5001/uploads/profile/ada.png"
	updated, err := svc.UpdateProfile(ctx, userId, &dto.UpdateProfileRequest{
		Name:     "Ada Lovelace",
		Email:    "ada.l@example.com",
		ImageURL: &imageURL,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "ada.l@example.com", updated.Email)
	assert.Equal(t, imageURL, updated.ImageURL)

	profile, err := svc.GetProfile(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Equal(t, imageURL, profile.ImageURL)
}

func TestUpdateProfileKeepsImageWhenOmitted(t *testing.T) {
	svc, factory := newUserServiceForTest()
	ctx := context.Background()
	userId := seedUser(t, factory, "Ada", "ada@example.com", "secret123")

	imageURL := "http://localhost:5001/uploads/profile/ada.png"
	_, err := svc.UpdateProfile(ctx, userId, &dto.UpdateProfileRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		ImageURL: &imageURL,
	})
	require.NoError(t, err)

	// A follow-up update without image_url leaves the stored image alone.
	updated, err := svc.UpdateProfile(ctx, userId, &dto.UpdateProfileRequest{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, imageURL, updated.ImageURL)
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	svc, factory := newUserServiceForTest()
	ctx := context.Background()
	userId := seedUser(t, factory, "Ada", "ada@example.com", "secret123")
	seedUser(t, factory, "Grace", "grace@example.com", "secret123")

	_, err := svc.UpdateProfile(ctx, userId, &dto.UpdateProfileRequest{
		Name:  "Ada",
		Email: "grace@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	svc, factory := newUserServiceForTest()
	ctx := context.Background()
	userId := seedUser(t, factory, "Ada", "ada@example.com", "secret123")

	err := svc.ChangePassword(ctx, userId, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "Current password is incorrect.")

	require.NoError(t, svc.ChangePassword(ctx, userId, &dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	}))
}
