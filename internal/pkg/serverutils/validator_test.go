package serverutils

import (
	"testing"

	"mockbot-be/internal/dto"
	"mockbot-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequestUpdateProfile(t *testing.T) {
	// Both name and email must be present.
	err := ValidateRequest(dto.UpdateProfileRequest{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "email is required")

	err = ValidateRequest(dto.UpdateProfileRequest{Name: "Ada", Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email address")

	// image_url stays optional.
	assert.NoError(t, ValidateRequest(dto.UpdateProfileRequest{Name: "Ada", Email: "ada@example.com"}))
}

func TestValidateRequestRegister(t *testing.T) {
	err := ValidateRequest(dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password must be at least 6 characters")
}
