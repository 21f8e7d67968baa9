package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/latateni/latateni-server/internal/errors"
	"github.com/latateni/latateni-server/internal/validation"
)

type createCoachRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestValidator_Valid(t *testing.T) {
	v := validation.New()
	err := v.Validate(createCoachRequest{Email: "anna@club.dk", Password: "hemmelig"})
	require.NoError(t, err)
}

func TestValidator_FieldErrorsUseJSONNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(createCoachRequest{Email: "not-an-email", Password: "abc"})
	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	require.Equal(t, "must be a valid email address", details["email"])
	require.Equal(t, "must be at least 6 characters", details["password"])
}

func TestValidator_RequiredFields(t *testing.T) {
	v := validation.New()

	err := v.Validate(createCoachRequest{})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	details := appErr.Details.(map[string]string)
	require.Equal(t, "is required", details["email"])
	require.Equal(t, "is required", details["password"])
}
