package apperrors_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_UnwrapsToCause(t *testing.T) {
	err := apperrors.NewAppError(500, "failed to lock bank account", apperrors.ErrNotFound)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "failed to lock bank account: resource not found", err.Error())

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.Code)
}

func TestAppError_WithoutCause(t *testing.T) {
	err := apperrors.NewAppError(400, "invalid page token", nil)
	assert.Equal(t, "invalid page token", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestBusinessRuleAndValidationHelpers(t *testing.T) {
	br := apperrors.BusinessRule("category has %d pending obligations", 2)
	assert.ErrorIs(t, br, apperrors.ErrBusinessRule)
	assert.NotErrorIs(t, br, apperrors.ErrValidation)
	assert.Contains(t, br.Error(), "category has 2 pending obligations")

	v := apperrors.Validation("amount must be positive")
	assert.ErrorIs(t, v, apperrors.ErrValidation)
	assert.Contains(t, v.Error(), "amount must be positive")
}
