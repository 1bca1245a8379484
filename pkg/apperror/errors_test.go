package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorCarriesFields(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "amount", Message: "Amount must be greater than zero"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, "Validation failed", err.Message)
	require.Len(t, err.Errors, 1)
	assert.Equal(t, "amount", err.Errors[0].Field)
}

func TestGetAppError(t *testing.T) {
	appErr := NewNotFoundError("Counterparty")
	wrapped := fmt.Errorf("loading counterparty: %w", appErr)

	got := GetAppError(wrapped)
	assert.Equal(t, http.StatusNotFound, got.Code)
	assert.Equal(t, "Counterparty not found", got.Message)
	assert.True(t, IsAppError(wrapped))

	plain := errors.New("connection refused")
	got = GetAppError(plain)
	assert.Equal(t, http.StatusInternalServerError, got.Code)
	assert.Equal(t, "connection refused", got.Message)
	assert.False(t, IsAppError(plain))
}

func TestPartialWriteError(t *testing.T) {
	applied := []uuid.UUID{uuid.New(), uuid.New()}
	failed := uuid.New()
	cause := errors.New("connection reset")

	err := &PartialWriteError{
		AppliedInvoiceIDs: applied,
		FailedInvoiceID:   failed,
		Err:               cause,
	}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), failed.String())
	assert.Contains(t, err.Error(), "2 invoice(s)")

	appErr := err.AppError()
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Contains(t, appErr.Message, failed.String())
	assert.Contains(t, appErr.Message, "ledger")
}
