package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsErrorType_Wrapped(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("recording: %w", NewGraphQueryFailed("record_action", cause))

	assert.True(t, IsErrorType(err, ErrorTypeGraph))
	assert.False(t, IsErrorType(err, ErrorTypeConfig))
	assert.ErrorIs(t, err, cause)
}

func TestUserNotFoundMessage(t *testing.T) {
	err := NewUserNotFound("missing@x.com")

	assert.Equal(t, "User not found", err.Message)
	assert.True(t, IsUserNotFound(fmt.Errorf("lookup: %w", err)))
	assert.True(t, IsErrorType(err, ErrorTypeTracking))
}

func TestInvalidInput(t *testing.T) {
	err := NewInvalidInput("status", "must be success or failure")

	assert.True(t, IsInvalidInput(err))
	assert.Contains(t, err.Error(), "invalid status")
	assert.False(t, IsUserNotFound(err))
}
