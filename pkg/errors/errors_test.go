package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{"not found", NotFound("Todo %s not found", "abc"), ErrNotFound, "Todo abc not found"},
		{"invalid argument", InvalidArgument("Invalid %s", "dueDatetime"), ErrInvalidArgument, "Invalid dueDatetime"},
		{"internal", Internal(cause, "failed to save todo"), ErrInternal, "failed to save todo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.message, Message(tt.err))
		})
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("sweep: %w", Internal(cause, "failed to load todos"))

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "sweep: failed to load todos: connection reset", err.Error())
	assert.Equal(t, "failed to load todos", Message(err))
}

func TestMessage_PlainError(t *testing.T) {
	assert.Empty(t, Message(errors.New("plain")))
	assert.NotErrorIs(t, errors.New("plain"), ErrNotFound)
}
