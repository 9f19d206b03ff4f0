package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"roombooking/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusErr struct {
	code int
}

func (e statusErr) Error() string   { return "status error" }
func (e statusErr) HTTPStatus() int { return e.code }

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      int
		message   string
		retryable bool
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("validation failed")), code: http.StatusBadRequest, message: "validation failed"},
		{name: "bad request from string", err: failure.BadRequestFromString("weekdays is required"), code: http.StatusBadRequest, message: "weekdays is required"},
		{name: "not found", err: failure.NotFound("room not found"), code: http.StatusNotFound, message: "room not found"},
		{name: "conflict", err: failure.Conflict("occurrence overlaps an existing booking"), code: http.StatusConflict, message: "occurrence overlaps an existing booking"},
		{name: "forbidden", err: failure.Forbidden("not the room owner"), code: http.StatusForbidden, message: "not the room owner"},
		{name: "persistence conflict", err: failure.PersistenceConflict("room changed"), code: http.StatusConflict, message: "room changed", retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure
			require.ErrorAs(t, tt.err, &f)

			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Error())
			assert.Equal(t, tt.retryable, f.Retryable)
		})
	}
}

func TestBadRequest(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))

	cause := errors.New("unknown weekday")
	err := failure.BadRequest(fmt.Errorf("parse recurrence: %w", cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "parse recurrence: unknown weekday", err.Error())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{name: "failure", input: failure.BadRequestFromString("test"), expected: http.StatusBadRequest},
		{name: "wrapped persistence conflict", input: fmt.Errorf("create: %w", failure.PersistenceConflict("room changed")), expected: http.StatusConflict},
		{name: "status coder", input: fmt.Errorf("create: %w", statusErr{code: http.StatusConflict}), expected: http.StatusConflict},
		{name: "regular error", input: errors.New("regular error"), expected: http.StatusInternalServerError},
		{name: "nil error", input: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, failure.IsRetryable(failure.PersistenceConflict("x")))
	assert.True(t, failure.IsRetryable(fmt.Errorf("a: %w", failure.PersistenceConflict("x"))))
	assert.False(t, failure.IsRetryable(failure.Conflict("x")))
	assert.False(t, failure.IsRetryable(errors.New("x")))
	assert.False(t, failure.IsRetryable(nil))
}
