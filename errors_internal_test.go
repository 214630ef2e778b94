package flashclass

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestMessageFromBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		fallback string
		expected string
	}{
		{
			name:     "error field wins",
			body:     `{"error":"Invalid credentials","message":"nope","detail":"nah"}`,
			fallback: "Login failed",
			expected: "Invalid credentials",
		},
		{
			name:     "message when no error field",
			body:     `{"message":"User already exists","detail":"dup"}`,
			fallback: "Registration failed",
			expected: "User already exists",
		},
		{
			name:     "detail as last resort",
			body:     `{"detail":"Token has expired"}`,
			fallback: "Login failed",
			expected: "Token has expired",
		},
		{
			name:     "fallback on empty body",
			body:     "",
			fallback: "Login failed",
			expected: "Login failed",
		},
		{
			name:     "fallback on non-JSON body",
			body:     "<html>bad gateway</html>",
			fallback: "An error occurred",
			expected: "An error occurred",
		},
		{
			name:     "fallback when fields are not strings",
			body:     `{"error":42,"message":["x"]}`,
			fallback: "Login failed",
			expected: "Login failed",
		},
		{
			name:     "empty string field is skipped",
			body:     `{"error":"","message":"real message"}`,
			fallback: "Login failed",
			expected: "real message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, messageFromBody([]byte(tt.body), tt.fallback))
		})
	}
}

func TestAPIError(t *testing.T) {
	t.Run("401 maps to auth category", func(t *testing.T) {
		err := apiError(401, []byte(`{"error":"expired"}`), "Login failed")
		assert.Equal(t, goerrors.CategoryAuth, err.Category)
		assert.Equal(t, "expired", err.Message)
		assert.True(t, IsUnauthorizedError(err))
	})

	t.Run("400 maps to validation category", func(t *testing.T) {
		err := apiError(400, []byte(`{"message":"bad payload"}`), "An error occurred")
		assert.Equal(t, goerrors.CategoryValidation, err.Category)
		assert.Equal(t, "bad payload", err.Message)
		assert.False(t, IsUnauthorizedError(err))
	})

	t.Run("500 keeps fallback message", func(t *testing.T) {
		err := apiError(500, nil, "An error occurred")
		assert.Equal(t, goerrors.CategoryInternal, err.Category)
		assert.Equal(t, "An error occurred", err.Message)
	})
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, assert.AnError.Error(), ErrorMessage(assert.AnError))

	rich := apiError(401, []byte(`{"error":"Invalid credentials"}`), "Login failed")
	assert.Equal(t, "Invalid credentials", ErrorMessage(rich))
}
