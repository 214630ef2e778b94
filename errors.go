package flashclass

import (
	"encoding/json"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeUnauthorized   = "REQUEST_UNAUTHORIZED"
	textCodeOpInProgress   = "AUTH_OPERATION_IN_PROGRESS"
	textCodeBadTransition  = "INVALID_SESSION_TRANSITION"
	textCodeRequestFailed  = "REQUEST_FAILED"
	textCodeInvalidPayload = "INVALID_PAYLOAD"
)

// ErrNoRefreshToken is the error when a 401 cannot be recovered locally
var ErrNoRefreshToken = errors.New("no refresh token available")

// ErrUnableToDecodeToken is returned when the access token payload cannot be decoded
var ErrUnableToDecodeToken = errors.New("unable to decode token")

// ErrOperationInProgress is returned when a mutating session operation is
// invoked while another one is still in flight.
var ErrOperationInProgress = goerrors.New("authentication operation already in progress", goerrors.CategoryConflict).
	WithTextCode(textCodeOpInProgress).
	WithCode(goerrors.CodeConflict)

// ErrInvalidTransition is returned when a requested session state change is not allowed.
var ErrInvalidTransition = goerrors.New("invalid session state transition", goerrors.CategoryConflict).
	WithTextCode(textCodeBadTransition).
	WithCode(goerrors.CodeConflict)

// Fallback messages when the server response carries no usable message.
const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
	msgProfileFailed  = "Profile update failed"
	msgGenericFailure = "An error occurred"
)

// messageProbeOrder is the preference order for extracting a human-readable
// message from an error response body.
var messageProbeOrder = []string{"error", "message", "detail"}

// messageFromBody applies the ordered extraction rules to a JSON error body
// and falls back to the provided default. Pure; tolerates non-JSON bodies.
func messageFromBody(body []byte, fallback string) string {
	if len(body) == 0 {
		return fallback
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}

	for _, field := range messageProbeOrder {
		if v, ok := payload[field]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}

// apiError builds the structured failure for a non-2xx response.
func apiError(status int, body []byte, fallback string) *goerrors.Error {
	message := messageFromBody(body, fallback)

	switch status {
	case 401, 403:
		return goerrors.New(message, goerrors.CategoryAuth).
			WithTextCode(textCodeUnauthorized).
			WithCode(goerrors.CodeUnauthorized)
	case 400, 422:
		return goerrors.New(message, goerrors.CategoryValidation).
			WithTextCode(textCodeInvalidPayload).
			WithCode(goerrors.CodeBadRequest)
	case 409:
		return goerrors.New(message, goerrors.CategoryConflict).
			WithCode(goerrors.CodeConflict)
	default:
		return goerrors.New(message, goerrors.CategoryInternal).
			WithTextCode(textCodeRequestFailed).
			WithCode(goerrors.CodeInternal)
	}
}

// IsUnauthorizedError checks for the structured 401/403 failure produced by
// the request pipeline.
func IsUnauthorizedError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryAuth
	}
	return false
}

// ErrorMessage extracts the user-facing message from an operation error.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Message
	}
	return err.Error()
}
