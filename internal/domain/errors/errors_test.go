package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatusAndSentinel(t *testing.T) {
	cases := []struct {
		err      *AppError
		status   int
		sentinel error
	}{
		{BadRequest("bad"), http.StatusBadRequest, ErrInvalidInput},
		{Unauthorized("no"), http.StatusUnauthorized, ErrUnauthorized},
		{Forbidden("denied"), http.StatusForbidden, ErrForbidden},
		{NotFound("missing"), http.StatusNotFound, ErrNotFound},
		{Conflict("dup"), http.StatusConflict, ErrAlreadyExists},
		{TooManyRequests("slow down"), http.StatusTooManyRequests, ErrTooManyRequests},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status)
		assert.ErrorIs(t, tc.err, tc.sentinel)
	}
}

func TestAppError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	appErr := InternalError(cause)

	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "internal server error", appErr.Error())
	assert.Equal(t, cause, errors.Unwrap(appErr))
}

func TestNewAppError(t *testing.T) {
	appErr := NewAppError(http.StatusUnauthorized, "Invalid OTP", ErrInvalidCredentials)
	assert.Equal(t, "Invalid OTP", appErr.Error())
	assert.ErrorIs(t, appErr, ErrInvalidCredentials)
}
