package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("user", nil).StatusCode())
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad", nil).StatusCode())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("no", nil).StatusCode())
	assert.Equal(t, http.StatusForbidden, Forbidden("no", nil).StatusCode())
	assert.Equal(t, http.StatusInternalServerError, Internal(errors.New("boom")).StatusCode())
}

// Conflicts deliberately surface as 400, distinguished by code and
// message rather than by status.
func TestConflictMapsTo400(t *testing.T) {
	err := Conflict("This request has already been accepted", nil)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode())
	assert.Equal(t, ErrConflict, err.Code)
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	inner := NotFound("bed", nil)
	wrapped := fmt.Errorf("loading: %w", inner)

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrNotFound, appErr.Code)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(Conflict("bed is occupied", nil)))
	assert.False(t, IsConflict(BadRequest("invalid", nil)))
	assert.False(t, IsConflict(nil))
}

func TestErrorStringIncludesCause(t *testing.T) {
	cause := errors.New("row not found")
	err := NotFound("reservation", cause)
	assert.Contains(t, err.Error(), "reservation not found")
	assert.Contains(t, err.Error(), "row not found")
	assert.Equal(t, cause, errors.Unwrap(err))
}
