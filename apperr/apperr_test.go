package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "missing")))
	assert.Equal(t, Conflict, KindOf(New(Conflict, "duplicate")))
	assert.Equal(t, Unexpected, KindOf(errors.New("plain")))
	assert.Equal(t, Unexpected, KindOf(Wrap(errors.New("db down"), "Failed to fetch")))
}

func TestKindOfWrappedChain(t *testing.T) {
	inner := New(Forbidden, "Forbidden scope")
	outer := fmt.Errorf("while checking: %w", inner)
	assert.Equal(t, Forbidden, KindOf(outer))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "missing", New(NotFound, "missing").Error())

	wrapped := Wrap(errors.New("db down"), "Failed to fetch")
	assert.Equal(t, "Failed to fetch: db down", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "db down")
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, StatusCode(Unauthenticated))
	assert.Equal(t, http.StatusForbidden, StatusCode(Forbidden))
	assert.Equal(t, http.StatusBadRequest, StatusCode(InvalidInput))
	assert.Equal(t, http.StatusNotFound, StatusCode(NotFound))
	assert.Equal(t, http.StatusConflict, StatusCode(Conflict))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(Unexpected))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(Kind(0)))
}
