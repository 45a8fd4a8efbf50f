package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, TypeInvalidPayload, TypeOf(InvalidPayload("bad date")))
	assert.Equal(t, TypeStorageUnavailable, TypeOf(StorageUnavailable(errors.New("io"))))
	assert.Equal(t, TypeSummaryUnavailable, TypeOf(SummaryUnavailable(errors.New("timeout"))))
	assert.Equal(t, TypeInternal, TypeOf(errors.New("plain")))
}

func TestTypeOfWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", InvalidPayload("bad slot"))
	assert.Equal(t, TypeInvalidPayload, TypeOf(err))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidPayload("x")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(StorageUnavailable(errors.New("io"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(SummaryUnavailable(errors.New("x"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestIsMatchesOnType(t *testing.T) {
	err := StorageUnavailable(errors.New("io"))
	assert.True(t, errors.Is(err, New(TypeStorageUnavailable, "anything")))
	assert.False(t, errors.Is(err, New(TypeInvalidPayload, "anything")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	assert.ErrorIs(t, StorageUnavailable(cause), cause)
}
