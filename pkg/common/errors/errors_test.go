package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid input", fmt.Errorf("bad triple: %w", ErrInvalidInput), http.StatusBadRequest},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"translator", fmt.Errorf("%w: Foo", ErrTranslatorNotFound), http.StatusNotFound},
		{"denied", Denied("add"), http.StatusForbidden},
		{"unsupported", Unsupported("restriction %s", "_:b1"), http.StatusUnprocessableEntity},
		{"recursive", Recursive("_:b2"), http.StatusUnprocessableEntity},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, MapError(tt.err).Code)
		})
	}

	assert.Nil(t, MapError(nil))
}

func TestMapError_KeepsAppError(t *testing.T) {
	appErr := NewAppError(http.StatusTeapot, "teapot", nil)
	wrapped := fmt.Errorf("outer: %w", appErr)

	assert.Same(t, appErr, MapError(wrapped))
	assert.Equal(t, "teapot", appErr.Error())
}

func TestHelpersWrapSentinels(t *testing.T) {
	assert.ErrorIs(t, Unsupported("x"), ErrUnsupportedShape)
	assert.ErrorIs(t, Recursive("_:a"), ErrRecursiveStructure)
	assert.ErrorIs(t, Denied("delete"), ErrModificationDenied)
	assert.Contains(t, Recursive("_:a").Error(), "_:a")
}
