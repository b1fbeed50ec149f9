package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{E(CodeInvalidArgument, "op", "bad", nil), http.StatusBadRequest},
		{E(CodeNotFound, "op", "missing", ErrNotFound), http.StatusNotFound},
		{E(CodeConflict, "op", "busy", nil), http.StatusConflict},
		{E(CodeUnavailable, "op", "ai down", nil), http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", E(CodeNotFound, "op", "x", nil)), http.StatusNotFound},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestErrorFormatting(t *testing.T) {
	err := E(CodeNotFound, "Editor.Get", "draft not found", ErrNotFound)
	assert.Equal(t, "Editor.Get: draft not found: not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeConflict))
	assert.Equal(t, "draft not found", Message(err))
	assert.Equal(t, "internal error", Message(errors.New("boom")))
}
