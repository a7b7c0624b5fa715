package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	cause := errors.New("connection refused")

	testCases := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{"validation", Validation("falta el nombre"), ErrValidation, "falta el nombre"},
		{"conflict", Conflict("ya existe"), ErrConflict, "ya existe"},
		{"not found", NotFound("no existe"), ErrNotFound, "no existe"},
		{"method not allowed", MethodNotAllowed("metodo no permitido"), ErrMethodNotAllowed, "metodo no permitido"},
		{"too large", TooLarge("demasiado grande"), ErrTooLarge, "demasiado grande"},
		{"unexpected", Unexpected("no se pudo guardar", cause), ErrUnexpected, "no se pudo guardar"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.kind)
			assert.Equal(t, tc.message, Message(tc.err))
		})
	}
}

func TestUnexpectedKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("create category: %w", Unexpected("no se pudo guardar", cause))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "no se pudo guardar", Message(err))
}

func TestMessageOfPlainError(t *testing.T) {
	assert.Equal(t, "error inesperado", Message(errors.New("boom")))
}
