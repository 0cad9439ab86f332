package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataAccessError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, NewDataAccessError("services.list", nil))
	})

	t.Run("wraps cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewDataAccessError("services.list", cause)
		require.Error(t, err)
		assert.True(t, IsDataAccessError(err))
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "services.list: connection refused", err.Error())
	})

	t.Run("does not double wrap", func(t *testing.T) {
		inner := NewDataAccessError("vehicles.get", errors.New("boom"))
		outer := NewDataAccessError("services.list", inner)
		assert.Same(t, inner, outer)
	})
}

func TestGetAppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "app error keeps code", err: NewNotFoundError("Service"), code: http.StatusNotFound},
		{name: "validation", err: NewValidationError([]FieldError{{Field: "name", Message: "required"}}), code: http.StatusUnprocessableEntity},
		{name: "data access", err: NewDataAccessError("sales.create", errors.New("constraint")), code: http.StatusBadGateway},
		{name: "partial write", err: NewPartialWriteError("abc", "service_parts.create", errors.New("fk")), code: http.StatusBadGateway},
		{name: "plain error", err: errors.New("unexpected"), code: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, GetAppError(tc.err).Code)
		})
	}
}

func TestPartialWriteError(t *testing.T) {
	cause := errors.New("insert failed")
	err := NewPartialWriteError("svc-1", "service_parts.create", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "svc-1")
	assert.Contains(t, err.Error(), "service_parts.create")
}
