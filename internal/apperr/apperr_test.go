package apperr

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := New(DataError, "invalid block data structure")
	assert.Equal(t, "invalid block data structure", err.Error())
	assert.False(t, err.Timestamp.IsZero())

	wrapped := Wrap(NetworkError, "tron node request failed", errors.New("connection refused"))
	assert.Equal(t, "tron node request failed: connection refused", wrapped.Error())
	assert.EqualError(t, errors.Cause(wrapped.Unwrap()), "connection refused")
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct", New(DataError, "bad"), DataError},
		{"wrapped by pkg/errors", errors.Wrap(New(NetworkError, "down"), "fetch"), NetworkError},
		{"plain error", errors.New("boom"), ServerError},
		{"nil", nil, ServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	err := errors.Wrap(New(ConfigError, "bad port"), "load")
	assert.True(t, Is(err, ConfigError))
	assert.False(t, Is(err, DataError))
	assert.False(t, Is(errors.New("other"), ConfigError))
}

func TestStatusCode(t *testing.T) {
	for _, kind := range []Kind{ConfigError, NetworkError, DataError, ValidationError, ServerError} {
		assert.Equal(t, http.StatusInternalServerError, StatusCode(kind), kind)
	}
}
