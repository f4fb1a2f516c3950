package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", New(KindValidation, "bad input"), http.StatusBadRequest},
		{"not found", New(KindNotFound, "missing"), http.StatusNotFound},
		{"forbidden", New(KindForbidden, "not yours"), http.StatusForbidden},
		{"conflict booked", New(KindConflictBooked, "taken"), http.StatusConflict},
		{"conflict held", New(KindConflictHeld, "held"), http.StatusConflict},
		{"conflict unavailable", New(KindConflictUnavailable, "blocked"), http.StatusBadRequest},
		{"conflict state", New(KindConflictState, "wrong state"), http.StatusConflict},
		{"expired", New(KindExpired, "too late"), http.StatusBadRequest},
		{"transient", New(KindTransient, "redis down"), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Run("direct error", func(t *testing.T) {
		kind, ok := KindOf(New(KindNotFound, "missing"))
		assert.True(t, ok)
		assert.Equal(t, KindNotFound, kind)
	})

	t.Run("wrapped error", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(KindConflictHeld, "held"))
		kind, ok := KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, KindConflictHeld, kind)
	})

	t.Run("plain error", func(t *testing.T) {
		_, ok := KindOf(errors.New("boom"))
		assert.False(t, ok)
	})
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Hold not found or expired", Message(New(KindNotFound, "Hold not found or expired")))
	assert.Equal(t, "Internal Server Error", Message(errors.New("pq: connection refused")))
}

func TestWrapUnwrap(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	err := Wrap(KindTransient, "Failed to reserve seats. Please try again.", inner)

	assert.True(t, errors.Is(err, inner))
	assert.True(t, IsKind(err, KindTransient))
	assert.Contains(t, err.Error(), "transient")
}

func TestWithSeat(t *testing.T) {
	err := WithSeat(KindConflictHeld, "A3", "Seat A3 is no longer available")
	assert.Equal(t, "A3", err.Seat)
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}
