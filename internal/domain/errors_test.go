package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrSessionExpired},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusUnprocessableEntity, ErrValidation},
		{http.StatusBadRequest, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			err := &APIError{StatusCode: tt.status, Detail: "detail"}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// A 401 is never a validation failure.
	err := &APIError{StatusCode: http.StatusUnauthorized}
	assert.NotErrorIs(t, err, ErrValidation)

	// 5xx matches no sentinel.
	err = &APIError{StatusCode: http.StatusBadGateway}
	assert.NotErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestAPIError_IsMatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("saving text: %w", &APIError{StatusCode: http.StatusNotFound})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"server error", &APIError{StatusCode: http.StatusInternalServerError}, true},
		{"bad gateway", &APIError{StatusCode: http.StatusBadGateway}, true},
		{"unauthorized", &APIError{StatusCode: http.StatusUnauthorized}, false},
		{"not found", &APIError{StatusCode: http.StatusNotFound}, false},
		{"validation", &APIError{StatusCode: http.StatusUnprocessableEntity}, false},
		{"transport failure", errors.New("connection refused"), true},
		{"local validation", fmt.Errorf("bad title: %w", ErrValidation), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transient(tt.err))
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	withDetail := &APIError{StatusCode: 404, Detail: "project not found"}
	assert.Contains(t, withDetail.Error(), "project not found")

	bare := &APIError{StatusCode: 500}
	assert.Contains(t, bare.Error(), "500")
}
