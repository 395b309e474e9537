package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewMissingTokenError(), http.StatusUnauthorized},
		{NewInvalidCredentialsError(), http.StatusUnauthorized},
		{NewNotFoundError("Incident"), http.StatusNotFound},
		{NewInvalidIdentifierError("Incident", "abc"), http.StatusNotFound},
		{NewBadRequestError("bad page"), http.StatusBadRequest},
		{NewRateLimitError(), http.StatusTooManyRequests},
		{NewInternalError("boom", errors.New("cause")), http.StatusInternalServerError},
		{NewDatabaseError("find", context.DeadlineExceeded), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NewNotFoundError("User")), http.StatusNotFound},
		{NewInternalError("x", NewNotFoundError("Incident")), http.StatusInternalServerError},
		{NewInternalError("x", NewBadRequestError("HospitalName is required")), http.StatusInternalServerError},
		{NewDatabaseError("find", NewNotFoundError("Incident")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestPublicMessage_HidesCauses(t *testing.T) {
	assert.Equal(t, "Incident not found", PublicMessage(NewNotFoundError("Incident")))
	assert.Equal(t, "Internal server error", PublicMessage(NewInternalError("Failed to delete user data", errors.New("socket closed"))))
	assert.Equal(t, "Database unavailable", PublicMessage(NewDatabaseError("count", context.DeadlineExceeded)))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("decode: unsupported BSON type")))
	assert.Equal(t, "Internal server error", PublicMessage(NewInternalError("Failed to create test assignments", NewNotFoundError("Hospital"))))
}

func TestServiceError_Unwrap(t *testing.T) {
	cause := errors.New("socket closed")
	err := NewInternalError("Failed", cause)

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed: socket closed", err.Error())

	serviceErr, ok := GetServiceError(fmt.Errorf("outer: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "Failed", serviceErr.Message)
}
