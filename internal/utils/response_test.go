package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleAppErrorUsesMapping(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, fmt.Errorf("wrapped: %w", NewNotFoundError("Apartment not found")))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, ErrCodeNotFound, body.Code)
	require.Equal(t, "Apartment not found", body.Message)
}

func TestHandleAppErrorFallsBackTo500(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, ErrCodeInternal, body.Code)
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewInternalError("Failed", ErrDuplicateKey)
	require.ErrorIs(t, err, ErrDuplicateKey)
	require.Equal(t, ErrDuplicateKey.Error(), err.Error())
	require.Equal(t, "Failed", NewNotFoundError("Failed").Error())
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.True(t, CheckPasswordHash("s3cret", hash))
	require.False(t, CheckPasswordHash("wrong", hash))
	require.False(t, CheckPasswordHash("s3cret", ""))
}
