package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestValidationDetailsUseJSONNames(t *testing.T) {
	err := newValidator().Struct(dtos.CreateContractRequest{})
	require.Error(t, err)

	details := formatValidationErrors(err.(validator.ValidationErrors))
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
		require.Equal(t, "validation_required", d.Code)
	}
	require.ElementsMatch(t, []string{"contract_id", "agent_id", "client_id", "apartment_id"}, fields)
}

func TestDecodeAndValidate(t *testing.T) {
	v := newValidator()

	t.Run("MalformedBody", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
		var req dtos.LoginRequest
		require.False(t, decodeAndValidate(w, r, v, &req))
		require.Equal(t, http.StatusBadRequest, w.Code)

		var body utils.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, utils.ErrCodeInvalidPayload, body.Code)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"q"}`))
		var req dtos.PatchContractRequest
		require.False(t, decodeAndValidate(w, r, v, &req))
		require.Contains(t, w.Body.String(), `"validation_oneof"`)
	})

	t.Run("Valid", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a","password":"b"}`))
		var req dtos.LoginRequest
		require.True(t, decodeAndValidate(w, r, v, &req))
		require.Equal(t, "a", req.Username)
	})
}

func TestPathID(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "12"})
	id, err := pathID(r, "id")
	require.NoError(t, err)
	require.Equal(t, int64(12), id)

	r = mux.SetURLVars(r, map[string]string{"id": "99999999999999999999"})
	_, err = pathID(r, "id")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestQueryInt64(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/contracts/?agent_id=5&client_id=x", nil)
	v, err := queryInt64(r, "agent_id")
	require.NoError(t, err)
	require.Equal(t, int64(5), *v)

	v, err = queryInt64(r, "apartment_id")
	require.NoError(t, err)
	require.Nil(t, v)

	_, err = queryInt64(r, "client_id")
	require.Error(t, err)
}
