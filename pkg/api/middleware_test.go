package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/mapcode/pkg/batch"
	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/storage"
)

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		header string
		want   int
	}{
		{"valid key", "test-key", "test-key", http.StatusOK},
		{"missing header", "test-key", "", http.StatusUnauthorized},
		{"wrong key", "test-key", "wrong-key", http.StatusUnauthorized},
		{"key prefix", "test-key", "test", http.StatusUnauthorized},
		{"auth disabled", "", "", http.StatusOK},
		{"auth disabled ignores header", "", "anything", http.StatusOK},
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/encode", nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			w := httptest.NewRecorder()
			apiKeyMiddleware(tt.key)(ok).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				var resp APIResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.False(t, resp.Success)
				assert.NotEmpty(t, resp.Error)
			}
		})
	}
}

func TestSendSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	sendSuccess(w, Mapcode{Territory: "NLD", Code: "JD.LZM", Full: "NLD JD.LZM"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp struct {
		Success bool    `json:"success"`
		Data    Mapcode `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "NLD JD.LZM", resp.Data.Full)
}

func TestSendJSONStatus(t *testing.T) {
	w := httptest.NewRecorder()
	sendJSON(w, BatchAccepted{ID: "abc"}, http.StatusAccepted)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"abc"`)
}

func TestSendError(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			w := httptest.NewRecorder()
			sendError(w, "went wrong", status)

			assert.Equal(t, status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			var resp APIResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.False(t, resp.Success)
			assert.Equal(t, "went wrong", resp.Error)
		})
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{mapcode.ErrMissingDot, http.StatusBadRequest},
		{mapcode.ErrIncomplete, http.StatusBadRequest},
		{mapcode.ErrInvalidEndVowels, http.StatusBadRequest},
		{mapcode.ErrBadCoordinate, http.StatusBadRequest},
		{mapcode.ErrMissingTerritory, http.StatusBadRequest},
		{errors.Wrap(mapcode.ErrUnknownTerritory, "XYZ"), http.StatusNotFound},
		{storage.ErrNotFound, http.StatusNotFound},
		{mapcode.ErrMapcodeUndecodable, http.StatusUnprocessableEntity},
		{mapcode.ErrExtensionUndecodable, http.StatusUnprocessableEntity},
		{batch.ErrTooManyPoints, http.StatusRequestEntityTooLarge},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err), func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}

func TestSendErrHidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/v1/decode", nil)

	sendErr(w, r, errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal error")
	assert.NotContains(t, w.Body.String(), "disk")
}
