package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/shelfwrapped/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	Success(w, map[string]string{"message": "test"}, discardLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"v":1,"success":true,"data":{"message":"test"}}`, w.Body.String())
}

func TestSuccess_NilLogger(t *testing.T) {
	w := httptest.NewRecorder()

	Success(w, nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"v":1,"success":true}`, w.Body.String())
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"not found", func(w http.ResponseWriter) { NotFound(w, "no route", nil) }, http.StatusNotFound, "NOT_FOUND"},
		{"method not allowed", func(w http.ResponseWriter) { MethodNotAllowed(w, "nope", nil) }, http.StatusMethodNotAllowed, "VALIDATION"},
		{"too many requests", func(w http.ResponseWriter) { TooManyRequests(w, "slow down", nil) }, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", func(w http.ResponseWriter) { InternalError(w, "boom", nil) }, http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.NotContains(t, body, "data")

			errBody, ok := body["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.code, errBody["code"])
		})
	}
}

func TestHandleError_DomainError(t *testing.T) {
	w := httptest.NewRecorder()
	err := domainerrors.Upstream("reading profile unavailable").WithCause(errors.New("dial tcp"))

	HandleError(w, err, discardLogger())

	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := decode(t, w)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", errBody["code"])
	assert.Equal(t, "reading profile unavailable", errBody["message"])
}

func TestHandleError_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	err := domainerrors.ValidationWithDetails("validation failed", map[string]string{"year": "out of range"})

	HandleError(w, err, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, map[string]any{"year": "out of range"}, errBody["details"])
}

func TestHandleError_UnknownErrorHidesMessage(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, errors.New("secret internals"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret internals")
}
