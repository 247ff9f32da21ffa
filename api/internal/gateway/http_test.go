package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocr-gateway/api/internal/ocr"
)

func TestServeHTTPPreflight(t *testing.T) {
	h := New(&stubEngine{}, "key", "rus")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
}

func TestServeHTTPMintsRequestID(t *testing.T) {
	h := New(&stubEngine{res: ocr.Result{Text: "ok"}}, "key", "rus")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"image":"abc"}`)))

	require.Equal(t, http.StatusOK, rr.Code)

	var out struct {
		Text      string `json:"text"`
		RequestID string `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "ok", out.Text)
	assert.NotEmpty(t, out.RequestID)
	assert.Equal(t, out.RequestID, rr.Header().Get("X-Request-Id"))
}

func TestServeHTTPHonorsInboundRequestID(t *testing.T) {
	h := New(&stubEngine{res: ocr.Result{Text: "ok"}}, "key", "rus")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"image":"abc"}`))
	req.Header.Set("X-Request-Id", "upstream-42")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var out struct {
		RequestID string `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "upstream-42", out.RequestID)
}

func TestServeHTTPUnhandledFailure(t *testing.T) {
	h := New(&stubEngine{}, "key", "rus")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{broken`)))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error": "Internal server error"}`, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
