package ocrspace

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocr-gateway/api/internal/ocr"
)

func newTestEngine(t *testing.T, handler http.HandlerFunc) *Engine {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", srv.URL, "rus")
}

func TestRecognize(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "aGVsbG8=", r.PostFormValue("base64Image"))
		assert.Equal(t, "rus", r.PostFormValue("language"))
		assert.Equal(t, "false", r.PostFormValue("isOverlayRequired"))
		assert.Equal(t, "true", r.PostFormValue("detectOrientation"))
		assert.Equal(t, "true", r.PostFormValue("scale"))
		assert.Equal(t, "2", r.PostFormValue("OCREngine"))

		w.Write([]byte(`{"IsErroredOnProcessing":false,"ParsedResults":[{"ParsedText":"  Hello World  \n"}]}`))
	})

	res, err := e.Recognize(context.Background(), ocr.Request{Base64Image: "aGVsbG8="})
	require.NoError(t, err)
	// untrimmed: whitespace policy belongs to the caller
	assert.Equal(t, "  Hello World  \n", res.Text)
}

func TestRecognizeLanguageOverride(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "eng", r.PostFormValue("language"))
		w.Write([]byte(`{"ParsedResults":[{"ParsedText":"hi"}]}`))
	})

	_, err := e.Recognize(context.Background(), ocr.Request{Base64Image: "x", Language: "eng"})
	require.NoError(t, err)
}

func TestRecognizeNoResults(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"IsErroredOnProcessing":false,"ParsedResults":[]}`))
	})

	res, err := e.Recognize(context.Background(), ocr.Request{Base64Image: "x"})
	require.NoError(t, err)
	assert.Equal(t, "", res.Text)
}

func TestRecognizeProcessingError(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"IsErroredOnProcessing":true,"ErrorMessage":["bad image"]}`))
	})

	_, err := e.Recognize(context.Background(), ocr.Request{Base64Image: "x"})
	var pe *ocr.ProcessingError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"bad image"}, pe.Messages)
}

func TestRecognizeProcessingErrorStringMessage(t *testing.T) {
	// the live API sometimes returns ErrorMessage as a bare string
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"IsErroredOnProcessing":true,"ErrorMessage":"bad image"}`))
	})

	_, err := e.Recognize(context.Background(), ocr.Request{Base64Image: "x"})
	var pe *ocr.ProcessingError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"bad image"}, pe.Messages)
}

func TestRecognizeHTTPError(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	_, err := e.Recognize(context.Background(), ocr.Request{Base64Image: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ocrspace 403")

	var pe *ocr.ProcessingError
	assert.False(t, errors.As(err, &pe), "transport errors are not processing errors")
}

func TestRecognizeEmptyAPIKey(t *testing.T) {
	e := New("", "", "")
	_, err := e.Recognize(context.Background(), ocr.Request{Base64Image: "x"})
	require.Error(t, err)
}
