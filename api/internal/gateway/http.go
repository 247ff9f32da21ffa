package gateway

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"ocr-gateway/api/internal/metrics"
)

// ServeHTTP adapts Handle to net/http: it mints the invocation's request ID,
// relays the envelope, and turns the unrecoverable channel into a bare 500.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		writeFailure(w, r, requestID)
		return
	}

	ev := Event{
		HTTPMethod: r.Method,
		Headers:    flatten(r.Header),
		Body:       string(b),
	}

	resp, err := h.Handle(r.Context(), ev, Context{RequestID: requestID})
	if err != nil {
		log.Printf("request %s failed: %v", requestID, err)
		writeFailure(w, r, requestID)
		return
	}

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("X-Request-Id", requestID)
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)

	metrics.Requests.WithLabelValues(r.Method, strconv.Itoa(resp.StatusCode)).Inc()
}

func writeFailure(w http.ResponseWriter, r *http.Request, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Request-Id", requestID)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = io.WriteString(w, `{"error": "Internal server error"}`)
	metrics.Requests.WithLabelValues(r.Method, strconv.Itoa(http.StatusInternalServerError)).Inc()
}

func flatten(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}
