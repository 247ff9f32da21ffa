package httpserver

import (
	"log"
	"net/http"

	"ocr-gateway/api/internal/metrics"
)

// Start wires the mux and blocks on ListenAndServe. The gateway handler owns
// "/" so cloud routers can mount the function at any path.
func Start(addr string, gw http.Handler) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", metrics.HTTPHandler())
	mux.Handle("/", gw)

	log.Printf("ocr-gateway listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
