package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ocr-gateway/api/internal/ocr"
)

var (
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ocr_gateway_requests_total",
		Help: "Inbound requests by method and response status.",
	}, []string{"method", "status"})

	providerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ocr_gateway_provider_duration_seconds",
		Help:    "Duration of outbound provider calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"engine"})

	providerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ocr_gateway_provider_errors_total",
		Help: "Failed outbound provider calls.",
	}, []string{"engine"})
)

func HTTPHandler() http.Handler { return promhttp.Handler() }

// InstrumentEngine wraps an engine with call duration and error counters.
func InstrumentEngine(e ocr.Engine) ocr.Engine { return &timedEngine{next: e} }

type timedEngine struct {
	next ocr.Engine
}

func (t *timedEngine) Name() string { return t.next.Name() }

func (t *timedEngine) Recognize(ctx context.Context, in ocr.Request) (ocr.Result, error) {
	start := time.Now()
	res, err := t.next.Recognize(ctx, in)
	providerDuration.WithLabelValues(t.next.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		providerErrors.WithLabelValues(t.next.Name()).Inc()
	}
	return res, err
}
