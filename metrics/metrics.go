// Package metrics exposes Prometheus metrics for the provider service and
// manages the standalone metrics HTTP server.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup result labels.
const (
	LookupOK         = "ok"
	LookupUnknownUID = "unknown_uid"
	LookupBadRequest = "bad_request"
	LookupError      = "error"
)

var lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "attestation_appid",
	Subsystem: "provider",
	Name:      "lookups_total",
	Help:      "Package metadata lookups served, by result.",
}, []string{"result"})

// CountLookup records one served lookup with the given result label.
func CountLookup(result string) {
	lookupsTotal.WithLabelValues(result).Inc()
}

// MetricsServer serves the Prometheus scrape endpoint on its own listener.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server bound to listenAddr.
func New(listenAddr string) (*MetricsServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:    listenAddr,
			Handler: mux,
		},
	}, nil
}

// ListenAndServe blocks serving the scrape endpoint.
func (s *MetricsServer) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
