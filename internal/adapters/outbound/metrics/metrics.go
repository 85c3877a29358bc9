// Package metrics exports generation events as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Observer implements domain.GenerationObserver.
type Observer struct {
	files    *prometheus.CounterVec
	skipped  *prometheus.CounterVec
	failures *prometheus.CounterVec
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewObserver registers the generation metrics with reg.
func NewObserver(reg prometheus.Registerer) *Observer {
	f := promauto.With(reg)
	return &Observer{
		files: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lowgen_files_generated_total",
			Help: "Generated files by type.",
		}, []string{"type"}),
		skipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lowgen_files_skipped_total",
			Help: "Files left untouched by reason.",
		}, []string{"reason"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lowgen_render_failures_total",
			Help: "Template render failures by template.",
		}, []string{"template"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lowgen_runs_total",
			Help: "Generation runs by result.",
		}, []string{"result"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lowgen_run_duration_seconds",
			Help:    "Duration of generation runs.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (o *Observer) FileGenerated(fileType string) {
	o.files.WithLabelValues(fileType).Inc()
}

func (o *Observer) FileSkipped(reason string) {
	o.skipped.WithLabelValues(reason).Inc()
}

func (o *Observer) RenderFailed(templateID string) {
	o.failures.WithLabelValues(templateID).Inc()
}

func (o *Observer) RunCompleted(d time.Duration, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	o.runs.WithLabelValues(result).Inc()
	o.duration.Observe(d.Seconds())
}

// Handler serves /metrics from g and a /healthz probe.
func Handler(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Serve runs h on addr until ctx is done.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
