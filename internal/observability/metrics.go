package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics owns the collectors of one process. Tests use their own registry.
type Metrics struct {
	service string
	env     string

	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec
	clientInitTotal            *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer, service, env string) *Metrics {
	m := &Metrics{
		service: service,
		env:     env,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by service, environment, method, route and status.",
			},
			[]string{"service", "env", "method", "route", "status"},
		),
		httpRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration by service, environment, method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "env", "method", "route"},
		),
		clientInitTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supabase_client_init_total",
				Help: "Supabase client construction attempts by result (ready, failed).",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.httpRequestsTotal, m.httpRequestDurationSeconds, m.clientInitTotal)
	return m
}

// ObserveClientInit records the outcome of the startup configuration gate.
func (m *Metrics) ObserveClientInit(err error) {
	result := "ready"
	if err != nil {
		result = "failed"
	}
	m.clientInitTotal.WithLabelValues(result).Inc()
}

// InstrumentHTTP counts and times requests.
func (m *Metrics) InstrumentHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		status := strconv.Itoa(rec.status)

		m.httpRequestsTotal.WithLabelValues(m.service, m.env, r.Method, route, status).Inc()
		m.httpRequestDurationSeconds.WithLabelValues(m.service, m.env, r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// routePattern is the chi pattern that served r, read after routing. Paths that
// matched nothing share one label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
