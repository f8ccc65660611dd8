package kit

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelService = "service"
	labelMethod  = "method"
	labelRoute   = "route"
	labelStatus  = "status"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by route and status.",
			},
			[]string{labelService, labelMethod, labelRoute, labelStatus},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP handler latency.",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{labelService, labelMethod, labelRoute},
		),
	}

	reg.MustRegister(m.Requests, m.Latency)
	return m
}

func (m *Metrics) Middleware(service string, routeLabel func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := routeLabel(r)
			m.Latency.WithLabelValues(service, r.Method, route).Observe(time.Since(start).Seconds())
			m.Requests.WithLabelValues(service, r.Method, route, strconv.Itoa(status)).Inc()
		})
	}
}
