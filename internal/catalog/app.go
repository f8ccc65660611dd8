package catalog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Storefront/internal/admin"
	"Storefront/pkg/kit"
)

const (
	loginLimitPerMin = 5
	limitWindow      = 60 * time.Second
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	Admin            *admin.Service
	WriteLimitPerMin int
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, deps)

	srv := *s
	srv.WriteMiddleware = append(writeGuards(r, deps), s.WriteMiddleware...)

	r.Mount("/", srv.Routes())
	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer(log))
	r.Use(kit.Logging(log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.RoutePattern))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func writeGuards(r *chi.Mux, deps HTTPDeps) []func(http.Handler) http.Handler {
	var guards []func(http.Handler) http.Handler

	if deps.WriteLimitPerMin > 0 {
		limiter := kit.NewIPRateLimiter(deps.WriteLimitPerMin, limitWindow)
		guards = append(guards, limiter.Middleware)
	}

	if deps.Admin.Enabled() {
		guards = append(guards, deps.Admin.RequireAdmin)

		loginLimiter := kit.NewIPRateLimiter(loginLimitPerMin, limitWindow)
		r.With(loginLimiter.Middleware).Post("/admin/login", deps.Admin.LoginHandler(deps.Log))
	}

	return guards
}
