package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const unmatchedRoute = "unmatched"

func RoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if rp := rctx.RoutePattern(); rp != "" && rp != "/*" {
		return rp
	}
	return unmatchedRoute
}
