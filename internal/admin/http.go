package admin

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"Storefront/pkg/kit"
)

type loginReq struct {
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string `json:"access_token"`
}

func (s *Service) LoginHandler(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := kit.DecodeJSON(w, r, &req); err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
			return
		}

		tok, err := s.Login(req.Password)
		switch {
		case err == nil:
			kit.WriteJSON(w, http.StatusOK, loginResp{AccessToken: tok})
		case errors.Is(err, ErrDisabled):
			kit.WriteError(w, r, http.StatusNotFound, "admin login disabled", nil)
		case errors.Is(err, ErrInvalidCredentials):
			kit.WriteError(w, r, http.StatusUnauthorized, "invalid credentials", nil)
		default:
			if log != nil {
				log.Error("token issue", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		}
	}
}

// RequireAdmin rejects requests without a valid admin bearer token. It is a
// pass-through when the service is disabled.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		tok, ok := kit.BearerToken(r)
		if !ok {
			kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
			return
		}
		if err := s.Verify(tok); err != nil {
			kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
