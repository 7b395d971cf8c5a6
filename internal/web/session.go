package web

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ivnamo/isoVisor/internal/session"
)

const sessionCookie = "isovisor_session"

type sessionHandler func(w http.ResponseWriter, r *http.Request, e *session.Entry)

// withSession resolves the caller's table from the session cookie, issuing a
// new cookie when the session is unknown or expired. The entry stays locked
// for the whole request.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}
		e, created, err := s.sessions.Resolve(r.Context(), id)
		if err != nil {
			s.logger.Error("resolving session", zap.Error(err))
			http.Error(w, "no se pudo abrir la sesión", http.StatusInternalServerError)
			return
		}
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    e.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		e.Lock()
		defer e.Unlock()
		h(w, r, e)
	}
}
