package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/app"
)

type contextKey string

const subjectContextKey contextKey = "subject"

const sessionCookie = "session"

// requireAccess lets a request through when no lock is configured, when a
// trusted proxy names the owner, or when it carries a live session cookie.
func (s *Server) requireAccess(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.access == nil || !s.access.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		if remoteUser := r.Header.Get("Remote-User"); remoteUser != "" && s.access.ValidateForwardAuth(remoteUser) {
			ctx := context.WithValue(r.Context(), subjectContextKey, remoteUser)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}

		session, err := s.access.ValidateSession(r.Context(), cookie.Value, r.UserAgent())
		if errors.Is(err, app.ErrSessionNotFound) || errors.Is(err, app.ErrSessionExpired) {
			writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		if err != nil {
			s.log.Error("validate session", "error", err)
			writeError(w, http.StatusInternalServerError, errors.New("internal error"))
			return
		}

		ctx := context.WithValue(r.Context(), subjectContextKey, session.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
