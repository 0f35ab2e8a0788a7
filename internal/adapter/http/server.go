package adapthttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/app"
)

// Services groups the application services the HTTP adapter drives.
type Services struct {
	Entries  *app.EntryService
	Days     *app.DayViewService
	Calendar *app.CalendarService
	Trend    *app.TrendService
	Access   *app.AccessService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	entries  *app.EntryService
	days     *app.DayViewService
	calendar *app.CalendarService
	trend    *app.TrendService
	access   *app.AccessService
	sso      *SSO
	loc      *time.Location
	webDir   string
	log      *slog.Logger
	now      func() time.Time
}

// New creates a Server wired to the given application services. Entry
// times are read and rendered in loc.
func New(svc Services, loc *time.Location, webDir string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		entries:  svc.Entries,
		days:     svc.Days,
		calendar: svc.Calendar,
		trend:    svc.Trend,
		access:   svc.Access,
		loc:      loc,
		webDir:   webDir,
		log:      log,
		now:      time.Now,
	}
}

// WithSSO enables the OIDC login routes.
func (s *Server) WithSSO(sso *SSO) *Server {
	s.sso = sso
	return s
}

// WithClock replaces the wall clock used for "today" and the current slot.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("GET /config", s.handleConfig)

	api.HandleFunc("POST /auth/login", s.handleLogin)
	api.HandleFunc("POST /auth/logout", s.handleLogout)
	api.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)

	api.Handle("GET /entries", s.requireAccess(s.handleListEntries))
	api.Handle("POST /entries", s.requireAccess(s.handleCreateEntry))
	api.Handle("PUT /entries/{id}", s.requireAccess(s.handleUpdateEntry))
	api.Handle("DELETE /entries/{id}", s.requireAccess(s.handleDeleteEntry))

	api.Handle("GET /day", s.requireAccess(s.handleDay))
	api.Handle("GET /calendar", s.requireAccess(s.handleCalendar))
	api.Handle("GET /calendar/month", s.requireAccess(s.handleCalendarMonth))
	api.Handle("GET /trend/weekly", s.requireAccess(s.handleWeeklyTrend))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
