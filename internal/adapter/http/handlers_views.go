package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/app"
	"github.com/clementchett/Zane-Food-Tracker/internal/domain"
)

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	authRequired := s.access != nil && s.access.Enabled()
	writeJSON(w, http.StatusOK, map[string]any{
		"defaultMilkAmountMl": domain.DefaultMilkAmountMl,
		"milkPresetsMl":       domain.MilkPresetsMl,
		"weekStart":           s.calendar.WeekStart().String(),
		"timeZone":            s.loc.String(),
		"auth_required":       authRequired,
		"sso_enabled":         s.sso != nil,
	})
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	day, err := dayQuery(r, "date", s.loc, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.days.GetDaySlots(r.Context(), day, now))
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("start") == "" || q.Get("end") == "" {
		writeError(w, http.StatusBadRequest, errors.New("start and end are required"))
		return
	}
	start, err := dayQuery(r, "start", s.loc, time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	end, err := dayQuery(r, "end", s.loc, time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	days, err := s.calendar.GetCalendarSummaries(r.Context(), start, end)
	if errors.Is(err, app.ErrRangeTooLarge) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

func (s *Server) handleCalendarMonth(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	month := now.In(s.loc)
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := time.ParseInLocation("2006-01", v, s.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid month: want YYYY-MM"))
			return
		}
		month = m
	}

	cal, err := s.calendar.GetMonth(r.Context(), month, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (s *Server) handleWeeklyTrend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.trend.GetWeeklyTrend(r.Context(), s.now()))
}
