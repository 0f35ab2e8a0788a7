package app

import (
	"context"
	"errors"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/domain"
)

// MaxCalendarDays bounds a calendar summary query.
const MaxCalendarDays = 366

// ErrRangeTooLarge is returned when a calendar range exceeds MaxCalendarDays.
var ErrRangeTooLarge = errors.New("date range too large")

// DaySummary counts the entries of one calendar day by type.
type DaySummary struct {
	Day       string `json:"day"`
	MilkCount int    `json:"milkCount"`
	FoodCount int    `json:"foodCount"`
	InMonth   bool   `json:"inMonth"`
	IsToday   bool   `json:"isToday"`
}

// MonthCalendar is the full-week grid of one month with per-day summaries.
type MonthCalendar struct {
	Month string       `json:"month"`
	Start string       `json:"start"`
	End   string       `json:"end"`
	Days  []DaySummary `json:"days"`
}

// startOfDay returns local midnight of t's calendar day in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// MonthGrid returns the first and last day of the full weeks overlapping
// the month containing month. Weeks begin on weekStart.
func MonthGrid(month time.Time, weekStart time.Weekday, loc *time.Location) (time.Time, time.Time) {
	y, m, _ := month.In(loc).Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	last := time.Date(y, m+1, 0, 0, 0, 0, 0, loc)

	back := (int(first.Weekday()) - int(weekStart) + 7) % 7
	start := time.Date(y, m, 1-back, 0, 0, 0, 0, loc)

	weekEnd := (weekStart + 6) % 7
	fwd := (int(weekEnd) - int(last.Weekday()) + 7) % 7
	ly, lm, ld := last.Date()
	end := time.Date(ly, lm, ld+fwd, 0, 0, 0, 0, loc)
	return start, end
}

// BuildCalendar counts entries by type for every day in [start, end]
// inclusive. Days without entries are present with zero counts.
func BuildCalendar(entries []domain.FeedingEntry, start, end time.Time, loc *time.Location) ([]DaySummary, error) {
	from := startOfDay(start, loc)
	to := startOfDay(end, loc)
	if to.Before(from) {
		return []DaySummary{}, nil
	}

	type counts struct{ milk, food int }
	byDay := make(map[string]*counts)
	for _, e := range entries {
		key := domain.LocalDay(e.Timestamp, loc)
		c := byDay[key]
		if c == nil {
			c = &counts{}
			byDay[key] = c
		}
		switch e.Type() {
		case domain.EntryMilk:
			c.milk++
		case domain.EntryFood:
			c.food++
		}
	}

	y, m, d := from.Date()
	out := make([]DaySummary, 0, 42)
	for i := 0; ; i++ {
		day := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		if day.After(to) {
			break
		}
		if i >= MaxCalendarDays {
			return nil, ErrRangeTooLarge
		}
		key := day.Format("2006-01-02")
		s := DaySummary{Day: key}
		if c := byDay[key]; c != nil {
			s.MilkCount, s.FoodCount = c.milk, c.food
		}
		out = append(out, s)
	}
	return out, nil
}

// CalendarService answers calendar decoration queries.
type CalendarService struct {
	entries   *EntryService
	loc       *time.Location
	weekStart time.Weekday
}

// NewCalendarService creates a CalendarService reading from entries.
func NewCalendarService(entries *EntryService, loc *time.Location, weekStart time.Weekday) *CalendarService {
	return &CalendarService{entries: entries, loc: loc, weekStart: weekStart}
}

// WeekStart returns the weekday calendar rows begin on.
func (s *CalendarService) WeekStart() time.Weekday {
	return s.weekStart
}

// GetCalendarSummaries returns per-day type counts for [start, end].
func (s *CalendarService) GetCalendarSummaries(ctx context.Context, start, end time.Time) ([]DaySummary, error) {
	return BuildCalendar(s.entries.List(ctx), start, end, s.loc)
}

// GetMonth returns the full-week grid of the month containing month, with
// cells outside the month and today's cell marked.
func (s *CalendarService) GetMonth(ctx context.Context, month, now time.Time) (MonthCalendar, error) {
	start, end := MonthGrid(month, s.weekStart, s.loc)
	days, err := s.GetCalendarSummaries(ctx, start, end)
	if err != nil {
		return MonthCalendar{}, err
	}

	monthKey := month.In(s.loc).Format("2006-01")
	today := domain.LocalDay(now, s.loc)
	for i := range days {
		days[i].InMonth = days[i].Day[:7] == monthKey
		days[i].IsToday = days[i].Day == today
	}
	return MonthCalendar{
		Month: monthKey,
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
		Days:  days,
	}, nil
}
