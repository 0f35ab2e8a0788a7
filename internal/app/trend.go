package app

import (
	"context"
	"math"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/domain"
)

// TrendWindowDays is the length of the trailing trend window.
const TrendWindowDays = 7

// TrendPoint is one day of the weekly trend.
type TrendPoint struct {
	Day         string `json:"day"`
	Weekday     string `json:"weekday"`
	Label       string `json:"label"`
	TotalMilkMl int    `json:"totalMilkMl"`
	TotalFood   int    `json:"totalFood"`
}

// WeeklyTrend summarises the trailing window ending today.
type WeeklyTrend struct {
	Days        []TrendPoint `json:"days"`
	TotalMilkMl int          `json:"totalMilkMl"`
	AvgMilkMl   int          `json:"avgMilkMl"`
}

// BuildWeeklyTrend sums milk volume and counts food entries for each of the
// 7 days ending on now's day, oldest first. The average always divides by
// the window length, not by the number of days with data.
func BuildWeeklyTrend(entries []domain.FeedingEntry, now time.Time, loc *time.Location) WeeklyTrend {
	y, m, d := now.In(loc).Date()
	trend := WeeklyTrend{Days: make([]TrendPoint, TrendWindowDays)}
	index := make(map[string]int, TrendWindowDays)

	for i := 0; i < TrendWindowDays; i++ {
		day := time.Date(y, m, d-(TrendWindowDays-1-i), 0, 0, 0, 0, loc)
		key := day.Format("2006-01-02")
		trend.Days[i] = TrendPoint{
			Day:     key,
			Weekday: day.Format("Mon"),
			Label:   day.Format("Jan 2"),
		}
		index[key] = i
	}

	for _, e := range entries {
		i, ok := index[domain.LocalDay(e.Timestamp, loc)]
		if !ok {
			continue
		}
		switch f := e.Feed.(type) {
		case domain.Milk:
			trend.Days[i].TotalMilkMl += f.AmountMl
		case domain.Food:
			trend.Days[i].TotalFood++
		}
	}

	for _, p := range trend.Days {
		trend.TotalMilkMl += p.TotalMilkMl
	}
	trend.AvgMilkMl = int(math.Round(float64(trend.TotalMilkMl) / TrendWindowDays))
	return trend
}

// TrendService encapsulates chart data retrieval use cases.
type TrendService struct {
	entries *EntryService
	loc     *time.Location
}

// NewTrendService creates a TrendService reading from entries.
func NewTrendService(entries *EntryService, loc *time.Location) *TrendService {
	return &TrendService{entries: entries, loc: loc}
}

// GetWeeklyTrend returns the 7-day trend ending on now's local day.
func (s *TrendService) GetWeeklyTrend(ctx context.Context, now time.Time) WeeklyTrend {
	return BuildWeeklyTrend(s.entries.List(ctx), now, s.loc)
}
