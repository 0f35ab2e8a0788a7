package app

import (
	"context"
	"fmt"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/domain"
)

// SlotsPerDay is the number of half-hour slots in a day view.
const SlotsPerDay = 48

// Slot is one half-hour window of a day. Minute is 0 or 30.
type Slot struct {
	Hour    int                   `json:"hour"`
	Minute  int                   `json:"minute"`
	Label   string                `json:"label"`
	Value   string                `json:"value"`
	Current bool                  `json:"current"`
	Count   int                   `json:"count"`
	Entries []domain.FeedingEntry `json:"entries"`
}

// DayView is the slotted timeline of one calendar day.
type DayView struct {
	Day         string `json:"day"`
	IsToday     bool   `json:"isToday"`
	CurrentSlot int    `json:"currentSlot"`
	Slots       []Slot `json:"slots"`
}

// SlotIndex returns the position of the half-hour slot containing the
// given local hour and minute.
func SlotIndex(hour, minute int) int {
	i := hour * 2
	if minute >= 30 {
		i++
	}
	return i
}

// BuildDayView partitions the entries falling on day (in loc) into 48
// half-hour slots. Same-slot entries keep their input order. When day is
// today relative to now, the slot containing now is flagged current.
func BuildDayView(entries []domain.FeedingEntry, day, now time.Time, loc *time.Location) DayView {
	dayKey := domain.LocalDay(day, loc)
	view := DayView{
		Day:         dayKey,
		IsToday:     dayKey == domain.LocalDay(now, loc),
		CurrentSlot: -1,
		Slots:       make([]Slot, SlotsPerDay),
	}

	for i := range view.Slots {
		h, m := i/2, (i%2)*30
		// Labels only need a wall-clock time, so a fixed reference date avoids DST gaps.
		ref := time.Date(2000, 1, 1, h, m, 0, 0, time.UTC)
		view.Slots[i] = Slot{
			Hour:    h,
			Minute:  m,
			Label:   ref.Format("3:04 PM"),
			Value:   fmt.Sprintf("%02d:%02d", h, m),
			Entries: []domain.FeedingEntry{},
		}
	}

	for _, e := range entries {
		local := e.Timestamp.In(loc)
		if local.Format("2006-01-02") != dayKey {
			continue
		}
		i := SlotIndex(local.Hour(), local.Minute())
		view.Slots[i].Entries = append(view.Slots[i].Entries, e)
		view.Slots[i].Count++
	}

	if view.IsToday {
		n := now.In(loc)
		view.CurrentSlot = SlotIndex(n.Hour(), n.Minute())
		view.Slots[view.CurrentSlot].Current = true
	}
	return view
}

// DayViewService answers day timeline queries from the entry collection.
type DayViewService struct {
	entries *EntryService
	loc     *time.Location
}

// NewDayViewService creates a DayViewService reading from entries.
func NewDayViewService(entries *EntryService, loc *time.Location) *DayViewService {
	return &DayViewService{entries: entries, loc: loc}
}

// GetDaySlots returns the slotted timeline of day, flagging the current
// slot relative to now.
func (s *DayViewService) GetDaySlots(ctx context.Context, day, now time.Time) DayView {
	return BuildDayView(s.entries.List(ctx), day, now, s.loc)
}
