// Package domain contains the core business entities and interfaces.
package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// EntryType tags the kind of feeding an entry records.
type EntryType string

const (
	EntryMilk EntryType = "MILK"
	EntryFood EntryType = "FOOD"
)

// DefaultMilkAmountMl is the amount the entry form starts with.
const DefaultMilkAmountMl = 120

// MilkPresetsMl are the quick-pick amounts offered by the entry form.
var MilkPresetsMl = []int{60, 90, 120, 150, 180, 210}

// ErrInvalidEntry is returned when a draft cannot become a feeding entry.
var ErrInvalidEntry = errors.New("invalid entry")

// Feed is the payload of a feeding entry. It is either Milk or Food.
type Feed interface {
	Type() EntryType
	isFeed()
}

// Milk is a milk feeding (formula or breastmilk) measured in milliliters.
type Milk struct {
	AmountMl int
}

// Type implements Feed.
func (Milk) Type() EntryType { return EntryMilk }
func (Milk) isFeed()         {}

// Food is a solid food feeding.
type Food struct {
	Name string
}

// Type implements Feed.
func (Food) Type() EntryType { return EntryFood }
func (Food) isFeed()         {}

// EntryData is everything about a feeding except its identifier.
type EntryData struct {
	Timestamp time.Time
	Feed      Feed
	Note      string
}

// Type returns the entry type of the payload.
func (d EntryData) Type() EntryType {
	if d.Feed == nil {
		return ""
	}
	return d.Feed.Type()
}

// AmountMl returns the milk volume, or 0 for non-milk entries.
func (d EntryData) AmountMl() int {
	if m, ok := d.Feed.(Milk); ok {
		return m.AmountMl
	}
	return 0
}

// FeedingEntry is one recorded feeding event.
type FeedingEntry struct {
	ID string
	EntryData
}

// NewMilkEntry validates and builds milk entry data.
func NewMilkEntry(at time.Time, amountMl int, note string) (EntryData, error) {
	if amountMl <= 0 {
		return EntryData{}, fmt.Errorf("%w: amountMl must be > 0", ErrInvalidEntry)
	}
	return EntryData{Timestamp: at, Feed: Milk{AmountMl: amountMl}, Note: note}, nil
}

// NewFoodEntry validates and builds food entry data. The name is trimmed.
func NewFoodEntry(at time.Time, name, note string) (EntryData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return EntryData{}, fmt.Errorf("%w: foodName is required", ErrInvalidEntry)
	}
	return EntryData{Timestamp: at, Feed: Food{Name: name}, Note: note}, nil
}

// Draft is the loosely typed input of the entry form.
type Draft struct {
	Type      EntryType `json:"type"`
	Timestamp *int64    `json:"timestamp,omitempty"`
	Date      string    `json:"date,omitempty"`
	Time      string    `json:"time,omitempty"`
	AmountMl  *int      `json:"amountMl,omitempty"`
	FoodName  string    `json:"foodName,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// Resolve turns a draft into validated entry data. The moment of the
// feeding comes from Timestamp if set, otherwise from Date and Time
// interpreted in loc with seconds zeroed.
func (d Draft) Resolve(loc *time.Location) (EntryData, error) {
	at, err := d.instant(loc)
	if err != nil {
		return EntryData{}, err
	}
	switch d.Type {
	case EntryMilk:
		amount := DefaultMilkAmountMl
		if d.AmountMl != nil {
			amount = *d.AmountMl
		}
		return NewMilkEntry(at, amount, d.Note)
	case EntryFood:
		return NewFoodEntry(at, d.FoodName, d.Note)
	default:
		return EntryData{}, fmt.Errorf("%w: type must be %q or %q", ErrInvalidEntry, EntryMilk, EntryFood)
	}
}

func (d Draft) instant(loc *time.Location) (time.Time, error) {
	if d.Timestamp != nil {
		return time.UnixMilli(*d.Timestamp), nil
	}
	if d.Date == "" || d.Time == "" {
		return time.Time{}, fmt.Errorf("%w: timestamp or date and time are required", ErrInvalidEntry)
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", d.Date+" "+d.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return at, nil
}

// entryRecord is the persisted shape of a FeedingEntry.
type entryRecord struct {
	ID        string    `json:"id"`
	Timestamp int64     `json:"timestamp"`
	Type      EntryType `json:"type"`
	AmountMl  *int      `json:"amountMl,omitempty"`
	FoodName  *string   `json:"foodName,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// MarshalJSON encodes the entry in its flat stored form.
func (e FeedingEntry) MarshalJSON() ([]byte, error) {
	rec := entryRecord{
		ID:        e.ID,
		Timestamp: e.Timestamp.UnixMilli(),
		Note:      e.Note,
	}
	switch f := e.Feed.(type) {
	case Milk:
		rec.Type = EntryMilk
		rec.AmountMl = &f.AmountMl
	case Food:
		rec.Type = EntryFood
		rec.FoodName = &f.Name
	default:
		return nil, fmt.Errorf("%w: entry %q has no feed", ErrInvalidEntry, e.ID)
	}
	return json.Marshal(rec)
}

// UnmarshalJSON decodes the flat stored form. A missing amountMl decodes as
// zero and a missing foodName as empty; an unknown type is an error.
func (e *FeedingEntry) UnmarshalJSON(b []byte) error {
	var rec entryRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	out := FeedingEntry{
		ID: rec.ID,
		EntryData: EntryData{
			Timestamp: time.UnixMilli(rec.Timestamp),
			Note:      rec.Note,
		},
	}
	switch rec.Type {
	case EntryMilk:
		var amount int
		if rec.AmountMl != nil {
			amount = *rec.AmountMl
		}
		out.Feed = Milk{AmountMl: amount}
	case EntryFood:
		var name string
		if rec.FoodName != nil {
			name = *rec.FoodName
		}
		out.Feed = Food{Name: name}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEntry, rec.Type)
	}
	*e = out
	return nil
}

// LocalDay returns the calendar day of t in loc as "2006-01-02".
func LocalDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
