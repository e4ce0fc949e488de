package ir

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time within a day, minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts "HH:MM" and "H:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, errH := strconv.Atoi(hh)
	m, errM := strconv.Atoi(mm)
	if errH != nil || errM != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: out of range", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinutesFromMidnight converts to a minute offset for window arithmetic.
func (t TimeOfDay) MinutesFromMidnight() int {
	return t.Hour*60 + t.Minute
}

// Metadata carries the scheduling inputs lowered from configuration.
// MaxParallel is validated by the config layer but consumed by no strategy
// yet; it rides along for renderers and future strategies.
type Metadata struct {
	WorkdayStart      TimeOfDay
	WorkdayEnd        TimeOfDay
	MaxParallel       int
	FocusTags         []string
	OptimizationLevel int
	DeepworkTag       string
}

// WindowOn anchors the workday window to the given date's local calendar
// day. The window is half-open: [start, end).
func (m Metadata) WindowOn(date time.Time) (start, end time.Time) {
	y, mo, d := date.Date()
	loc := date.Location()
	start = time.Date(y, mo, d, m.WorkdayStart.Hour, m.WorkdayStart.Minute, 0, 0, loc)
	end = time.Date(y, mo, d, m.WorkdayEnd.Hour, m.WorkdayEnd.Minute, 0, 0, loc)
	return start, end
}

// DefaultMetadata mirrors the configuration defaults: a 09:00-17:00
// workday, level-1 optimization, the "deepwork" tag.
func DefaultMetadata() Metadata {
	return Metadata{
		WorkdayStart:      TimeOfDay{Hour: 9},
		WorkdayEnd:        TimeOfDay{Hour: 17},
		MaxParallel:       1,
		OptimizationLevel: 1,
		DeepworkTag:       "deepwork",
	}
}
