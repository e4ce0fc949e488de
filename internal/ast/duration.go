package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Duration is a task duration in whole minutes. A nil *Duration on a task
// means "untimed"; arithmetic elsewhere treats that as zero.
type Duration struct {
	Minutes int
}

// DurationMinutes returns the duration in minutes, treating nil as zero.
func (d *Duration) DurationMinutes() int {
	if d == nil {
		return 0
	}
	return d.Minutes
}

// ParseDuration accepts the source forms "30m" and "2h".
func ParseDuration(s string) (Duration, error) {
	if v, ok := strings.CutSuffix(s, "h"); ok {
		hours, err := strconv.Atoi(v)
		if err == nil && hours >= 0 {
			return Duration{Minutes: hours * 60}, nil
		}
	} else if v, ok := strings.CutSuffix(s, "m"); ok {
		mins, err := strconv.Atoi(v)
		if err == nil && mins >= 0 {
			return Duration{Minutes: mins}, nil
		}
	}
	return Duration{}, fmt.Errorf("invalid duration %q", s)
}

// String renders the duration the way the source language writes it:
// "45m", "2h", "1h 30m".
func (d Duration) String() string {
	switch {
	case d.Minutes < 60:
		return fmt.Sprintf("%dm", d.Minutes)
	case d.Minutes%60 == 0:
		return fmt.Sprintf("%dh", d.Minutes/60)
	default:
		return fmt.Sprintf("%dh %dm", d.Minutes/60, d.Minutes%60)
	}
}

// FormatMinutes renders a raw minute count in the same human form.
func FormatMinutes(minutes int) string {
	return Duration{Minutes: minutes}.String()
}
