package scheduler

import (
	"fmt"
	"strings"
)

// Mode selects a scheduling strategy. The set is closed; dispatch happens
// inside Scheduler.Schedule rather than through per-strategy types.
type Mode int

const (
	ModeNaive Mode = iota
	ModeEarlyBird
	ModeDeepworkFirst
)

// ParseMode resolves a configuration string to a Mode, case-insensitively.
// Unknown names are a configuration error.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "naive":
		return ModeNaive, nil
	case "early-bird", "earlybird":
		return ModeEarlyBird, nil
	case "deepwork", "deepwork-first", "deepworkfirst":
		return ModeDeepworkFirst, nil
	}
	return ModeNaive, fmt.Errorf("unknown schedule mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case ModeEarlyBird:
		return "early-bird"
	case ModeDeepworkFirst:
		return "deepwork-first"
	default:
		return "naive"
	}
}
