package ast

import (
	"fmt"
	"strings"
)

// Priority is the ordinal task priority. Higher values win.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// ParsePriority accepts the priority name (case-insensitive) or its 1-4
// numeric form, matching the p: attribute grammar.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(s) {
	case "low", "1":
		return PriorityLow, nil
	case "medium", "2":
		return PriorityMedium, nil
	case "high", "3":
		return PriorityHigh, nil
	case "critical", "4":
		return PriorityCritical, nil
	}
	return PriorityMedium, fmt.Errorf("invalid priority %q", s)
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}
