// Package util holds small helpers shared by the CLI surface.
package util

import "strings"

// Slugify lowercases the input and collapses whitespace and punctuation
// runs into single dashes, producing a safe file name stem. Empty results
// become "unnamed".
func Slugify(input string) string {
	var b strings.Builder
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			if s := b.String(); s != "" && !strings.HasSuffix(s, "-") {
				b.WriteRune('-')
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "unnamed"
	}
	return slug
}

// SanitizeOutputName slugifies a name and ensures it carries the given
// extension exactly once.
func SanitizeOutputName(name, extension string) string {
	suffix := "." + extension
	return Slugify(strings.TrimSuffix(name, suffix)) + suffix
}

// QuarterHours converts a minute count to quarter-hour cells, rounding up,
// with a minimum of one cell so zero-length tasks stay visible.
func QuarterHours(minutes int) int {
	cells := (minutes + 14) / 15
	if cells < 1 {
		return 1
	}
	return cells
}
