// Package timeutil converts human-friendly time expressions into the
// fractional hours entries carry.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([a-z]*)`)
	unitMap        = map[string]time.Duration{
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
		"d":       8 * time.Hour, // a working day
		"day":     8 * time.Hour,
		"days":    8 * time.Hour,
	}
)

// ParseHours parses an hour amount written either as a bare number ("1.5")
// or as a duration with units (for example "1h30m", "90min", or "1d"). A
// unitless number means hours; "d" counts as one eight hour working day.
func ParseHours(input string) (float64, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return 0, nil
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("hours can not be negative: %q", input)
		}
		return v, nil
	}

	remaining := trimmed
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 || matches[2] == "" {
			return 0, fmt.Errorf("invalid hours segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number in %q", strings.TrimSpace(remaining))
		}
		unit, ok := unitMap[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unknown unit %q", matches[2])
		}
		total += time.Duration(value * float64(unit))
		remaining = remaining[len(matches[0]):]
	}
	return total.Hours(), nil
}
