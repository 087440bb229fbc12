package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func NowUnixSeconds() int64 { return time.Now().Unix() }

// DayOf truncates t to its calendar date (midnight, UTC). Attendance
// idempotency is keyed on this value.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MinutesSinceMidnight returns the minute-of-day for t, used when comparing
// an arrival against a company's configured workday start.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseWorkStart parses an "HH:MM" workday start into minutes since
// midnight. Empty input means no configured start.
func ParseWorkStart(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty work start")
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed work start %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("malformed work start %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed work start %q", s)
	}
	return h*60 + m, nil
}
