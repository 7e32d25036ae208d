package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the short date format used for display and input
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses user-entered date text relative to now.
// Accepts absolute dates, today/tomorrow/yesterday and +Nd / -Nd offsets.
func ParseDate(text string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(strings.ToLower(text))
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	today := StartOfDay(now)
	switch s {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if (s[0] == '+' || s[0] == '-') && strings.HasSuffix(s, "d") {
		n, err := strconv.Atoi(s[1 : len(s)-1])
		if err == nil {
			if s[0] == '-' {
				n = -n
			}
			return today.AddDate(0, 0, n), nil
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(text), now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (use YYYY-MM-DD)", text)
}

// StartOfDay truncates t to midnight in its location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
