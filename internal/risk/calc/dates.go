package calc

import (
	"strings"
	"time"
)

// Dolibarr installations disagree on how due dates are encoded, so every
// shape seen in the wild is accepted and anything else degrades to unknown.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// NormalizeDate turns a raw due-date value into a calendar date.
// Accepted inputs: time.Time, numeric epoch seconds, strings in the known
// layouts. ok=false means unknown; normalization never fails loudly because
// an ambiguous date must not abort risk computation.
func NormalizeDate(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return DateOf(v), true
	case float64:
		return dateFromEpoch(int64(v))
	case int64:
		return dateFromEpoch(v)
	case int:
		return dateFromEpoch(int64(v))
	case string:
		return dateFromString(v)
	default:
		return time.Time{}, false
	}
}

// DateOf truncates a timestamp to its calendar date in local time.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func dateFromEpoch(sec int64) (time.Time, bool) {
	if sec == 0 {
		return time.Time{}, false
	}
	t := time.Unix(sec, 0)
	if t.Year() < 1 || t.Year() > 9999 {
		return time.Time{}, false
	}
	return DateOf(t), true
}

func dateFromString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// Keep only the date part of ISO datetime strings.
	if idx := strings.Index(s, "T"); idx >= 0 {
		s = s[:idx]
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return DateOf(t), true
		}
	}
	return time.Time{}, false
}
