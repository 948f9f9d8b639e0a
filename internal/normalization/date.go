package normalization

import (
	"strings"
	"time"
)

// dateLayouts are tried in order for generic parsing. Day-first forms are the
// common counselor input.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// NormalizeDate resolves relative phrases and common layouts to an absolute
// date. Recognizes "today", "yesterday", "last week" and their Turkish
// equivalents. Returns nil when the value cannot be interpreted; never errors.
func NormalizeDate(value interface{}) *time.Time {
	return normalizeDateAt(value, time.Now().UTC())
}

func normalizeDateAt(value interface{}, now time.Time) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		d := truncateDay(v)
		return &d
	case *time.Time:
		if v == nil {
			return nil
		}
		d := truncateDay(*v)
		return &d
	case string:
		return parseDateString(v, now)
	default:
		return nil
	}
}

func parseDateString(s string, now time.Time) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	switch strings.ToLower(s) {
	case "today", "bugün", "bugun":
		d := truncateDay(now)
		return &d
	case "yesterday", "dün", "dun":
		d := truncateDay(now.AddDate(0, 0, -1))
		return &d
	case "last week", "geçen hafta", "gecen hafta":
		d := truncateDay(now.AddDate(0, 0, -7))
		return &d
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := truncateDay(t)
			return &d
		}
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
