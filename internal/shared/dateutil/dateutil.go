// Package dateutil parses and formats the calendar dates exchanged with the
// frontend (shift dates, deadlines).
package dateutil

import (
	"errors"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

var layouts = []string{Layout, time.RFC3339, "02.01.2006", "2006/01/02"}

// Parse accepts YYYY-MM-DD, RFC 3339, DD.MM.YYYY and YYYY/MM/DD. An empty
// string yields nil. The result is truncated to midnight UTC.
func Parse(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, ErrInvalidDate
}

func Format(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(Layout)
	return &s
}

func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
