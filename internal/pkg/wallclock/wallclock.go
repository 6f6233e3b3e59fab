// Package wallclock handles the zone-less date-times used for bookings.
// Values are kept in UTC holding the wall clock that was entered.
package wallclock

import (
	"errors"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	Layout     = "2006-01-02T15:04:05"
)

var ErrInvalid = errors.New("invalid date-time")

var inputLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Parse accepts YYYY-MM-DDTHH:MM with optional seconds; a space may replace the T.
// An explicit offset is dropped and its wall clock kept.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return fromWall(t), nil
	}
	return time.Time{}, ErrInvalid
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalid
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Day truncates t to midnight of its wall-clock date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today is the current local date expressed as a wall-clock day.
func Today() time.Time {
	return Day(fromWall(time.Now()))
}

func fromWall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// DateTime marshals as "2006-01-02T15:04:05".
type DateTime struct {
	time.Time
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + Format(d.Time) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := Parse(strings.Trim(s, `"`))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
