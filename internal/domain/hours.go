package domain

import (
	"fmt"
	"time"
)

// ClockTime is a wall-clock time of day with no date attached.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" in 24-hour format.
func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return ClockTime{}, fmt.Errorf("parse clock time %q: use HH:MM 24-hour format", s)
	}
	if h < 0 || h >= 24 || m < 0 || m >= 60 {
		return ClockTime{}, fmt.Errorf("parse clock time %q: out of range", s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// On anchors the wall-clock time to the calendar date of day, in day's
// time zone.
func (c ClockTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// BusinessHours is the daily working interval applied to every business day.
type BusinessHours struct {
	Start ClockTime
	End   ClockTime
}

// ParseBusinessHours parses the start and end wall-clock strings and rejects
// inverted intervals.
func ParseBusinessHours(start, end string) (BusinessHours, error) {
	s, err := ParseClockTime(start)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("parse business hours: %w", err)
	}
	e, err := ParseClockTime(end)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("parse business hours: %w", err)
	}
	if e.Hour*60+e.Minute <= s.Hour*60+s.Minute {
		return BusinessHours{}, fmt.Errorf("parse business hours: end %q must be after start %q", end, start)
	}
	return BusinessHours{Start: s, End: e}, nil
}
