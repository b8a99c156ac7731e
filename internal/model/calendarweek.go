package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all submission dates.
const DateLayout = "2006-01-02"

// WeekStart returns the Monday of the ISO week containing t, at midnight.
func WeekStart(t time.Time) time.Time {
	// Go's weekday: Sunday=0, Monday=1, ..., Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// WeekEnd returns the Sunday of the ISO week containing t, at midnight.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// ISOWeekNumber returns the ISO-8601 week number for the given date.
func ISOWeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// Normalize derives EndDate and CalendarWeek from StartDate when the client
// omitted them. A malformed start date is reported; the week is left as-is
// so the fill layer can still write whatever the client sent.
func (w *CalendarWeek) Normalize() error {
	if w.StartDate == "" {
		return nil
	}
	start, err := time.Parse(DateLayout, w.StartDate)
	if err != nil {
		return fmt.Errorf("invalid week start date %q: %w", w.StartDate, err)
	}
	if w.EndDate == "" {
		w.EndDate = WeekEnd(start).Format(DateLayout)
	}
	if w.CalendarWeek == 0 {
		w.CalendarWeek = ISOWeekNumber(start)
	}
	return nil
}

// NormalizeWeeks derives missing week fields for every calendar week in the
// submission. Derivation failures are silently skipped; they surface later
// as blank row writes, never as a fill abort.
func (s *Submission) NormalizeWeeks() {
	for i := range s.WorkingTime.CalendarWeeks {
		_ = s.WorkingTime.CalendarWeeks[i].Normalize()
	}
}
