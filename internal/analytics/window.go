package analytics

import (
	"fmt"
	"time"
)

// Period tokens accepted by Resolve
const (
	PeriodToday  = "today"
	Period24h    = "24h"
	Period7Days  = "7days"
	Period30Days = "30days"
	Period90Days = "90days"
)

// Window is a closed interval [Start, End]. Date-based windows cover whole calendar days.
type Window struct {
	Start     time.Time
	End       time.Time
	DateBased bool
}

// Contains reports whether t falls inside the window, both ends inclusive
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the number of calendar dates covered by a date-based window
func (w Window) Days() int {
	start := startOfDay(w.Start)
	end := startOfDay(w.End)
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// Resolve converts a period token into a concrete window relative to now
func Resolve(token string, now time.Time) (Window, error) {
	switch token {
	case PeriodToday:
		return dayRange(now, 1), nil
	case Period24h:
		return Window{Start: now.Add(-24 * time.Hour), End: now}, nil
	case Period7Days:
		return dayRange(now, 7), nil
	case Period30Days:
		return dayRange(now, 30), nil
	case Period90Days:
		return dayRange(now, 90), nil
	}
	return Window{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, token)
}

// ValidateToken checks token against the caller's enumerated set of periods
func ValidateToken(token string, allowed ...string) error {
	for _, a := range allowed {
		if token == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (allowed: %v)", ErrInvalidPeriod, token, allowed)
}

// Previous returns the window of identical length ending immediately before w
func Previous(w Window) Window {
	if w.DateBased {
		days := w.Days()
		firstDay := startOfDay(w.Start)
		return Window{
			Start:     firstDay.AddDate(0, 0, -days),
			End:       endOfDay(firstDay.AddDate(0, 0, -1)),
			DateBased: true,
		}
	}
	end := w.Start.Add(-time.Second)
	return Window{Start: end.Add(-w.End.Sub(w.Start)), End: end}
}

// DaysBefore returns the date-based window of n days ending the day before w starts
func DaysBefore(w Window, n int) Window {
	firstDay := startOfDay(w.Start)
	return Window{
		Start:     firstDay.AddDate(0, 0, -n),
		End:       endOfDay(firstDay.AddDate(0, 0, -1)),
		DateBased: true,
	}
}

// dayRange spans the n calendar days ending on now's date
func dayRange(now time.Time, n int) Window {
	today := startOfDay(now)
	return Window{
		Start:     today.AddDate(0, 0, -(n - 1)),
		End:       endOfDay(today),
		DateBased: true,
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// monthStart returns the first instant of the month offset months away from t
func monthStart(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location())
}
