// Package profit computes the profit summary from raw order and expense
// collections. Totals are always recomputed from the raw records for the
// requested window; the backend's own summary endpoints are not
// consulted, because only this filtering is authoritative for the view.
package profit

import (
	"time"

	"github.com/partsdesk/partsdesk/internal/platform/rest"
)

// Window is a calendar reporting window: either a whole month or a
// single day of one. Day is zero for month windows.
type Window struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day,omitempty"`
}

// MonthWindow builds a whole-month window.
func MonthWindow(year int, month time.Month) (Window, error) {
	w := Window{Year: year, Month: month}
	return w, w.validate()
}

// DayWindow builds a single-day window.
func DayWindow(year int, month time.Month, day int) (Window, error) {
	w := Window{Year: year, Month: month, Day: day}
	if day < 1 || day > 31 {
		return Window{}, rest.Validationf("day must be between 1 and 31")
	}
	return w, w.validate()
}

func (w Window) validate() error {
	if w.Year < 2000 || w.Year > 2100 {
		return rest.Validationf("year must be between 2000 and 2100")
	}
	if w.Month < time.January || w.Month > time.December {
		return rest.Validationf("month must be between 1 and 12")
	}
	return nil
}

// Contains reports whether the instant falls inside the window. The
// calendar fields are compared in the timestamp's own location, and a
// zero time (missing or unparseable date) is never inside any window.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if t.Year() != w.Year || t.Month() != w.Month {
		return false
	}
	return w.Day == 0 || t.Day() == w.Day
}
