package utils

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used by fichas and clientes
const DateLayout = "2006-01-02"

// DateWindow is an inclusive range of ISO dates. An empty bound is open.
type DateWindow struct {
	Start string
	End   string
}

// MonthWindow covers the calendar month of t
func MonthWindow(t time.Time) DateWindow {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return DateWindow{Start: first.Format(DateLayout), End: last.Format(DateLayout)}
}

// YearWindow covers the calendar year of t
func YearWindow(t time.Time) DateWindow {
	return DateWindow{
		Start: fmt.Sprintf("%04d-01-01", t.Year()),
		End:   fmt.Sprintf("%04d-12-31", t.Year()),
	}
}

// IsValidDate reports whether s is a real calendar date in YYYY-MM-DD form
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Today formats t as an ISO date
func Today(t time.Time) string {
	return t.Format(DateLayout)
}
