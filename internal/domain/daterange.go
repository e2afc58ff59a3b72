package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date format used everywhere in the
// engine. Ranges are resolved night by night, never collapsed.
const DateLayout = "2006-01-02"

// ExpandDates returns every date from fromDate through toDate inclusive, one
// entry per night. Callers with departure-exclusive semantics must subtract
// one day from toDate before calling.
func ExpandDates(fromDate, toDate string) ([]string, error) {
	from, err := time.Parse(DateLayout, fromDate)
	if err != nil {
		return nil, fmt.Errorf("%w: fromDate %q", ErrInvalidRange, fromDate)
	}
	to, err := time.Parse(DateLayout, toDate)
	if err != nil {
		return nil, fmt.Errorf("%w: toDate %q", ErrInvalidRange, toDate)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: %s..%s", ErrInvalidRange, fromDate, toDate)
	}
	out := make([]string, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateLayout))
	}
	return out, nil
}
