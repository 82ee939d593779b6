package ledger

import (
	"time"
)

// LongTermThreshold returns the first instant at which an asset bought at buy
// counts as held long-term, in the calendar of loc.
//
// The count starts the day after the purchase. When that day is a leap-year
// Feb 29 it moves one more day; the day-of-month bump is carried into the
// following year before normalisation, so a 2020-02-28 purchase gets a
// threshold of 2021-03-02 (Feb 30 2021). The threshold is midnight one year
// after the adjusted start.
func LongTermThreshold(buy time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	b := buy.In(loc)
	start := time.Date(b.Year(), b.Month(), b.Day()+1, 0, 0, 0, 0, loc)

	y, m, d := start.Date()
	if m == time.February && d == 29 {
		d++
	}
	return time.Date(y+1, m, d, 0, 0, 0, 0, loc)
}

// IsLongTerm reports whether a sale at sell of an asset bought at buy is a
// long-term disposal: sell must be at or after LongTermThreshold.
func IsLongTerm(buy, sell time.Time, loc *time.Location) bool {
	return !sell.Before(LongTermThreshold(buy, loc))
}
