package calendar

import "time"

// Clock supplies "today". Core packages take the date as a parameter; only
// hosts hold a Clock.
type Clock interface {
	Today() Date
}

type SystemClock struct{}

func (SystemClock) Today() Date { return FromTime(time.Now()) }

type FixedClock struct {
	Date Date
}

func (c FixedClock) Today() Date { return c.Date }

// NextMidnight returns the first instant of the local day after now.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}
