package clock

import "time"

// DateLayout is the calendar-date format the meals API expects.
const DateLayout = "2006-01-02"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local time; menu dates follow the local calendar.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}
