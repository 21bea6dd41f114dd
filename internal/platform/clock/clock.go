package clock

import "time"

// Clock abstracts time so age derivation stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall time; "today" for age purposes is the
// user's calendar day, not UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
