package lifecycle

import "time"

// Clock supplies the current time to transition actions.  Injecting it
// keeps defaulted effective dates deterministic in tests; production code
// uses SystemClock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
