package services

import "time"

// Clock returns the current instant in the rider's local time zone
type Clock func() time.Time

// LocalClock reads the system time in loc
func LocalClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

func (c Clock) orDefault() Clock {
	if c == nil {
		return time.Now
	}
	return c
}
