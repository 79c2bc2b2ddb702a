package features

import (
	"fmt"
	"time"
)

// Clock is a wall-clock time of day with second precision
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ParseClock parses "HH:MM" or "HH:MM:SS". Both forms of the same time
// yield the same Clock.
func ParseClock(s string) (Clock, error) {
	value := s
	if len(value) == 5 {
		value += ":00"
	}

	t, err := time.Parse("15:04:05", value)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}

	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// MinuteOfDay returns minutes since midnight; seconds are dropped
func (c Clock) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// ScheduledDuration returns the block time in minutes from dep to arr. An
// arrival earlier in the clock than the departure is taken as next day.
func ScheduledDuration(dep, arr Clock) int {
	d := arr.MinuteOfDay() - dep.MinuteOfDay()
	if d < 0 {
		d += 1440
	}
	return d
}
