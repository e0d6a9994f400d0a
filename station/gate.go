// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package station

import (
	"fmt"
	"time"
)

// TickGate passes on the seconds that are a multiple of Every.
type TickGate struct {
	Every int
}

func (g TickGate) Pass(t time.Time) bool {
	if g.Every <= 1 {
		return true
	}
	sec := t.Second()
	return sec == 0 || sec%g.Every == 0
}

// UploadGate fires once on each new minute that is a multiple of Interval.
type UploadGate struct {
	Interval int
}

func NewUploadGate(interval int) (UploadGate, error) {
	if interval < 1 || interval > 60 {
		return UploadGate{}, fmt.Errorf("measurement interval must be between 1 and 60, got %d", interval)
	}
	return UploadGate{Interval: interval}, nil
}

// Due compares minute with the last observed minute. It returns the minute
// to remember and whether an upload is due.
func (g UploadGate) Due(last, minute int) (int, bool) {
	if minute == last {
		return last, false
	}
	return minute, minute == 0 || minute%g.Interval == 0
}

// previousMinute makes the first evaluation after startup see a new minute.
func previousMinute(t time.Time) int {
	return (t.Minute() + 59) % 60
}
