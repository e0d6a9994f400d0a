// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package sensors

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// BoardSample is one raw read of the sensor board. Ambient holds one or two
// temperatures in °C depending on how many sensors the board carries.
type BoardSample struct {
	Ambient  []float64
	Humidity float64
	Pressure float64 // millibar
}

// SensorSource is a sensor board returning temperature, humidity and
// pressure.
type SensorSource interface {
	Read(ctx context.Context) (BoardSample, error)
	Close() error
}

// Probe is a single temperature reading, e.g. the CPU or a 1-wire sensor.
type Probe interface {
	Name() string
	Temperature(ctx context.Context) (float64, error)
}

// Options carries the board specific settings. Boards ignore fields they
// have no use for.
type Options struct {
	I2CBus      string
	I2CAddress  uint16
	SerialPort  string
	SerialBaud  int
	Elevation   int
	ReadTimeout time.Duration
}

type OpenFunc func(opts Options) (SensorSource, error)

var boards map[string]OpenFunc

func RegisterBoard(key string, open OpenFunc) {
	if nil == boards {
		boards = make(map[string]OpenFunc)
	}
	boards[key] = open
}

// Boards returns the registered board names, sorted.
func Boards() []string {
	names := make([]string, 0, len(boards))
	for name := range boards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Open(key string, opts Options) (SensorSource, error) {
	open, ok := boards[key]
	if !ok {
		return nil, fmt.Errorf("unknown board %q", key)
	}
	source, err := open(opts)
	if err != nil {
		return nil, &SensorError{Op: "open " + key, Err: err}
	}
	return source, nil
}

// SensorError is returned when the board or a probe cannot be read.
type SensorError struct {
	Op  string
	Err error
}

func (e *SensorError) Error() string {
	return "sensor " + e.Op + ": " + e.Err.Error()
}

func (e *SensorError) Unwrap() error {
	return e.Err
}
