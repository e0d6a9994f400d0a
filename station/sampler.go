// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

// Package station runs the sample, compensate and report cycle of a single
// weather station.
package station

import (
	"context"
	"errors"
	"fmt"

	"github.com/geoffholden/sensewx/sensors"
)

// RawSample is one uncompensated read of the board and the CPU.
type RawSample struct {
	Ambient1    float64
	Ambient2    float64
	HasAmbient2 bool
	Humidity    float64
	Pressure    float64 // millibar
	CPUTemp     float64
}

// Sampler reads the board and the CPU probe. Ambient, when set, is used as
// the second ambient source in place of the board's.
type Sampler struct {
	Board   sensors.SensorSource
	CPU     sensors.Probe
	Ambient sensors.Probe
}

func (s *Sampler) Sample(ctx context.Context) (RawSample, error) {
	var raw RawSample

	b, err := s.Board.Read(ctx)
	if err != nil {
		return raw, asSensorError("read board", err)
	}
	if len(b.Ambient) == 0 {
		return raw, &sensors.SensorError{Op: "read board", Err: errors.New("no ambient temperature")}
	}
	raw.Ambient1 = b.Ambient[0]
	if len(b.Ambient) > 1 {
		raw.Ambient2 = b.Ambient[1]
		raw.HasAmbient2 = true
	}
	raw.Humidity = b.Humidity
	raw.Pressure = b.Pressure

	if s.Ambient != nil {
		t, err := s.Ambient.Temperature(ctx)
		if err != nil {
			return raw, asSensorError("read "+s.Ambient.Name(), err)
		}
		raw.Ambient2 = t
		raw.HasAmbient2 = true
	}

	if s.CPU != nil {
		t, err := s.CPU.Temperature(ctx)
		if err != nil {
			return raw, asSensorError("read "+s.CPU.Name(), err)
		}
		raw.CPUTemp = t
	}
	return raw, nil
}

func (s *Sampler) Close() error {
	if s.Board == nil {
		return nil
	}
	return s.Board.Close()
}

func asSensorError(op string, err error) error {
	var se *sensors.SensorError
	if errors.As(err, &se) {
		return err
	}
	return &sensors.SensorError{Op: op, Err: err}
}

func (r RawSample) String() string {
	if r.HasAmbient2 {
		return fmt.Sprintf("ambient %.2f/%.2fC cpu %.1fC humidity %.1f%% pressure %.2fmb", r.Ambient1, r.Ambient2, r.CPUTemp, r.Humidity, r.Pressure)
	}
	return fmt.Sprintf("ambient %.2fC cpu %.1fC humidity %.1f%% pressure %.2fmb", r.Ambient1, r.CPUTemp, r.Humidity, r.Pressure)
}
