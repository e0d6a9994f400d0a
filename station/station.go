// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package station

import (
	"context"
	"errors"
	"time"

	jww "github.com/spf13/jwalterweatherman"

	"github.com/geoffholden/sensewx/display"
)

// CycleState is carried from one loop iteration to the next.
type CycleState struct {
	LastMinute int
	LastTempF  float64
	Display    display.Glyph
	Message    string
}

type Station struct {
	Sampler     *Sampler
	Compensator *Compensator
	Reporter    *Reporter
	Tick        TickGate
	Upload      UploadGate

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// New assembles a station from opened components and the configuration.
func New(c *Config, sampler *Sampler, reporter *Reporter) (*Station, error) {
	gate, err := NewUploadGate(c.MeasurementInterval)
	if err != nil {
		return nil, err
	}
	return &Station{
		Sampler:     sampler,
		Compensator: NewCompensator(c),
		Reporter:    reporter,
		Tick:        TickGate{Every: c.RefreshSeconds},
		Upload:      gate,
		now:         time.Now,
		after:       time.After,
	}, nil
}

// Measure samples and compensates once.
func (s *Station) Measure(ctx context.Context, now time.Time) (Reading, error) {
	raw, err := s.Sampler.Sample(ctx)
	if err != nil {
		return Reading{}, err
	}
	jww.DEBUG.Println(raw)
	c := s.Compensator.Compensate(raw)
	return NewReading(now, c, raw.Humidity, raw.Pressure), nil
}

// Start greets on the display and takes the baseline reading. A failure
// here means the station cannot run.
func (s *Station) Start(ctx context.Context) (CycleState, error) {
	s.Reporter.message("Party On!", display.Yellow, display.Blue)
	if s.Reporter.Sink != nil {
		if err := s.Reporter.Sink.Clear(); err != nil {
			jww.WARN.Println("display:", err)
		}
	}

	now := s.now()
	reading, err := s.Measure(ctx, now)
	if err != nil {
		return CycleState{}, err
	}
	jww.INFO.Println("Current temperature reading:", reading.TemperatureF)
	return CycleState{
		LastMinute: previousMinute(now),
		LastTempF:  reading.TemperatureF,
	}, nil
}

// Cycle runs one iteration at time now and returns the updated state.
func (s *Station) Cycle(ctx context.Context, state CycleState, now time.Time) CycleState {
	if !s.Tick.Pass(now) {
		return state
	}

	reading, err := s.Measure(ctx, now)
	if err != nil {
		jww.ERROR.Println(err)
		return state
	}
	jww.INFO.Println(reading)

	state = s.Reporter.Show(reading, state)

	minute, due := s.Upload.Due(state.LastMinute, now.Minute())
	state.LastMinute = minute
	if !due {
		return state
	}

	jww.INFO.Printf("%d minute mark (%d @ %s)\n", s.Upload.Interval, minute, now.Format(time.RFC3339))
	state.LastTempF = reading.TemperatureF
	if err := s.Reporter.Upload(ctx, reading); err != nil {
		jww.DEBUG.Println("upload cycle:", err)
	}
	s.Reporter.Restore(state)
	return state
}

// Run starts the station and loops once a second until ctx is done.
func (s *Station) Run(ctx context.Context) error {
	state, err := s.Start(ctx)
	if err != nil {
		return err
	}
	jww.INFO.Println("Initialization complete, posting data to endpoints")

	for {
		select {
		case <-ctx.Done():
			s.Reporter.message("Goodbye", display.White, display.Empty)
			jww.INFO.Println("Exiting")
			return nil
		case <-s.after(time.Second):
			state = s.Cycle(ctx, state, s.now())
		}
	}
}

func (s *Station) Close() error {
	return errors.Join(s.Sampler.Close(), s.Reporter.Close())
}
