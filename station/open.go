// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package station

import (
	"net/http"

	jww "github.com/spf13/jwalterweatherman"

	"github.com/geoffholden/sensewx/display"
	"github.com/geoffholden/sensewx/sensors"
	"github.com/geoffholden/sensewx/upload"
)

// OpenSampler opens the board and the probes named in the configuration.
func OpenSampler(c *Config) (*Sampler, error) {
	board, err := sensors.Open(c.Board, sensors.Options{
		I2CBus:      c.I2CBus,
		I2CAddress:  c.I2CAddress,
		SerialPort:  c.SerialPort,
		SerialBaud:  c.SerialBaud,
		Elevation:   c.Elevation,
		ReadTimeout: c.ReadTimeout,
	})
	if err != nil {
		return nil, err
	}
	s := &Sampler{Board: board}

	if c.CompensateCPU {
		s.CPU, err = sensors.OpenCPUProbe(c.CPUProbe, c.CPUThermalKey)
		if err != nil {
			board.Close()
			return nil, err
		}
	}
	if c.AmbientProbe {
		probe, err := sensors.NewDS18B20(c.AmbientID)
		if err != nil {
			board.Close()
			return nil, &sensors.SensorError{Op: "open ambient probe", Err: err}
		}
		jww.INFO.Println("Using ambient probe", probe.Name())
		s.Ambient = probe
	}
	return s, nil
}

// OpenReporter opens the display and builds an uploader for every enabled
// target.
func OpenReporter(c *Config, displayName string) (*Reporter, error) {
	sink, err := display.Open(displayName, c.Rotation, c.LowLight)
	if err != nil {
		return nil, err
	}
	r := &Reporter{
		Sink:              sink,
		ShowTemperature:   c.ShowTemperature,
		ScrollSpeed:       c.ScrollSpeed,
		DateFormat:        c.DateFormat,
		HumidityPrecision: c.HumidityPrecision,
		PressurePrecision: c.PressurePrecision,
	}
	if c.StatusLEDPin > 0 {
		r.Indicator = display.StatusLED{Pin: c.StatusLEDPin}
	}

	client := &http.Client{Timeout: c.UploadTimeout}
	for _, t := range c.EnabledTargets() {
		u, err := upload.New(t, client, c.UploadTimeout)
		if err != nil {
			r.Close()
			return nil, err
		}
		jww.INFO.Println("Upload target", t.Name, "("+t.Kind+")", t.URL)
		r.Uploaders = append(r.Uploaders, u)
	}
	return r, nil
}

// Open opens every component of the station.
func Open(c *Config) (*Station, error) {
	sampler, err := OpenSampler(c)
	if err != nil {
		return nil, err
	}
	reporter, err := OpenReporter(c, c.Display)
	if err != nil {
		sampler.Close()
		return nil, err
	}
	s, err := New(c, sampler, reporter)
	if err != nil {
		sampler.Close()
		reporter.Close()
		return nil, err
	}
	return s, nil
}
