// Copyright © 2024 Geoff Holden <geoff@geoffholden.com>

package sensors

import (
	"context"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// BME280 is a single-sensor board, it has one ambient temperature only.
type BME280 struct {
	bus i2c.BusCloser
	dev *bmxx80.Dev
}

func init() {
	RegisterBoard("bme280", openBME280)
}

func openBME280(opts Options) (SensorSource, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	bus, err := i2creg.Open(opts.I2CBus)
	if err != nil {
		return nil, err
	}

	addr := opts.I2CAddress
	if addr == 0 {
		addr = 0x76
	}
	dev, err := bmxx80.NewI2C(bus, addr, &bmxx80.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, err
	}
	return &BME280{bus: bus, dev: dev}, nil
}

func (b *BME280) Read(ctx context.Context) (BoardSample, error) {
	if err := ctx.Err(); err != nil {
		return BoardSample{}, &SensorError{Op: "read bme280", Err: err}
	}
	var env physic.Env
	if err := b.dev.Sense(&env); err != nil {
		return BoardSample{}, &SensorError{Op: "read bme280", Err: err}
	}
	return envSample(env), nil
}

func envSample(env physic.Env) BoardSample {
	return BoardSample{
		Ambient:  []float64{env.Temperature.Celsius()},
		Humidity: float64(env.Humidity) / float64(physic.PercentRH),
		Pressure: float64(env.Pressure) / float64(100*physic.Pascal),
	}
}

func (b *BME280) Close() error {
	b.dev.Halt()
	return b.bus.Close()
}
