// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package station

import (
	"fmt"
	"time"

	"github.com/geoffholden/sensewx/units"
)

// Reading is the compensated measurement of one cycle.
type Reading struct {
	Timestamp    time.Time
	TemperatureC float64
	TemperatureF float64
	Humidity     float64
	Pressure     float64 // inHg
}

// NewReading rounds the compensated temperature c to one decimal in both
// units. Fahrenheit is converted before Celsius is rounded.
func NewReading(ts time.Time, c, humidity, pressureMillibar float64) Reading {
	p := units.NewPressureMillibar(pressureMillibar)
	t := units.NewTemperatureCelsius(c)
	celsius, _ := t.Rounded("c", 1)
	return Reading{
		Timestamp:    ts,
		TemperatureC: celsius,
		TemperatureF: units.CelsiusToFahrenheit(c),
		Humidity:     humidity,
		Pressure:     p.InchMercury(),
	}
}

func (r Reading) String() string {
	return fmt.Sprintf("Temp: %.1fF (%.1fC), Pressure: %.2f inHg, Humidity: %.0f%%", r.TemperatureF, r.TemperatureC, r.Pressure, r.Humidity)
}
