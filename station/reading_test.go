// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReading(t *testing.T) {
	r := NewReading(at(0, 0), 25.0/3, 45.4, 1013.25)
	assert.Equal(t, 8.3, r.TemperatureC)
	// converted before rounding, 8.3C alone would give 46.9F
	assert.Equal(t, 47.0, r.TemperatureF)
	assert.Equal(t, 45.4, r.Humidity)
	assert.InDelta(t, 29.921, r.Pressure, 0.001)
	assert.Equal(t, at(0, 0), r.Timestamp)
}

func TestNewReadingNegative(t *testing.T) {
	r := NewReading(at(0, 0), -12.26, 80, 1000)
	assert.Equal(t, -12.3, r.TemperatureC)
	assert.Equal(t, 9.9, r.TemperatureF)
}

func TestReadingString(t *testing.T) {
	r := Reading{TemperatureC: 21.5, TemperatureF: 70.7, Humidity: 45, Pressure: 29.92}
	assert.Equal(t, "Temp: 70.7F (21.5C), Pressure: 29.92 inHg, Humidity: 45%", r.String())
}
