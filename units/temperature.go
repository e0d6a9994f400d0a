// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package units

import (
	"errors"
	"strings"
)

// Temperature is stored in degrees Celsius.
type Temperature struct {
	celsius float64
}

func NewTemperatureCelsius(value float64) Temperature {
	return Temperature{value}
}

func (t *Temperature) Celsius() float64 {
	return t.celsius
}

func (t *Temperature) Fahrenheit() float64 {
	return t.celsius*1.8 + 32
}

// Rounded returns the temperature in the given unit rounded half away from
// zero to places decimals. The conversion happens before rounding.
func (t *Temperature) Rounded(unit string, places int) (float64, error) {
	value, err := t.Get(unit)
	if err != nil {
		return 0, err
	}
	return Round(value, places), nil
}

func (t *Temperature) Get(unit string) (float64, error) {
	switch strings.ToLower(unit) {
	case "c", "celsius":
		return t.Celsius(), nil
	case "f", "fahrenheit":
		return t.Fahrenheit(), nil
	}
	return 0, errors.New("Unknown unit")
}

// CelsiusToFahrenheit converts and rounds to one decimal place.
func CelsiusToFahrenheit(c float64) float64 {
	t := NewTemperatureCelsius(c)
	f, _ := t.Rounded("f", 1)
	return f
}
