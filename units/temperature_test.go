// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package units

import (
	"math"
	"testing"
	"testing/quick"
)

func TestTemperatureCelsius(t *testing.T) {
	if err := quick.Check(func(x float64) bool {
		y := NewTemperatureCelsius(x)
		return floatEquals(x, y.Celsius())
	}, nil); err != nil {
		t.Error(err)
	}
}

func TestTemperatureFahrenheit(t *testing.T) {
	if err := quick.Check(func(x int16) bool {
		y := NewTemperatureCelsius(float64(x))
		return floatEquals(float64(x)*1.8+32, y.Fahrenheit())
	}, nil); err != nil {
		t.Error(err)
	}
}

func TestCelsiusToFahrenheit(t *testing.T) {
	cases := map[float64]float64{
		0:      32,
		100:    212,
		-40:    -40,
		21.5:   70.7,
		-12.34: 9.8,
		8.3333: 47,
		37:     98.6,
	}
	for c, f := range cases {
		if got := CelsiusToFahrenheit(c); !floatEquals(got, f) {
			t.Errorf("CelsiusToFahrenheit(%v) = %v, want %v", c, got, f)
		}
	}
}

func TestCelsiusToFahrenheitQuick(t *testing.T) {
	if err := quick.Check(func(x int16) bool {
		c := float64(x) / 7
		want := math.Round((c*1.8+32)*10) / 10
		return CelsiusToFahrenheit(c) == want
	}, nil); err != nil {
		t.Error(err)
	}
}

func TestTemperatureRounded(t *testing.T) {
	temp := NewTemperatureCelsius(8.3333333)

	value, err := temp.Rounded("C", 1)
	if err != nil {
		t.Fatal(err)
	}
	if value != 8.3 {
		t.Fatal("Value should be 8.3, got", value)
	}

	// 8.3333 C is 46.99999 F, rounding after the conversion gives 47.0
	value, err = temp.Rounded("F", 1)
	if err != nil {
		t.Fatal(err)
	}
	if value != 47 {
		t.Fatal("Value should be 47, got", value)
	}

	negative := NewTemperatureCelsius(-0.25)
	value, err = negative.Rounded("C", 1)
	if err != nil {
		t.Fatal(err)
	}
	if value != -0.3 {
		t.Fatal("Value should be -0.3, got", value)
	}

	_, err = temp.Rounded("K", 1)
	if err == nil {
		t.Fatal("Invalid unit should give an error")
	}
}

func TestTemperatureGet(t *testing.T) {
	temp := NewTemperatureCelsius(0)

	value, err := temp.Get("C")
	if err != nil {
		t.Fatal(err)
	}
	if !floatEquals(value, 0) {
		t.Fatal("Value should be 0")
	}

	value, err = temp.Get("fahrenheit")
	if err != nil {
		t.Fatal(err)
	}
	if !floatEquals(value, 32) {
		t.Fatal("Value should be 32")
	}

	_, err = temp.Get("M")
	if err == nil {
		t.Fatal("Invalid unit should give an error")
	}
}
