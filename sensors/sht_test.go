// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package sensors

import "testing"

func TestParseSHT(t *testing.T) {
	var s SHT
	if err := s.Parse("00D2,0190"); err != nil {
		t.Fatal(err)
	}
	if s.Temperature != 21 {
		t.Error("Error parsing temperature", s.Temperature)
	}
	if s.Humidity != 40 {
		t.Error("Error parsing humidity", s.Humidity)
	}

	if err := s.Parse("FFAC,0118"); err != nil {
		t.Fatal(err)
	}
	if s.Temperature != -8.4 {
		t.Error("Error parsing negative temperature", s.Temperature)
	}
	if s.Humidity != 28 {
		t.Error("Error parsing humidity", s.Humidity)
	}
}

func TestParseSHTMalformed(t *testing.T) {
	var s SHT
	if err := s.Parse("00D2"); err == nil {
		t.Error("Truncated value should give an error")
	}
	if err := s.Parse("ZZZZ,0190"); err == nil {
		t.Error("Invalid hex should give an error")
	}
}
