// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package sensors

import (
	"fmt"
	"strconv"
	"strings"
)

// SHT decodes the "SHT:tttt,hhhh" lines of the WxShield. Both fields are
// signed 16 bit hex values in tenths.
type SHT struct {
	Temperature float64
	Humidity    float64
}

func (s *SHT) Parse(input string) error {
	str := strings.Split(input, ",")
	if len(str) != 2 {
		return fmt.Errorf("sht: malformed value %q", input)
	}
	temp, err := strconv.ParseUint(strings.TrimSpace(str[0]), 16, 16)
	if err != nil {
		return fmt.Errorf("sht: temperature: %w", err)
	}
	hum, err := strconv.ParseUint(strings.TrimSpace(str[1]), 16, 16)
	if err != nil {
		return fmt.Errorf("sht: humidity: %w", err)
	}

	s.Temperature = float64(int16(temp)) / 10.0
	s.Humidity = float64(int16(hum)) / 10.0
	return nil
}
