// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package sensors

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errNotCalibrated = errors.New("bmp: no calibration data yet")

// BMP decodes the BMP085/BMP180 lines of the WxShield. The shield sends the
// calibration words once (BM0 to BMA) and then BMX samples, summed over
// avgCount conversions.
type BMP struct {
	Elevation int

	ossMode  int32
	avgCount int32
	cal      [11]int32

	c5, c6, mc, md float64
	x0, x1, x2     float64
	y0, y1, y2     float64
	p0, p1, p2     float64

	calibrated bool
}

func parseSignedShort(s string) (int16, error) {
	val, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return int16(val), nil
}

// Parse handles one BM* line. It reports sample=true when a BMX line was
// decoded into Temperature (°C) and Pressure (hPa).
func (b *BMP) Parse(key string, input string) (temperature, pressure float64, sample bool, err error) {
	input = strings.TrimSpace(input)
	switch key {
	case "BM0", "BM1", "BM2", "BM6", "BM7", "BM8", "BM9":
		val, err := parseSignedShort(input)
		if err != nil {
			return 0, 0, false, fmt.Errorf("bmp: %s: %w", key, err)
		}
		b.cal[key[2]-'0'] = int32(val)
	case "BM3", "BM4", "BM5":
		val, err := strconv.ParseUint(input, 16, 16)
		if err != nil {
			return 0, 0, false, fmt.Errorf("bmp: %s: %w", key, err)
		}
		b.cal[key[2]-'0'] = int32(val)
	case "BMA":
		val, err := parseSignedShort(input)
		if err != nil {
			return 0, 0, false, fmt.Errorf("bmp: %s: %w", key, err)
		}
		b.cal[10] = int32(val)
		b.updateCal()
	case "BMV":
		val, err := strconv.ParseInt(input, 16, 16)
		if err != nil {
			return 0, 0, false, fmt.Errorf("bmp: %s: %w", key, err)
		}
		b.avgCount = int32(val)
	case "BMO":
		val, err := strconv.ParseInt(input, 16, 16)
		if err != nil {
			return 0, 0, false, fmt.Errorf("bmp: %s: %w", key, err)
		}
		b.ossMode = int32(val)
	case "BMX":
		if !b.calibrated || b.avgCount <= 0 {
			return 0, 0, false, errNotCalibrated
		}
		str := strings.Split(input, ",")
		if len(str) != 2 {
			return 0, 0, false, fmt.Errorf("bmp: malformed sample %q", input)
		}
		temp, err := strconv.ParseUint(str[0], 16, 32)
		if err != nil {
			return 0, 0, false, fmt.Errorf("bmp: temperature: %w", err)
		}
		pres, err := strconv.ParseUint(str[1], 16, 32)
		if err != nil {
			return 0, 0, false, fmt.Errorf("bmp: pressure: %w", err)
		}
		temperature, pressure = b.compute(uint32(temp), uint32(pres))
		return temperature, pressure, true, nil
	default:
		return 0, 0, false, fmt.Errorf("bmp: unknown key %q", key)
	}
	return 0, 0, false, nil
}

func (b *BMP) compute(temp, pres uint32) (float64, float64) {
	t := temp / uint32(b.avgCount)
	p := pres / uint32(b.avgCount*16)

	alpha := b.c5 * (float64(t) - b.c6)
	temperature := alpha + b.mc/(alpha+b.md)

	s := temperature - 25.0
	x := (b.x2*s+b.x1)*s + b.x0
	y := (b.y2*s+b.y1)*s + b.y0
	z := (float64(p) - x) / y
	pressure := (b.p2*z+b.p1)*z + b.p0

	pressure += float64(b.Elevation) * 12.0 / 100.0 // 12 hPa/100m
	return temperature, pressure
}

func (b *BMP) updateCal() {
	c3 := 160.0 * math.Pow(2, -15) * float64(b.cal[2])
	c4 := 0.001 * math.Pow(2, -15) * float64(b.cal[3])
	b1 := 160 * 160 * math.Pow(2, -30) * float64(b.cal[6])

	b.c5 = math.Pow(2, -15) / 160.0 * float64(b.cal[4])
	b.c6 = float64(b.cal[5])
	b.mc = math.Pow(2, 11) / (160 * 160) * float64(b.cal[9])
	b.md = float64(b.cal[10]) / 160.0

	b.x0 = float64(b.cal[0])
	b.x1 = 160.0 * math.Pow(2, -13) * float64(b.cal[1])
	b.x2 = 160 * 160 * math.Pow(2, -25) * float64(b.cal[7])

	b.y0 = c4 * math.Pow(2, 15)
	b.y1 = c4 * c3
	b.y2 = c4 * b1

	b.p0 = (3791.0 - 8.0) / 1600.0
	b.p1 = 1.0 - 7357.0*math.Pow(2, -20)
	b.p2 = 3038 * 100 * math.Pow(2, -36)

	b.calibrated = true
}
