// Copyright © 2024 Geoff Holden <geoff@geoffholden.com>

package units

import "math"

// Round rounds half away from zero to the given number of decimal places.
// Negative places are treated as zero.
func Round(value float64, places int) float64 {
	if places < 0 {
		places = 0
	}
	p := math.Pow(10, float64(places))
	return math.Round(value*p) / p
}
