// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package units

// Pressure is stored in hectopascal, which is the same as millibar.
type Pressure struct {
	hectopascal float64
}

func NewPressureMillibar(value float64) Pressure {
	return Pressure{value}
}

func (p *Pressure) Pascal() float64 {
	return p.hectopascal * 100.0
}

// InchMercury uses the 0.02953 inHg/mbar factor Weather Underground expects.
func (p *Pressure) InchMercury() float64 {
	return p.Pascal() / 3386.389
}
