// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package station

// WindowSize is the number of compensated values averaged by Smooth.
const WindowSize = 3

// Window is a ring of the most recent compensated temperatures. The first
// value pushed fills every slot.
type Window struct {
	values [WindowSize]float64
	next   int
	seeded bool
}

// Push stores x, dropping the oldest value, and returns the mean.
func (w *Window) Push(x float64) float64 {
	if !w.seeded {
		for i := range w.values {
			w.values[i] = x
		}
		w.seeded = true
		return x
	}
	w.values[w.next] = x
	w.next = (w.next + 1) % WindowSize
	return mean(w.values[:])
}

// Values returns the window oldest first.
func (w *Window) Values() []float64 {
	out := make([]float64, 0, WindowSize)
	for i := 0; i < WindowSize; i++ {
		out = append(out, w.values[(w.next+i)%WindowSize])
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Compensator turns the raw ambient readings into an estimate of the air
// temperature around a board heated by the CPU.
type Compensator struct {
	CompensateCPU bool
	HeatFactor    float64
	Smooth        bool

	window Window
}

func NewCompensator(c *Config) *Compensator {
	return &Compensator{
		CompensateCPU: c.CompensateCPU,
		HeatFactor:    c.HeatFactor,
		Smooth:        c.Smooth,
	}
}

// Compensate returns the corrected temperature in °C, unrounded.
func (c *Compensator) Compensate(raw RawSample) float64 {
	t := raw.Ambient1
	if raw.HasAmbient2 {
		t = (raw.Ambient1 + raw.Ambient2) / 2
	}
	if c.CompensateCPU {
		factor := c.HeatFactor
		if factor <= 0 {
			factor = 1.5
		}
		t = t - (raw.CPUTemp-t)/factor
	}
	if c.Smooth {
		t = c.window.Push(t)
	}
	return t
}

// Window returns the smoothing history oldest first.
func (c *Compensator) Window() []float64 {
	return c.window.Values()
}
