// Copyright © 2024 Geoff Holden <geoff@geoffholden.com>

// Package display drives the 8x8 LED matrix of the station.
package display

import "time"

type Color struct {
	R, G, B uint8
}

var (
	Empty  = Color{0, 0, 0}
	Red    = Color{255, 0, 0}
	Blue   = Color{0, 0, 255}
	Yellow = Color{255, 255, 0}
	Green  = Color{0, 255, 0}
	Teal   = Color{32, 178, 170}
	Forest = Color{0, 100, 0}
	White  = Color{255, 255, 255}
)

// Pixels is one frame, row-major from the top left.
type Pixels [64]Color

// Sink is the LED matrix. ShowMessage scrolls text once and blocks until
// the text has left the display.
type Sink interface {
	SetPixels(p Pixels) error
	ShowMessage(text string, fg, bg Color, speed time.Duration) error
	Clear() error
	Close() error
}

// DefaultScrollSpeed is the delay between two scroll steps.
const DefaultScrollSpeed = 100 * time.Millisecond
