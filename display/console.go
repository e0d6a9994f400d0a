// Copyright © 2024 Geoff Holden <geoff@geoffholden.com>

package display

import (
	"fmt"
	"strings"
	"time"

	jww "github.com/spf13/jwalterweatherman"
)

// Console logs what would be shown, for stations without a LED matrix.
type Console struct{}

func (Console) SetPixels(p Pixels) error {
	jww.DEBUG.Println("display:\n" + Render(p))
	return nil
}

func (Console) ShowMessage(text string, fg, bg Color, speed time.Duration) error {
	jww.INFO.Println("display:", text)
	return nil
}

func (Console) Clear() error {
	return nil
}

func (Console) Close() error {
	return nil
}

// Render draws a frame as text, one line per row.
func Render(p Pixels) string {
	var b strings.Builder
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if p[y*8+x] == Empty {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		if y < 7 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Discard drops everything.
type Discard struct{}

func (Discard) SetPixels(Pixels) error { return nil }

func (Discard) ShowMessage(string, Color, Color, time.Duration) error { return nil }

func (Discard) Clear() error { return nil }

func (Discard) Close() error { return nil }

// Open returns the sink by name: sensehat, console or none.
func Open(name string, rotation int, lowLight bool) (Sink, error) {
	switch name {
	case "sensehat":
		fb, err := OpenFramebuffer("", rotation, lowLight)
		if err != nil {
			return nil, err
		}
		return fb, nil
	case "console":
		return Console{}, nil
	case "none", "":
		return Discard{}, nil
	}
	return nil, fmt.Errorf("unknown display %q", name)
}
