// Copyright © 2024 Geoff Holden <geoff@geoffholden.com>

package display

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const senseHATName = "RPi-Sense FB"

// Framebuffer is the Sense HAT LED matrix exposed by the rpisense-fb kernel
// driver as a 8x8 RGB565 framebuffer.
type Framebuffer struct {
	dev      io.WriterAt
	closer   io.Closer
	rotation int
	lowLight bool
	sleep    func(time.Duration)
}

// FindSenseHAT returns the /dev/fbN device of the Sense HAT.
func FindSenseHAT() (string, error) {
	names, err := filepath.Glob("/sys/class/graphics/fb*/name")
	if err != nil {
		return "", err
	}
	for _, name := range names {
		b, err := os.ReadFile(name)
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(b)) == senseHATName {
			return filepath.Join("/dev", filepath.Base(filepath.Dir(name))), nil
		}
	}
	return "", fmt.Errorf("no %q framebuffer found", senseHATName)
}

// OpenFramebuffer opens the Sense HAT framebuffer. An empty path looks the
// device up by name.
func OpenFramebuffer(path string, rotation int, lowLight bool) (*Framebuffer, error) {
	if path == "" {
		var err error
		if path, err = FindSenseHAT(); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, err
	}
	fb := NewFramebuffer(f, rotation, lowLight)
	fb.closer = f
	return fb, nil
}

func NewFramebuffer(dev io.WriterAt, rotation int, lowLight bool) *Framebuffer {
	return &Framebuffer{
		dev:      dev,
		rotation: rotation,
		lowLight: lowLight,
		sleep:    time.Sleep,
	}
}

func (f *Framebuffer) SetPixels(p Pixels) error {
	_, err := f.dev.WriteAt(encode(rotate(p, f.rotation), f.lowLight), 0)
	return err
}

func (f *Framebuffer) ShowMessage(text string, fg, bg Color, speed time.Duration) error {
	if speed <= 0 {
		speed = DefaultScrollSpeed
	}
	for _, frame := range frames(text, fg, bg) {
		if err := f.SetPixels(frame); err != nil {
			return err
		}
		f.sleep(speed)
	}
	return nil
}

func (f *Framebuffer) Clear() error {
	return f.SetPixels(Pixels{})
}

func (f *Framebuffer) Close() error {
	err := f.Clear()
	if f.closer != nil {
		if cerr := f.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func rgb565(c Color, lowLight bool) uint16 {
	if lowLight {
		// quarter brightness
		c = Color{c.R >> 2, c.G >> 2, c.B >> 2}
	}
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

func encode(p Pixels, lowLight bool) []byte {
	buf := make([]byte, len(p)*2)
	for i, c := range p {
		binary.LittleEndian.PutUint16(buf[i*2:], rgb565(c, lowLight))
	}
	return buf
}

// rotate turns the frame clockwise by 0, 90, 180 or 270 degrees.
func rotate(p Pixels, degrees int) Pixels {
	var q Pixels
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := p[y*8+x]
			switch degrees {
			case 90:
				q[x*8+(7-y)] = c
			case 180:
				q[(7-y)*8+(7-x)] = c
			case 270:
				q[(7-x)*8+y] = c
			default:
				q[y*8+x] = c
			}
		}
	}
	return q
}
