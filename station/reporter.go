// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package station

import (
	"context"
	"errors"
	"strconv"
	"time"

	jww "github.com/spf13/jwalterweatherman"

	"github.com/geoffholden/sensewx/display"
	"github.com/geoffholden/sensewx/upload"
)

// Indicator reports the outcome of an upload cycle, e.g. a status LED.
type Indicator interface {
	Signal(ok bool) error
}

// Reporter shows readings on the display and sends them to the uploaders.
type Reporter struct {
	Sink            display.Sink
	Uploaders       []upload.Uploader
	Indicator       Indicator
	ShowTemperature bool
	ScrollSpeed     time.Duration

	DateFormat        string
	HumidityPrecision int
	PressurePrecision int
}

// Trend compares the current temperature with the previous upload.
func Trend(prev, cur float64) display.Glyph {
	switch {
	case cur > prev:
		return display.GlyphArrowUp
	case cur < prev:
		return display.GlyphArrowDown
	}
	return display.GlyphBars
}

// Show scrolls the temperature when enabled and draws the trend glyph.
func (r *Reporter) Show(reading Reading, state CycleState) CycleState {
	if r.ShowTemperature {
		msg := strconv.FormatFloat(reading.TemperatureF, 'f', 1, 64) + "°F"
		r.message(msg, display.White, display.Empty)
		state.Message = msg
	}
	state.Display = Trend(state.LastTempF, reading.TemperatureF)
	r.draw(state.Display)
	return state
}

// Restore redraws the glyph held in state, after a banner.
func (r *Reporter) Restore(state CycleState) {
	r.draw(state.Display)
}

func (r *Reporter) Payload(reading Reading) upload.Payload {
	return upload.Payload{
		Time:       reading.Timestamp,
		TempF:      reading.TemperatureF,
		Humidity:   reading.Humidity,
		Pressure:   reading.Pressure,
		DateFormat: r.DateFormat,
		HumidityDP: r.HumidityPrecision,
		PressureDP: r.PressurePrecision,
	}
}

// Upload sends the reading once to every uploader in order. A failing
// uploader is logged and does not stop the others. The returned error joins
// every failure.
func (r *Reporter) Upload(ctx context.Context, reading Reading) error {
	if len(r.Uploaders) == 0 {
		jww.INFO.Println("No upload targets enabled, skipping upload")
		return nil
	}

	p := r.Payload(reading)
	var errs []error
	for _, u := range r.Uploaders {
		jww.INFO.Println("Uploading data to", u.Name())
		if err := u.Upload(ctx, p); err != nil {
			var ue *upload.UploadError
			if errors.As(err, &ue) {
				jww.ERROR.Println(ue)
			} else {
				jww.ERROR.Println(u.Name(), err)
			}
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		r.message("✓ POSTED", display.Teal, display.Forest)
	} else {
		r.message("ERR "+strconv.Itoa(len(errs))+"/"+strconv.Itoa(len(r.Uploaders)), display.Green, display.Blue)
	}
	if r.Sink != nil {
		if err := r.Sink.Clear(); err != nil {
			jww.WARN.Println("display:", err)
		}
	}
	if r.Indicator != nil {
		if err := r.Indicator.Signal(len(errs) == 0); err != nil {
			jww.WARN.Println("status led:", err)
		}
	}
	return errors.Join(errs...)
}

func (r *Reporter) message(text string, fg, bg display.Color) {
	if r.Sink == nil {
		return
	}
	speed := r.ScrollSpeed
	if speed <= 0 {
		speed = display.DefaultScrollSpeed
	}
	if err := r.Sink.ShowMessage(text, fg, bg, speed); err != nil {
		jww.WARN.Println("display:", err)
	}
}

func (r *Reporter) draw(g display.Glyph) {
	if r.Sink == nil || g == display.GlyphNone {
		return
	}
	if err := r.Sink.SetPixels(g.Pixels()); err != nil {
		jww.WARN.Println("display:", err)
	}
}

func (r *Reporter) Close() error {
	var errs []error
	for _, u := range r.Uploaders {
		if err := u.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if r.Sink != nil {
		if err := r.Sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
