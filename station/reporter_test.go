// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package station

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoffholden/sensewx/display"
	"github.com/geoffholden/sensewx/upload"
)

func TestTrend(t *testing.T) {
	assert.Equal(t, display.GlyphArrowUp, Trend(70.0, 71.0))
	assert.Equal(t, display.GlyphArrowDown, Trend(70.0, 69.0))
	assert.Equal(t, display.GlyphBars, Trend(70.0, 70.0))
}

func TestReporterShow(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink, ShowTemperature: true}

	state := r.Show(Reading{TemperatureF: 71.2}, CycleState{LastTempF: 70.0})
	assert.Equal(t, display.GlyphArrowUp, state.Display)
	assert.Equal(t, "71.2°F", state.Message)
	assert.Equal(t, 70.0, state.LastTempF)
	require.Len(t, sink.pixels, 1)
	assert.Equal(t, display.GlyphArrowUp.Pixels(), sink.pixels[0])
	assert.Equal(t, []string{"71.2°F"}, sink.messages)

	r.ShowTemperature = false
	state = r.Show(Reading{TemperatureF: 70.0}, CycleState{LastTempF: 70.0})
	assert.Equal(t, display.GlyphBars, state.Display)
	assert.Len(t, sink.messages, 1)
}

func TestReporterUploadContinuesAfterFailure(t *testing.T) {
	sink := &fakeSink{}
	led := &fakeIndicator{}
	first := &fakeUploader{name: "wunderground", fail: true}
	second := &fakeUploader{name: "private"}
	r := &Reporter{
		Sink:              sink,
		Uploaders:         []upload.Uploader{first, second},
		Indicator:         led,
		DateFormat:        upload.DateNow,
		PressurePrecision: 2,
	}

	reading := Reading{Timestamp: at(10, 0), TemperatureF: 71.2, Humidity: 45, Pressure: 29.92}
	var err error
	assert.NotPanics(t, func() { err = r.Upload(context.Background(), reading) })

	require.Error(t, err)
	var ue *upload.UploadError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "wunderground", ue.Target)

	assert.Len(t, first.payloads, 1)
	require.Len(t, second.payloads, 1)
	assert.Equal(t, 71.2, second.payloads[0].TempF)
	assert.Equal(t, 2, second.payloads[0].PressureDP)
	assert.Equal(t, []string{"ERR 1/2"}, sink.messages)
	assert.Equal(t, 1, sink.clears)
	assert.Equal(t, []bool{false}, led.signals)
}

func TestReporterUploadSuccess(t *testing.T) {
	sink := &fakeSink{}
	led := &fakeIndicator{}
	u := &fakeUploader{name: "wunderground"}
	r := &Reporter{Sink: sink, Uploaders: []upload.Uploader{u}, Indicator: led}

	require.NoError(t, r.Upload(context.Background(), Reading{TemperatureF: 50}))
	assert.Equal(t, []string{"✓ POSTED"}, sink.messages)
	assert.Equal(t, []bool{true}, led.signals)
}

func TestReporterNoTargets(t *testing.T) {
	sink := &fakeSink{}
	r := &Reporter{Sink: sink}
	assert.NoError(t, r.Upload(context.Background(), Reading{}))
	assert.Empty(t, sink.messages)
}

func TestReporterNilSink(t *testing.T) {
	r := &Reporter{Uploaders: []upload.Uploader{&fakeUploader{name: "x"}}}
	assert.NotPanics(t, func() {
		r.Show(Reading{TemperatureF: 1}, CycleState{})
		r.Upload(context.Background(), Reading{})
		r.Restore(CycleState{Display: display.GlyphBars})
	})
	assert.NoError(t, r.Close())
}
