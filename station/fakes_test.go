// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package station

import (
	"context"
	"errors"
	"time"

	"github.com/geoffholden/sensewx/display"
	"github.com/geoffholden/sensewx/sensors"
	"github.com/geoffholden/sensewx/upload"
)

type fakeBoard struct {
	sample sensors.BoardSample
	err    error
	reads  int
	closed bool
}

func (b *fakeBoard) Read(ctx context.Context) (sensors.BoardSample, error) {
	b.reads++
	return b.sample, b.err
}

func (b *fakeBoard) Close() error {
	b.closed = true
	return nil
}

type fakeProbe struct {
	name string
	temp float64
	err  error
}

func (p *fakeProbe) Name() string {
	return p.name
}

func (p *fakeProbe) Temperature(ctx context.Context) (float64, error) {
	return p.temp, p.err
}

type fakeSink struct {
	pixels   []display.Pixels
	messages []string
	clears   int
	closed   bool
}

func (s *fakeSink) SetPixels(p display.Pixels) error {
	s.pixels = append(s.pixels, p)
	return nil
}

func (s *fakeSink) ShowMessage(text string, fg, bg display.Color, speed time.Duration) error {
	s.messages = append(s.messages, text)
	return nil
}

func (s *fakeSink) Clear() error {
	s.clears++
	return nil
}

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}

type fakeUploader struct {
	name     string
	fail     bool
	payloads []upload.Payload
}

func (u *fakeUploader) Name() string {
	return u.name
}

func (u *fakeUploader) Upload(ctx context.Context, p upload.Payload) error {
	u.payloads = append(u.payloads, p)
	if u.fail {
		return &upload.UploadError{Target: u.name, Status: 500, Err: errors.New("internal server error")}
	}
	return nil
}

func (u *fakeUploader) Close() error {
	return nil
}

type fakeIndicator struct {
	signals []bool
}

func (i *fakeIndicator) Signal(ok bool) error {
	i.signals = append(i.signals, ok)
	return nil
}
