// Copyright © 2024 Geoff Holden <geoff@geoffholden.com>

package sensors

import (
	"context"
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Astro Pi Sense HAT: HTS221 humidity/temperature and LPS25H
// pressure/temperature on the same I2C bus.
const (
	hts221Address = 0x5f
	lps25hAddress = 0x5c

	regWhoAmI   = 0x0f
	regCtrl1    = 0x20
	regOutput   = 0x28
	regCalib    = 0x30
	autoIncr    = 0x80
	hts221WhoAm = 0xbc
	lps25hWhoAm = 0xbd
)

type SenseHAT struct {
	bus i2c.BusCloser
	hts *i2c.Dev
	lps *i2c.Dev
	cal hts221Calibration
}

func init() {
	RegisterBoard("sensehat", openSenseHAT)
}

func openSenseHAT(opts Options) (SensorSource, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	bus, err := i2creg.Open(opts.I2CBus)
	if err != nil {
		return nil, err
	}

	s := &SenseHAT{
		bus: bus,
		hts: &i2c.Dev{Bus: bus, Addr: hts221Address},
		lps: &i2c.Dev{Bus: bus, Addr: lps25hAddress},
	}
	if err := s.init(); err != nil {
		bus.Close()
		return nil, err
	}
	return s, nil
}

func (s *SenseHAT) init() error {
	if err := checkWhoAmI(s.hts, hts221WhoAm); err != nil {
		return fmt.Errorf("hts221: %w", err)
	}
	if err := checkWhoAmI(s.lps, lps25hWhoAm); err != nil {
		return fmt.Errorf("lps25h: %w", err)
	}

	// power on, block data update, 1 Hz
	if err := s.hts.Tx([]byte{regCtrl1, 0x85}, nil); err != nil {
		return fmt.Errorf("hts221: %w", err)
	}
	// power on, 1 Hz
	if err := s.lps.Tx([]byte{regCtrl1, 0x90}, nil); err != nil {
		return fmt.Errorf("lps25h: %w", err)
	}

	var raw [16]byte
	if err := s.hts.Tx([]byte{regCalib | autoIncr}, raw[:]); err != nil {
		return fmt.Errorf("hts221 calibration: %w", err)
	}
	s.cal = newHTS221Calibration(raw)
	return nil
}

func checkWhoAmI(d *i2c.Dev, want byte) error {
	var id [1]byte
	if err := d.Tx([]byte{regWhoAmI}, id[:]); err != nil {
		return err
	}
	if id[0] != want {
		return fmt.Errorf("unexpected device id %#x, want %#x", id[0], want)
	}
	return nil
}

// Read returns the HTS221 temperature first and the LPS25H temperature
// second.
func (s *SenseHAT) Read(ctx context.Context) (BoardSample, error) {
	if err := ctx.Err(); err != nil {
		return BoardSample{}, &SensorError{Op: "read sensehat", Err: err}
	}

	var hout [4]byte
	if err := s.hts.Tx([]byte{regOutput | autoIncr}, hout[:]); err != nil {
		return BoardSample{}, &SensorError{Op: "read hts221", Err: err}
	}
	var lout [5]byte
	if err := s.lps.Tx([]byte{regOutput | autoIncr}, lout[:]); err != nil {
		return BoardSample{}, &SensorError{Op: "read lps25h", Err: err}
	}

	humidity := s.cal.humidity(int16(binary.LittleEndian.Uint16(hout[0:2])))
	htsTemp := s.cal.temperature(int16(binary.LittleEndian.Uint16(hout[2:4])))
	pressure, lpsTemp := lps25hConvert(lout)

	return BoardSample{
		Ambient:  []float64{htsTemp, lpsTemp},
		Humidity: humidity,
		Pressure: pressure,
	}, nil
}

func (s *SenseHAT) Close() error {
	// power down both sensors, ignore errors on the way out
	s.hts.Tx([]byte{regCtrl1, 0x00}, nil)
	s.lps.Tx([]byte{regCtrl1, 0x00}, nil)
	return s.bus.Close()
}

// hts221Calibration holds the factory calibration points of the HTS221.
// Outputs are linear interpolations between them.
type hts221Calibration struct {
	h0, h1       float64
	t0, t1       float64
	h0out, h1out float64
	t0out, t1out float64
}

// newHTS221Calibration decodes registers 0x30 to 0x3f.
func newHTS221Calibration(raw [16]byte) hts221Calibration {
	le := binary.LittleEndian
	msb := uint16(raw[5])
	return hts221Calibration{
		h0:    float64(raw[0]) / 2,
		h1:    float64(raw[1]) / 2,
		t0:    float64(uint16(raw[2])|(msb&0x03)<<8) / 8,
		t1:    float64(uint16(raw[3])|(msb&0x0c)<<6) / 8,
		h0out: float64(int16(le.Uint16(raw[6:8]))),
		h1out: float64(int16(le.Uint16(raw[10:12]))),
		t0out: float64(int16(le.Uint16(raw[12:14]))),
		t1out: float64(int16(le.Uint16(raw[14:16]))),
	}
}

func (c hts221Calibration) humidity(raw int16) float64 {
	h := c.h0 + (float64(raw)-c.h0out)*(c.h1-c.h0)/(c.h1out-c.h0out)
	switch {
	case h < 0:
		return 0
	case h > 100:
		return 100
	}
	return h
}

func (c hts221Calibration) temperature(raw int16) float64 {
	return c.t0 + (float64(raw)-c.t0out)*(c.t1-c.t0)/(c.t1out-c.t0out)
}

// lps25hConvert decodes PRESS_OUT_XL..TEMP_OUT_H into hPa and °C.
func lps25hConvert(out [5]byte) (float64, float64) {
	raw := int32(uint32(out[0]) | uint32(out[1])<<8 | uint32(out[2])<<16)
	if raw&0x800000 != 0 {
		raw -= 1 << 24
	}
	temp := int16(binary.LittleEndian.Uint16(out[3:5]))
	return float64(raw) / 4096, 42.5 + float64(temp)/480
}
