// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package sensors

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	jww "github.com/spf13/jwalterweatherman"
	"github.com/tarm/serial"
)

// WxShield reads the serial stream of the WSDL WxShield for Arduino. The
// SHT sensor provides the first ambient temperature and the humidity, the
// BMP the second ambient temperature and the pressure.
type WxShield struct {
	port    io.ReadCloser
	reader  *bufio.Reader
	timeout time.Duration
	now     func() time.Time

	sht SHT
	bmp BMP
}

func init() {
	RegisterBoard("wxshield", openWxShield)
}

func openWxShield(opts Options) (SensorSource, error) {
	if opts.SerialPort == "" {
		return nil, errors.New("wxshield: no serial port configured")
	}
	c := &serial.Config{
		Name:        opts.SerialPort,
		Baud:        opts.SerialBaud,
		ReadTimeout: time.Second,
	}
	s, err := serial.OpenPort(c)
	if err != nil {
		return nil, err
	}
	s.Flush()
	return NewWxShield(s, opts), nil
}

// NewWxShield wraps an already opened stream.
func NewWxShield(port io.ReadCloser, opts Options) *WxShield {
	timeout := opts.ReadTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WxShield{
		port:    port,
		reader:  bufio.NewReader(port),
		timeout: timeout,
		now:     time.Now,
		bmp:     BMP{Elevation: opts.Elevation},
	}
}

// Read consumes lines until both an SHT and a BMP sample have been seen.
func (w *WxShield) Read(ctx context.Context) (BoardSample, error) {
	deadline := w.now().Add(w.timeout)
	var haveSHT, haveBMP bool
	var bmpTemp, bmpPres float64

	for !haveSHT || !haveBMP {
		if err := ctx.Err(); err != nil {
			return BoardSample{}, &SensorError{Op: "read wxshield", Err: err}
		}
		if w.now().After(deadline) {
			return BoardSample{}, &SensorError{Op: "read wxshield", Err: fmt.Errorf("no complete sample within %v", w.timeout)}
		}

		line, err := w.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.ErrNoProgress) {
				continue
			}
			if line == "" {
				return BoardSample{}, &SensorError{Op: "read wxshield", Err: err}
			}
		}

		fields := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(fields) != 2 {
			continue
		}
		key, value := fields[0], fields[1]
		switch {
		case key == "SHT" || key == "DHT":
			if err := w.sht.Parse(value); err != nil {
				jww.WARN.Println(err)
				continue
			}
			haveSHT = true
		case strings.HasPrefix(key, "BM"):
			t, p, ok, err := w.bmp.Parse(key, value)
			if err != nil {
				if !errors.Is(err, errNotCalibrated) {
					jww.WARN.Println(err)
				}
				continue
			}
			if ok {
				bmpTemp, bmpPres, haveBMP = t, p, true
			}
		default:
			jww.DEBUG.Println("wxshield:", line)
		}
	}

	return BoardSample{
		Ambient:  []float64{w.sht.Temperature, bmpTemp},
		Humidity: w.sht.Humidity,
		Pressure: bmpPres,
	}, nil
}

func (w *WxShield) Close() error {
	return w.port.Close()
}
