// Copyright © 2018 Geoff Holden <geoff@geoffholden.com>

// Package upload sends readings to remote endpoints using the Weather
// Underground PWS field set.
package upload

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/geoffholden/sensewx/units"
)

const WundergroundURL = "https://weatherstation.wunderground.com/weatherstation/updateweatherstation.php"

const (
	KindWunderground = "wunderground"
	KindPost         = "post"
	KindMQTT         = "mqtt"
)

const (
	DateNow       = "now"
	DateTimestamp = "timestamp"
)

// Payload is one reading ready to be uploaded.
type Payload struct {
	Time       time.Time
	TempF      float64
	Humidity   float64
	Pressure   float64 // inHg
	DateFormat string
	HumidityDP int
	PressureDP int
}

func (p Payload) DateUTC() string {
	if p.DateFormat == DateTimestamp {
		return p.Time.UTC().Format("2006-01-02 15:04:05")
	}
	return DateNow
}

// Values returns the PWS query fields for the given station credentials.
// Halves round away from zero in every field.
func (p Payload) Values(id, key string) url.Values {
	v := url.Values{}
	v.Set("action", "updateraw")
	v.Set("ID", id)
	v.Set("PASSWORD", key)
	v.Set("dateutc", p.DateUTC())
	v.Set("tempf", strconv.FormatFloat(units.Round(p.TempF, 1), 'f', 1, 64))
	v.Set("humidity", strconv.FormatFloat(units.Round(p.Humidity, p.HumidityDP), 'f', p.HumidityDP, 64))
	v.Set("baromin", strconv.FormatFloat(units.Round(p.Pressure, p.PressureDP), 'f', p.PressureDP, 64))
	return v
}

// Target is one configured endpoint.
type Target struct {
	Name       string `mapstructure:"name"`
	Kind       string `mapstructure:"kind"`
	URL        string `mapstructure:"url"`
	Enabled    bool   `mapstructure:"enabled"`
	StationID  string `mapstructure:"station_id"`
	StationKey string `mapstructure:"station_key"`
	Topic      string `mapstructure:"topic"`
}

func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("target without a name")
	}
	switch t.Kind {
	case KindWunderground, KindPost:
		if t.StationID == "" || t.StationKey == "" {
			return fmt.Errorf("target %s: missing station id or key", t.Name)
		}
	case KindMQTT:
		if t.Topic == "" {
			return fmt.Errorf("target %s: missing topic", t.Name)
		}
	default:
		return fmt.Errorf("target %s: unknown kind %q", t.Name, t.Kind)
	}
	u, err := url.Parse(t.URL)
	if err != nil {
		return fmt.Errorf("target %s: %w", t.Name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("target %s: invalid url %q", t.Name, t.URL)
	}
	return nil
}

// Uploader sends a payload to one endpoint. Upload is attempted once, a
// failure is reported as *UploadError.
type Uploader interface {
	Name() string
	Upload(ctx context.Context, p Payload) error
	Close() error
}

// New builds the uploader for the target kind.
func New(t Target, client *http.Client, timeout time.Duration) (Uploader, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	switch t.Kind {
	case KindWunderground:
		return &Wunderground{target: t, client: client}, nil
	case KindPost:
		return &Post{target: t, client: client}, nil
	case KindMQTT:
		return NewMQTT(t, timeout), nil
	}
	return nil, fmt.Errorf("target %s: unknown kind %q", t.Name, t.Kind)
}

// UploadError is a failed upload to one target. Status is the HTTP status
// code, 0 when the request did not complete.
type UploadError struct {
	Target string
	Status int
	Err    error
}

func (e *UploadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upload %s: HTTP %d: %v", e.Target, e.Status, e.Err)
	}
	return fmt.Sprintf("upload %s: %v", e.Target, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
