// Copyright © 2018 Geoff Holden <geoff@geoffholden.com>

package upload

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2018, 6, 1, 12, 30, 5, 0, time.UTC)

func testPayload() Payload {
	return Payload{
		Time:       testTime,
		TempF:      71.2,
		Humidity:   45.26,
		Pressure:   29.9213,
		DateFormat: DateNow,
		HumidityDP: 0,
		PressureDP: 2,
	}
}

func TestPayloadValues(t *testing.T) {
	v := testPayload().Values("KXX1", "secret")
	assert.Equal(t, "updateraw", v.Get("action"))
	assert.Equal(t, "KXX1", v.Get("ID"))
	assert.Equal(t, "secret", v.Get("PASSWORD"))
	assert.Equal(t, "now", v.Get("dateutc"))
	assert.Equal(t, "71.2", v.Get("tempf"))
	assert.Equal(t, "45", v.Get("humidity"))
	assert.Equal(t, "29.92", v.Get("baromin"))
}

func TestPayloadValuesRoundHalfAway(t *testing.T) {
	p := testPayload()
	p.Humidity = 44.5
	p.Pressure = 29.25
	p.PressureDP = 1
	v := p.Values("KXX1", "secret")
	assert.Equal(t, "45", v.Get("humidity"))
	assert.Equal(t, "29.3", v.Get("baromin"))

	p.HumidityDP = 1
	p.Humidity = 44.5
	assert.Equal(t, "44.5", p.Values("KXX1", "secret").Get("humidity"))
}

func TestPayloadTimestamp(t *testing.T) {
	p := testPayload()
	p.DateFormat = DateTimestamp
	p.Time = testTime.In(time.FixedZone("EST", -5*3600))
	assert.Equal(t, "2018-06-01 12:30:05", p.DateUTC())
}

func TestTargetValidate(t *testing.T) {
	good := Target{Name: "wu", Kind: KindWunderground, URL: WundergroundURL, StationID: "id", StationKey: "key"}
	assert.NoError(t, good.Validate())

	noKey := good
	noKey.StationKey = ""
	assert.Error(t, noKey.Validate())

	badKind := good
	badKind.Kind = "ftp"
	assert.Error(t, badKind.Validate())

	badURL := good
	badURL.URL = "not a url"
	assert.Error(t, badURL.Validate())

	mqtt := Target{Name: "broker", Kind: KindMQTT, URL: "tcp://localhost:1883"}
	assert.Error(t, mqtt.Validate())
	mqtt.Topic = "/sensewx/reading"
	assert.NoError(t, mqtt.Validate())
}

func TestWundergroundUpload(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		got = r.URL.Query()
		io.WriteString(w, "success\n")
	}))
	defer srv.Close()

	u, err := New(Target{Name: "wu", Kind: KindWunderground, URL: srv.URL, Enabled: true, StationID: "KXX1", StationKey: "secret"}, srv.Client(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "wu", u.Name())
	require.NoError(t, u.Upload(context.Background(), testPayload()))
	assert.Equal(t, "KXX1", got.Get("ID"))
	assert.Equal(t, "71.2", got.Get("tempf"))
	assert.NoError(t, u.Close())
}

func TestWundergroundUnexpectedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "INVALIDPASSWORDID|Password or key and/or id are incorrect\n")
	}))
	defer srv.Close()

	u, err := New(Target{Name: "wu", Kind: KindWunderground, URL: srv.URL, StationID: "KXX1", StationKey: "bad"}, srv.Client(), time.Second)
	require.NoError(t, err)
	assert.NoError(t, u.Upload(context.Background(), testPayload()))
}

func TestPostUpload(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		got = r.PostForm
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	u, err := New(Target{Name: "private", Kind: KindPost, URL: srv.URL, StationID: "KXX1", StationKey: "secret"}, srv.Client(), time.Second)
	require.NoError(t, err)
	require.NoError(t, u.Upload(context.Background(), testPayload()))
	assert.Equal(t, "secret", got.Get("PASSWORD"))
	assert.Equal(t, "29.92", got.Get("baromin"))
}

func TestUploadStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	u, err := New(Target{Name: "private", Kind: KindPost, URL: srv.URL, StationID: "KXX1", StationKey: "secret"}, srv.Client(), time.Second)
	require.NoError(t, err)
	err = u.Upload(context.Background(), testPayload())
	var ue *UploadError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "private", ue.Target)
	assert.Equal(t, http.StatusInternalServerError, ue.Status)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestUploadTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	u, err := New(Target{Name: "wu", Kind: KindWunderground, URL: addr, StationID: "KXX1", StationKey: "secret"}, &http.Client{Timeout: time.Second}, time.Second)
	require.NoError(t, err)
	err = u.Upload(context.Background(), testPayload())
	var ue *UploadError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 0, ue.Status)
}

func TestUploadTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := &http.Client{Timeout: 50 * time.Millisecond}
	u, err := New(Target{Name: "wu", Kind: KindWunderground, URL: srv.URL, StationID: "KXX1", StationKey: "secret"}, client, time.Second)
	require.NoError(t, err)

	start := time.Now()
	err = u.Upload(context.Background(), testPayload())
	var ue *UploadError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "wu", ue.Target)
	assert.Equal(t, 0, ue.Status)
	assert.True(t, time.Since(start) < 5*time.Second)
}

func TestUploadCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "success\n")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, kind := range []string{KindWunderground, KindPost} {
		u, err := New(Target{Name: kind, Kind: kind, URL: srv.URL, StationID: "KXX1", StationKey: "secret"}, srv.Client(), time.Second)
		require.NoError(t, err)
		err = u.Upload(ctx, testPayload())
		var ue *UploadError
		require.True(t, errors.As(err, &ue), kind)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestMQTTUpload(t *testing.T) {
	m := NewMQTT(Target{Name: "broker", Kind: KindMQTT, URL: "tcp://localhost:1883", Topic: "/sensewx/reading", StationID: "KXX1"}, time.Second)
	var topic string
	var msg Message
	m.publish = func(tp string, payload []byte) error {
		topic = tp
		return json.Unmarshal(payload, &msg)
	}
	require.NoError(t, m.Upload(context.Background(), testPayload()))
	assert.Equal(t, "/sensewx/reading", topic)
	assert.Equal(t, "KXX1", msg.Station)
	assert.Equal(t, 71.2, msg.Temperature)
	assert.True(t, testTime.Equal(msg.Time))

	m.publish = func(string, []byte) error { return errors.New("broker down") }
	err := m.Upload(context.Background(), testPayload())
	var ue *UploadError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "broker", ue.Target)
	assert.NoError(t, m.Close())
}

func TestNewInvalid(t *testing.T) {
	_, err := New(Target{Name: "x", Kind: "ftp", URL: "ftp://host"}, http.DefaultClient, time.Second)
	assert.Error(t, err)
}
