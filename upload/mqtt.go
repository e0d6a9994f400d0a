// Copyright © 2018 Geoff Holden <geoff@geoffholden.com>

package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	jww "github.com/spf13/jwalterweatherman"
)

// Message is the JSON document published to the broker.
type Message struct {
	Station     string    `json:"station"`
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature_f"`
	Humidity    float64   `json:"humidity"`
	Pressure    float64   `json:"pressure_inhg"`
}

// MQTTUploader publishes the reading to a broker topic. The connection is made on
// the first upload and kept for the life of the process.
type MQTTUploader struct {
	target  Target
	timeout time.Duration
	client  MQTT.Client
	publish func(topic string, payload []byte) error
}

func NewMQTT(t Target, timeout time.Duration) *MQTTUploader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	m := &MQTTUploader{target: t, timeout: timeout}
	m.publish = m.brokerPublish
	return m
}

func (m *MQTTUploader) Name() string {
	return m.target.Name
}

func (m *MQTTUploader) Upload(ctx context.Context, p Payload) error {
	if err := ctx.Err(); err != nil {
		return &UploadError{Target: m.target.Name, Err: err}
	}
	buf, err := json.Marshal(Message{
		Station:     m.target.StationID,
		Time:        p.Time.UTC(),
		Temperature: p.TempF,
		Humidity:    p.Humidity,
		Pressure:    p.Pressure,
	})
	if err != nil {
		return &UploadError{Target: m.target.Name, Err: err}
	}
	if err := m.publish(m.target.Topic, buf); err != nil {
		return &UploadError{Target: m.target.Name, Err: err}
	}
	jww.INFO.Printf("Publishing %s -> %s\n", m.target.Topic, buf)
	return nil
}

func (m *MQTTUploader) connect() error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	clientid := fmt.Sprintf("sensewx-%s-%s-%d", m.target.Name, hostname, os.Getpid())
	opts := MQTT.NewClientOptions().AddBroker(m.target.URL).SetClientID(clientid).SetCleanSession(true)
	opts.SetConnectTimeout(m.timeout)
	if u, err := url.Parse(m.target.URL); err == nil && u.User != nil {
		opts.SetUsername(u.User.Username())
		if pw, ok := u.User.Password(); ok {
			opts.SetPassword(pw)
		}
	}
	client := MQTT.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(m.timeout) {
		return errors.New("connect timed out")
	}
	if token.Error() != nil {
		return token.Error()
	}
	m.client = client
	return nil
}

func (m *MQTTUploader) brokerPublish(topic string, payload []byte) error {
	if m.client == nil || !m.client.IsConnected() {
		if err := m.connect(); err != nil {
			return err
		}
	}
	token := m.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(m.timeout) {
		return errors.New("publish timed out")
	}
	return token.Error()
}

func (m *MQTTUploader) Close() error {
	if m.client != nil && m.client.IsConnected() {
		m.client.Disconnect(250)
	}
	return nil
}
