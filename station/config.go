// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package station

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/geoffholden/sensewx/sensors"
	"github.com/geoffholden/sensewx/upload"
)

type Config struct {
	Board       string        `mapstructure:"board"`
	I2CBus      string        `mapstructure:"i2c_bus"`
	I2CAddress  uint16        `mapstructure:"i2c_address"`
	SerialPort  string        `mapstructure:"serial_port"`
	SerialBaud  int           `mapstructure:"serial_baud"`
	Elevation   int           `mapstructure:"elevation"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	CPUProbe      string  `mapstructure:"cpu_probe"`
	CPUThermalKey string  `mapstructure:"cpu_thermal_key"`
	AmbientProbe  bool    `mapstructure:"ambient_probe"`
	AmbientID     string  `mapstructure:"ambient_probe_id"`
	CompensateCPU bool    `mapstructure:"compensate_cpu_heat"`
	HeatFactor    float64 `mapstructure:"cpu_heat_factor"`
	Smooth        bool    `mapstructure:"smooth"`

	Display         string        `mapstructure:"display"`
	Rotation        int           `mapstructure:"rotation"`
	LowLight        bool          `mapstructure:"low_light"`
	ShowTemperature bool          `mapstructure:"show_temperature"`
	ScrollSpeed     time.Duration `mapstructure:"scroll_speed"`
	StatusLEDPin    int           `mapstructure:"status_led_pin"`

	RefreshSeconds      int `mapstructure:"display_refresh_seconds"`
	MeasurementInterval int `mapstructure:"measurement_interval"`

	StationID         string          `mapstructure:"station_id"`
	StationKey        string          `mapstructure:"station_key"`
	DateFormat        string          `mapstructure:"date_format"`
	HumidityPrecision int             `mapstructure:"humidity_precision"`
	PressurePrecision int             `mapstructure:"pressure_precision"`
	UploadTimeout     time.Duration   `mapstructure:"upload_timeout"`
	Targets           []upload.Target `mapstructure:"targets"`
}

func NewConfig() *Config {
	var c Config
	c.Board = "sensehat"
	c.SerialBaud = 9600
	c.ReadTimeout = 10 * time.Second

	c.CPUProbe = "vcgencmd"
	c.CPUThermalKey = "cpu_thermal"
	c.CompensateCPU = true
	c.HeatFactor = 1.5
	c.Smooth = true

	c.Display = "sensehat"
	c.ShowTemperature = true
	c.ScrollSpeed = 100 * time.Millisecond

	c.RefreshSeconds = 5
	c.MeasurementInterval = 1

	c.DateFormat = upload.DateNow
	c.HumidityPrecision = 0
	c.PressurePrecision = 1
	c.UploadTimeout = 30 * time.Second
	c.Targets = DefaultTargets()

	return &c
}

// DefaultTargets is Weather Underground enabled and a private POST
// endpoint disabled until a URL is configured.
func DefaultTargets() []upload.Target {
	return []upload.Target{
		{Name: "wunderground", Kind: upload.KindWunderground, URL: upload.WundergroundURL, Enabled: true},
		{Name: "private", Kind: upload.KindPost, Enabled: false},
	}
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("board", c.Board)
	v.SetDefault("i2c_bus", c.I2CBus)
	v.SetDefault("i2c_address", c.I2CAddress)
	v.SetDefault("serial_port", c.SerialPort)
	v.SetDefault("serial_baud", c.SerialBaud)
	v.SetDefault("elevation", c.Elevation)
	v.SetDefault("read_timeout", c.ReadTimeout)
	v.SetDefault("cpu_probe", c.CPUProbe)
	v.SetDefault("cpu_thermal_key", c.CPUThermalKey)
	v.SetDefault("ambient_probe", c.AmbientProbe)
	v.SetDefault("ambient_probe_id", c.AmbientID)
	v.SetDefault("compensate_cpu_heat", c.CompensateCPU)
	v.SetDefault("cpu_heat_factor", c.HeatFactor)
	v.SetDefault("smooth", c.Smooth)
	v.SetDefault("display", c.Display)
	v.SetDefault("rotation", c.Rotation)
	v.SetDefault("low_light", c.LowLight)
	v.SetDefault("show_temperature", c.ShowTemperature)
	v.SetDefault("scroll_speed", c.ScrollSpeed)
	v.SetDefault("status_led_pin", c.StatusLEDPin)
	v.SetDefault("display_refresh_seconds", c.RefreshSeconds)
	v.SetDefault("measurement_interval", c.MeasurementInterval)
	v.SetDefault("station_id", c.StationID)
	v.SetDefault("station_key", c.StationKey)
	v.SetDefault("date_format", c.DateFormat)
	v.SetDefault("humidity_precision", c.HumidityPrecision)
	v.SetDefault("pressure_precision", c.PressurePrecision)
	v.SetDefault("upload_timeout", c.UploadTimeout)
}

// LoadConfig resolves the configuration from v, validates it and fills in
// the target credentials from the station wide id and key.
func LoadConfig(v *viper.Viper) (*Config, error) {
	c := NewConfig()
	setDefaults(v, c)
	if v.IsSet("targets") {
		c.Targets = nil
	}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c.fillCredentials()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) fillCredentials() {
	for i := range c.Targets {
		t := &c.Targets[i]
		if t.StationID == "" {
			t.StationID = c.StationID
		}
		if t.StationKey == "" {
			t.StationKey = c.StationKey
		}
	}
}

// EnabledTargets returns the enabled targets in configuration order.
func (c *Config) EnabledTargets() []upload.Target {
	var out []upload.Target
	for _, t := range c.Targets {
		if t.Enabled {
			out = append(out, t)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.MeasurementInterval < 1 || c.MeasurementInterval > 60 {
		return fmt.Errorf("measurement_interval must be between 1 and 60, got %d", c.MeasurementInterval)
	}
	if c.RefreshSeconds < 0 || c.RefreshSeconds > 60 {
		return fmt.Errorf("display_refresh_seconds must be between 0 and 60, got %d", c.RefreshSeconds)
	}
	if c.HeatFactor <= 0 {
		return fmt.Errorf("cpu_heat_factor must be positive, got %g", c.HeatFactor)
	}
	if c.DateFormat != upload.DateNow && c.DateFormat != upload.DateTimestamp {
		return fmt.Errorf("date_format must be %q or %q, got %q", upload.DateNow, upload.DateTimestamp, c.DateFormat)
	}
	if c.HumidityPrecision < 0 || c.HumidityPrecision > 4 {
		return fmt.Errorf("humidity_precision must be between 0 and 4, got %d", c.HumidityPrecision)
	}
	if c.PressurePrecision < 0 || c.PressurePrecision > 4 {
		return fmt.Errorf("pressure_precision must be between 0 and 4, got %d", c.PressurePrecision)
	}
	switch c.Rotation {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("rotation must be one of 0, 90, 180, 270, got %d", c.Rotation)
	}
	if !knownBoard(c.Board) {
		return fmt.Errorf("unknown board %q, one of [%s]", c.Board, strings.Join(sensors.Boards(), ", "))
	}
	switch c.CPUProbe {
	case "vcgencmd", "thermal":
	default:
		return fmt.Errorf("unknown cpu_probe %q", c.CPUProbe)
	}
	if c.UploadTimeout <= 0 {
		return fmt.Errorf("upload_timeout must be positive, got %s", c.UploadTimeout)
	}
	for _, t := range c.EnabledTargets() {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func knownBoard(name string) bool {
	for _, b := range sensors.Boards() {
		if b == name {
			return true
		}
	}
	return false
}
