// Copyright © 2024 Geoff Holden <geoff@geoffholden.com>

package sensors

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	psensors "github.com/shirou/gopsutil/v4/sensors"
)

// VCGenCmd asks the VideoCore firmware for the SoC temperature.
type VCGenCmd struct {
	Path string
}

func (v VCGenCmd) Name() string {
	return "vcgencmd"
}

func (v VCGenCmd) Temperature(ctx context.Context) (float64, error) {
	path := v.Path
	if path == "" {
		path = "vcgencmd"
	}
	out, err := exec.CommandContext(ctx, path, "measure_temp").Output()
	if err != nil {
		return 0, &SensorError{Op: "read cpu temperature", Err: err}
	}
	t, err := ParseVCGenCmd(string(out))
	if err != nil {
		return 0, &SensorError{Op: "read cpu temperature", Err: err}
	}
	return t, nil
}

// ParseVCGenCmd parses "temp=48.3'C".
func ParseVCGenCmd(out string) (float64, error) {
	s := strings.TrimSpace(out)
	s = strings.TrimPrefix(s, "temp=")
	s = strings.TrimSuffix(s, "'C")
	t, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected vcgencmd output %q", strings.TrimSpace(out))
	}
	return t, nil
}

// Thermal reads the kernel thermal sensors and picks the first one whose
// key starts with Key.
type Thermal struct {
	Key string

	temperatures func(ctx context.Context) ([]psensors.TemperatureStat, error)
}

func (t Thermal) Name() string {
	return "thermal:" + t.Key
}

func (t Thermal) Temperature(ctx context.Context) (float64, error) {
	read := t.temperatures
	if read == nil {
		read = psensors.TemperaturesWithContext
	}
	stats, err := read(ctx)
	if err != nil && len(stats) == 0 {
		return 0, &SensorError{Op: "read " + t.Name(), Err: err}
	}
	for _, stat := range stats {
		if strings.HasPrefix(stat.SensorKey, t.Key) {
			return stat.Temperature, nil
		}
	}
	return 0, &SensorError{Op: "read " + t.Name(), Err: fmt.Errorf("no thermal sensor matching %q", t.Key)}
}

// OpenCPUProbe returns the CPU probe by name: vcgencmd or thermal.
func OpenCPUProbe(name, key string) (Probe, error) {
	switch name {
	case "vcgencmd":
		return VCGenCmd{}, nil
	case "thermal":
		if key == "" {
			key = "cpu_thermal"
		}
		return Thermal{Key: key}, nil
	}
	return nil, fmt.Errorf("unknown cpu probe %q", name)
}
