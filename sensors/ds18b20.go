// Copyright © 2024 Geoff Holden <geoff@geoffholden.com>

package sensors

import (
	"context"
	"fmt"

	"github.com/yryz/ds18b20"
)

// DS18B20 is a 1-wire temperature probe, used as an extra ambient source
// when the board is mounted close to the CPU.
type DS18B20 struct {
	ID string
}

// NewDS18B20 checks that the probe is present on the 1-wire bus. An empty
// id picks the first probe found.
func NewDS18B20(id string) (*DS18B20, error) {
	ids, err := ds18b20.Sensors()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("ds18b20: no probes on the 1-wire bus")
	}
	if id == "" {
		return &DS18B20{ID: ids[0]}, nil
	}
	for _, found := range ids {
		if found == id {
			return &DS18B20{ID: id}, nil
		}
	}
	return nil, fmt.Errorf("ds18b20: probe %s not found", id)
}

func (d *DS18B20) Name() string {
	return "ds18b20:" + d.ID
}

func (d *DS18B20) Temperature(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &SensorError{Op: "read " + d.Name(), Err: err}
	}
	t, err := ds18b20.Temperature(d.ID)
	if err != nil {
		return 0, &SensorError{Op: "read " + d.Name(), Err: err}
	}
	return t, nil
}
