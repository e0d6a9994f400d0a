// Copyright © 2024 Geoff Holden <geoff@geoffholden.com>

package display

import (
	jww "github.com/spf13/jwalterweatherman"
	"github.com/stianeikeland/go-rpio/v4"
)

// StatusLED is a LED on a GPIO pin, lit while the last upload failed.
type StatusLED struct {
	Pin int
}

func (s StatusLED) Signal(ok bool) error {
	jww.DEBUG.Println("status led", s.Pin, "ok:", ok)
	if err := rpio.Open(); err != nil {
		return err
	}
	defer rpio.Close()

	pin := rpio.Pin(s.Pin)
	pin.Output()
	if ok {
		pin.Low()
	} else {
		pin.High()
	}
	return nil
}
