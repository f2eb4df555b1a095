// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ledboard

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// ErrNotImplemented is returned by the input and PWM functions of a Pin.
var ErrNotImplemented = errors.New("ledboard: not implemented")

// Pin is one LED of the board.
type Pin struct {
	dev    *Dev
	name   string
	number int
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Name returns the name of the LED pin.
func (p *Pin) Name() string {
	return p.name
}

// Number returns the position of the LED on the board, 0 for A.
func (p *Pin) Number() int {
	return p.number
}

// Deprecated: returns "Out"
func (p *Pin) Function() string {
	return "Out"
}

// Out lights the LED on High and redraws the board.
func (p *Pin) Out(l gpio.Level) error {
	return p.dev.set(p.number, l)
}

// Read returns the last level written.
func (p *Pin) Read() gpio.Level {
	return p.dev.Levels()[p.number]
}

// In is not available, LEDs are outputs.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	return ErrNotImplemented
}

// WaitForEdge always returns false.
func (p *Pin) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (p *Pin) Pull() gpio.Pull {
	return gpio.Float
}

func (p *Pin) DefaultPull() gpio.Pull {
	return gpio.Float
}

// Not implemented.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (p *Pin) String() string {
	return p.name
}

var _ gpio.PinIO = &Pin{}
