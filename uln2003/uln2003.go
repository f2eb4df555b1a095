// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uln2003

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

var (
	// ErrInvalidPin is returned when a pin is missing, unknown or wired to
	// more than one input.
	ErrInvalidPin = errors.New("uln2003: invalid pin")

	// ErrHardwareIO is returned when writing to a pin fails.
	ErrHardwareIO = errors.New("uln2003: hardware I/O failure")
)

// Opts holds the motor settings that can be changed after construction.
type Opts struct {
	// StepDuration is how long each coil pattern is held before the coils are
	// de-energized.
	StepDuration time.Duration
	// SteppingMethod selects the coil sequence.
	SteppingMethod SteppingMethod
}

// DefaultOpts is used when New is called with nil options.
var DefaultOpts = Opts{
	StepDuration:   3 * time.Millisecond,
	SteppingMethod: HalfStep,
}

// Dev is a 28BYJ-48 stepper motor connected through a ULN2003 board.
type Dev struct {
	pins [4]gpio.PinOut

	stepDuration time.Duration
	method       SteppingMethod

	// sleep is replaced in tests.
	sleep func(time.Duration)

	started atomic.Bool
	wg      *conc.WaitGroup
	runErr  error
}

// New returns a Dev driving the four inputs IN1..IN4 of the driver board,
// here named a, b, c and d.
//
// Every pin is driven low once, which also configures it as an output.
func New(a, b, c, d gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	dev := &Dev{
		pins:         [4]gpio.PinOut{a, b, c, d},
		stepDuration: opts.StepDuration,
		method:       opts.SteppingMethod,
		sleep:        time.Sleep,
	}
	for i, p := range dev.pins {
		if p == nil {
			return nil, fmt.Errorf("%w: pin %c is nil", ErrInvalidPin, 'A'+i)
		}
		for j := range i {
			if dev.pins[j] == p || (p.Name() != "" && dev.pins[j].Name() == p.Name()) {
				return nil, fmt.Errorf("%w: %s used for pin %c and %c", ErrInvalidPin, p, 'A'+j, 'A'+i)
			}
		}
	}
	for i, p := range dev.pins {
		if err := p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("%w: configuring pin %c (%s): %w", ErrHardwareIO, 'A'+i, p, err)
		}
	}
	return dev, nil
}

// PinsByName looks up GPIO pins in gpioreg, in the order given.
func PinsByName(names ...string) ([]gpio.PinOut, error) {
	pins := make([]gpio.PinOut, len(names))
	for i, name := range names {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("%w: %q not found", ErrInvalidPin, name)
		}
		pins[i] = p
	}
	return pins, nil
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("ULN2003{%s, %s, %s, %s}", d.pins[0], d.pins[1], d.pins[2], d.pins[3])
}

// Halt stops a background rotation and de-energizes the coils.
//
// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	err := d.Stop()
	if err2 := d.deenergize(); err == nil {
		err = err2
	}
	return err
}

// SetStepDuration sets the time each step is held. It applies from the next
// step.
func (d *Dev) SetStepDuration(t time.Duration) {
	d.stepDuration = t
}

// StepDuration returns the time each step is held.
func (d *Dev) StepDuration() time.Duration {
	return d.stepDuration
}

// SetSteppingMethod changes the stepping method. It applies from the next
// step.
func (d *Dev) SetSteppingMethod(m SteppingMethod) {
	d.method = m
}

// SteppingMethod returns the current stepping method.
func (d *Dev) SteppingMethod() SteppingMethod {
	return d.method
}

// FullRotation rotates the shaft n full turns.
func (d *Dev) FullRotation(n int) error {
	return d.HalfRotation(2 * n)
}

// HalfRotation rotates the shaft n half turns.
func (d *Dev) HalfRotation(n int) error {
	return d.QuarterRotation(2 * n)
}

// QuarterRotation rotates the shaft n quarter turns.
func (d *Dev) QuarterRotation(n int) error {
	return d.Step(d.method.StepsPerQuarter() * n)
}

// AngleRotation rotates the shaft by angle degrees.
//
// The step count is truncated as described in AngleSteps, so small angles
// may not move the shaft at all.
func (d *Dev) AngleRotation(angle float64) error {
	return d.Step(AngleSteps(d.method, angle))
}

// Step moves the motor n steps. Positive values rotate clockwise, negative
// values counterclockwise.
//
// It stops at the first pin write that fails.
func (d *Dev) Step(n int) error {
	var err error
	forEachIndex(n, func(i int) bool {
		err = d.writeSequence(i)
		return err == nil
	})
	return err
}

// writeSequence energizes row i of the current sequence, holds it for the step
// duration and de-energizes all coils.
func (d *Dev) writeSequence(i int) error {
	seq := d.method.Sequence()
	var err error
	for p := range d.pins {
		if err = d.pins[p].Out(seq[i][p]); err != nil {
			err = fmt.Errorf("%w: writing pin %c (%s): %w", ErrHardwareIO, 'A'+p, d.pins[p], err)
			break
		}
	}
	if err == nil {
		d.sleep(d.stepDuration)
	}
	if err2 := d.deenergize(); err == nil {
		err = err2
	}
	return err
}

// deenergize drives all pins low. Every pin is attempted; the first error is
// returned.
func (d *Dev) deenergize() error {
	var err error
	for p := range d.pins {
		if err2 := d.pins[p].Out(gpio.Low); err2 != nil && err == nil {
			err = fmt.Errorf("%w: clearing pin %c (%s): %w", ErrHardwareIO, 'A'+p, d.pins[p], err2)
		}
	}
	return err
}

var _ conn.Resource = &Dev{}
