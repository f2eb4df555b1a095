// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledboard emulates the four indicator LEDs of a ULN2003 driver board
// on a terminal (stdout) using ANSI color codes.
//
// Each LED is a gpio.PinIO registered in gpioreg, so anything that drives a
// real board can drive the emulator instead. Useful to check coil sequences
// before the motor is wired, or on a machine without GPIO.
package ledboard

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// NumLEDs is the number of LEDs on the board, one per driver input.
const NumLEDs = 4

// Opts represents the options available for the board.
type Opts struct {
	// Name prefixes the pin names; pins are registered as Name_A .. Name_D.
	// Defaults to "LEDBOARD".
	Name string
	// W receives the rendering. Defaults to a colorable stdout.
	W io.Writer
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// On and Off are the LED colors. Zero values default to red and dark
	// grey.
	On, Off color.NRGBA

	_ struct{}
}

// Dev is a ULN2003 LED board emulator that outputs to the console.
type Dev struct {
	// Pins holds the LEDs A, B, C and D.
	Pins [NumLEDs]gpio.PinIO

	name    string
	w       io.Writer
	palette ansi256.Palette
	on, off color.NRGBA

	mu     sync.Mutex
	levels [NumLEDs]gpio.Level
	buf    bytes.Buffer
	halted bool
}

// ErrHalted is returned when writing to a pin of a halted board.
var ErrHalted = errors.New("ledboard: halted")

// New returns a Dev that displays at the console and registers its pins.
//
// Registration fails if pins with the same names are already registered.
func New(opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	d := &Dev{
		name:    opts.Name,
		w:       opts.W,
		palette: *ansi256.Default,
		on:      opts.On,
		off:     opts.Off,
	}
	if d.name == "" {
		d.name = "LEDBOARD"
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	if opts.Palette != nil {
		d.palette = *opts.Palette
	}
	if d.on == (color.NRGBA{}) {
		d.on = color.NRGBA{R: 255, A: 255}
	}
	if d.off == (color.NRGBA{}) {
		d.off = color.NRGBA{R: 48, G: 48, B: 48, A: 255}
	}
	for i := range d.Pins {
		p := &Pin{dev: d, number: i, name: fmt.Sprintf("%s_%c", d.name, 'A'+i)}
		if err := gpioreg.Register(p); err != nil {
			for j := range i {
				_ = gpioreg.Unregister(d.Pins[j].Name())
			}
			return nil, fmt.Errorf("ledboard: registering %s: %w", p.name, err)
		}
		d.Pins[i] = p
	}
	return d, nil
}

func (d *Dev) String() string {
	return d.name
}

// Levels returns the current state of the LEDs.
func (d *Dev) Levels() [NumLEDs]gpio.Level {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.levels
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and unregisters the pins. Further writes
// return ErrHalted.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return nil
	}
	d.halted = true
	var err error
	for _, p := range d.Pins {
		if err2 := gpioreg.Unregister(p.Name()); err2 != nil && err == nil {
			err = err2
		}
	}
	if _, err2 := d.w.Write([]byte("\n\033[0m")); err2 != nil && err == nil {
		err = err2
	}
	return err
}

func (d *Dev) set(i int, l gpio.Level) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return ErrHalted
	}
	d.levels[i] = l
	return d.refresh()
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i, l := range d.levels {
		c := d.off
		if l {
			c = d.on
		}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		_ = d.buf.WriteByte(byte('A' + i))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
