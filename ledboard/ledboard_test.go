// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ledboard

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

func newBoard(t *testing.T, name string) (*Dev, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	d, err := New(&Opts{Name: name, W: &buf})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = d.Halt() })
	return d, &buf
}

func TestNew(t *testing.T) {
	d, _ := newBoard(t, t.Name())
	if d.String() != t.Name() {
		t.Errorf("String() = %q, want %q", d.String(), t.Name())
	}
	for i, p := range d.Pins {
		if p.Number() != i {
			t.Errorf("pin %s: Number() = %d, want %d", p, p.Number(), i)
		}
		want := t.Name() + "_" + string(rune('A'+i))
		if p.Name() != want || p.String() != want {
			t.Errorf("pin %d: Name() = %q, want %q", i, p.Name(), want)
		}
		if gpioreg.ByName(want) == nil {
			t.Errorf("pin %s not found in gpioreg", want)
		}
	}
}

func TestNewDuplicateName(t *testing.T) {
	newBoard(t, t.Name())
	if _, err := New(&Opts{Name: t.Name(), W: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected an error registering the same names twice")
	}
	// The first board keeps its pins.
	if gpioreg.ByName(t.Name()+"_A") == nil {
		t.Error("failed New() unregistered pins it did not own")
	}
}

func TestOut(t *testing.T) {
	d, buf := newBoard(t, t.Name())
	on := color.NRGBA{R: 255, A: 255}
	off := color.NRGBA{R: 48, G: 48, B: 48, A: 255}
	if err := d.Pins[1].Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if err := d.Pins[3].Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	want := [NumLEDs]gpio.Level{gpio.Low, gpio.High, gpio.Low, gpio.High}
	if diff := cmp.Diff(want, d.Levels()); diff != "" {
		t.Errorf("Levels() (-want +got):\n%s", diff)
	}
	if !d.Pins[1].Read() || d.Pins[0].Read() {
		t.Error("Read() does not reflect the last write")
	}

	p := ansi256.Default
	frame := "\r\033[0m" + p.Block(off) + "A" + p.Block(on) + "B" + p.Block(off) + "C" + p.Block(on) + "D" + "\033[0m "
	if !strings.HasSuffix(buf.String(), frame) {
		t.Errorf("last frame = %q, want %q", buf.String(), frame)
	}
	if got := strings.Count(buf.String(), "\r"); got != 2 {
		t.Errorf("%d frames drawn, want 2", got)
	}
}

func TestHalt(t *testing.T) {
	d, buf := newBoard(t, t.Name())
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\n\033[0m") {
		t.Errorf("Halt() did not reset the terminal: %q", buf.String())
	}
	if gpioreg.ByName(t.Name()+"_A") != nil {
		t.Error("pins still registered after Halt()")
	}
	if err := d.Pins[0].Out(gpio.High); !errors.Is(err, ErrHalted) {
		t.Errorf("Out() after Halt() = %v, want ErrHalted", err)
	}
	if err := d.Halt(); err != nil {
		t.Errorf("second Halt() = %v", err)
	}
}

func TestPinNotImplemented(t *testing.T) {
	d, _ := newBoard(t, t.Name())
	p := d.Pins[2]
	if err := p.In(gpio.PullUp, gpio.NoEdge); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("In() = %v, want ErrNotImplemented", err)
	}
	if err := p.PWM(gpio.DutyHalf, 0); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("PWM() = %v, want ErrNotImplemented", err)
	}
	if p.WaitForEdge(0) {
		t.Error("WaitForEdge() = true")
	}
	if p.Pull() != gpio.Float || p.DefaultPull() != gpio.Float {
		t.Error("pull should be Float")
	}
	if p.Halt() != nil {
		t.Error("expected nil on pin.Halt()")
	}
}
