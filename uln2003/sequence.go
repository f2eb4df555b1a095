// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uln2003

import (
	"errors"
	"fmt"
	"strings"

	"periph.io/x/conn/v3/gpio"
)

// ErrInvalidSteppingMethod is returned when a stepping method name cannot be
// parsed.
var ErrInvalidSteppingMethod = errors.New("uln2003: invalid stepping method")

// SteppingMethod selects the coil sequence and the step angle.
type SteppingMethod uint8

const (
	// WaveDrive energizes a single coil per step.
	WaveDrive SteppingMethod = iota
	// FullStep moves a full step per row.
	FullStep
	// HalfStep alternates between one and two energized coils, halving the
	// step angle.
	HalfStep
)

// SequenceLen is the number of rows in each coil sequence.
const SequenceLen = 8

// Sequence is a coil sequence. Each row holds the levels of pins A, B, C and
// D for one step.
type Sequence [SequenceLen][4]gpio.Level

const (
	lo = gpio.Low
	hi = gpio.High
)

var (
	waveDriveSequence = Sequence{
		{lo, lo, lo, hi},
		{lo, lo, hi, lo},
		{lo, hi, lo, lo},
		{hi, lo, lo, lo},
		{lo, lo, lo, hi},
		{lo, lo, hi, lo},
		{lo, hi, lo, lo},
		{hi, lo, lo, lo},
	}

	fullStepSequence = Sequence{
		{lo, lo, lo, hi},
		{lo, lo, hi, lo},
		{lo, hi, lo, lo},
		{hi, lo, lo, lo},
		{lo, lo, lo, hi},
		{lo, lo, hi, lo},
		{lo, hi, lo, lo},
		{hi, lo, lo, lo},
	}

	halfStepSequence = Sequence{
		{lo, lo, lo, hi},
		{lo, lo, hi, hi},
		{lo, lo, hi, lo},
		{lo, hi, hi, lo},
		{lo, hi, lo, lo},
		{hi, hi, lo, lo},
		{hi, lo, lo, lo},
		{hi, lo, lo, hi},
	}
)

// Sequence returns a copy of the coil sequence used by the stepping method.
//
// Unknown values use the half step sequence.
func (m SteppingMethod) Sequence() Sequence {
	switch m {
	case WaveDrive:
		return waveDriveSequence
	case FullStep:
		return fullStepSequence
	default:
		return halfStepSequence
	}
}

// StepsPerQuarter returns the number of steps for a quarter revolution of the
// output shaft.
func (m SteppingMethod) StepsPerQuarter() int {
	if m == HalfStep {
		return 1024
	}
	return 512
}

// StepsPerRevolution returns the number of steps for a full revolution of the
// output shaft.
func (m SteppingMethod) StepsPerRevolution() int {
	return 4 * m.StepsPerQuarter()
}

// StepAngle returns the nominal angle of a single step, in degrees.
func (m SteppingMethod) StepAngle() float64 {
	if m == HalfStep {
		return 0.09
	}
	return 0.19
}

func (m SteppingMethod) String() string {
	switch m {
	case WaveDrive:
		return "WaveDrive"
	case FullStep:
		return "FullStep"
	case HalfStep:
		return "HalfStep"
	default:
		return fmt.Sprintf("SteppingMethod(%d)", uint8(m))
	}
}

// ParseSteppingMethod parses names like "wave", "full" or "HalfStep".
func ParseSteppingMethod(s string) (SteppingMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wave", "wavedrive", "wave_drive", "wave-drive":
		return WaveDrive, nil
	case "full", "fullstep", "full_step", "full-step":
		return FullStep, nil
	case "half", "halfstep", "half_step", "half-step":
		return HalfStep, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSteppingMethod, s)
}

// AngleSteps converts an angle in degrees to a step count for the stepping
// method.
//
// The product of the angle and the steps per revolution is truncated toward
// zero before the division by 360, which truncates again. Sub-step remainders
// are dropped, never rounded: 1° in full step is 5 steps, not 5.69.
func AngleSteps(m SteppingMethod, angle float64) int {
	return int(angle*float64(m.StepsPerRevolution())) / 360
}

// StepIndices returns the sequence rows Step(n) writes, in order.
//
// A positive count walks a counter down from n to 1, a negative count walks
// it up from 0 to |n|-1; the row is the counter modulo SequenceLen. The two
// counting directions are what reverse the rotation.
func StepIndices(n int) []int {
	out := make([]int, 0, abs(n))
	forEachIndex(n, func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}

// forEachIndex calls f with each row index of Step(n) until f returns false.
func forEachIndex(n int, f func(int) bool) {
	if n > 0 {
		for c := n; c > 0; c-- {
			if !f(c % SequenceLen) {
				return
			}
		}
		return
	}
	for c := 0; c < abs(n); c++ {
		if !f(c % SequenceLen) {
			return
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
