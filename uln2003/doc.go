// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package uln2003 drives a 28BYJ-48 unipolar stepper motor through a ULN2003
// Darlington array driver board wired to four GPIO outputs.
//
// The driver is open loop: it walks one of three coil sequence tables, writes
// each row to the four inputs IN1..IN4 (called A..D here), holds it for the
// step duration and then de-energizes all coils before the next row. Coils
// are never left energized between steps, so the motor has no holding torque
// at rest but does not heat up either.
//
// Rotation is expressed in steps, quarter, half or full turns of the output
// shaft, or in degrees. Positive values rotate clockwise, negative values
// counterclockwise.
//
// # Stepping Methods
//
// WaveDrive and FullStep move the shaft about 0.19° per step, 2048 steps per
// revolution. HalfStep moves about 0.09° per step, 4096 steps per
// revolution.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/uln2003a.pdf
//
// # Concurrency
//
// Rotation methods block until the last step has been written. StartClockwise
// and StartCounterClockwise run the motor from a single background goroutine
// until Stop is called. The caller must serialize calls that start, stop or
// reconfigure a Dev; changing the step duration or stepping method while the
// motor runs in the background is not supported.
package uln2003
