// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uln2003

import (
	"github.com/sourcegraph/conc"
)

// batchSteps is the number of steps the background loop takes between two
// checks of the started flag. It bounds how long Stop waits.
const batchSteps = 5

// StartClockwise rotates the motor clockwise in the background until Stop is
// called.
//
// If the motor is already running it is stopped first, and any error from
// that run is returned without starting.
func (d *Dev) StartClockwise() error {
	return d.start(batchSteps)
}

// StartCounterClockwise rotates the motor counterclockwise in the background
// until Stop is called.
//
// If the motor is already running it is stopped first, and any error from
// that run is returned without starting.
func (d *Dev) StartCounterClockwise() error {
	return d.start(-batchSteps)
}

func (d *Dev) start(steps int) error {
	if err := d.Stop(); err != nil {
		return err
	}
	d.started.Store(true)
	d.wg = conc.NewWaitGroup()
	d.wg.Go(func() {
		for d.started.Load() {
			if err := d.Step(steps); err != nil {
				d.runErr = err
				d.started.Store(false)
				return
			}
		}
	})
	return nil
}

// Stop ends a background rotation and waits for the current batch of steps to
// complete. All coils are de-energized when it returns.
//
// It returns the error that ended the rotation early, if any. Stop is a no-op
// when the motor is not running.
func (d *Dev) Stop() error {
	if d.wg == nil {
		return nil
	}
	d.started.Store(false)
	d.wg.Wait()
	d.wg = nil
	err := d.runErr
	d.runErr = nil
	return err
}

// IsStarted reports whether a background rotation is running.
func (d *Dev) IsStarted() bool {
	return d.started.Load()
}
