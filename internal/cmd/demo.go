// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/byj48/uln2003"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run through every rotation method",
		Long: `Run a fixed sequence of moves exercising every stepping method and
rotation unit, logging how long each move took. The step duration and
stepping method flags are overridden by the demo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMotor(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer m.Close()
			if err := runDemo(m.Dev, m.log, demoStepDuration); err != nil {
				return err
			}
			return m.Close()
		},
	}
}

// demoMove is one move of the demo.
type demoMove struct {
	desc   string
	method uln2003.SteppingMethod
	rotate func(d *uln2003.Dev) error
}

var demoMoves = []demoMove{
	{"full rotation clockwise", uln2003.WaveDrive, func(d *uln2003.Dev) error { return d.FullRotation(1) }},
	{"full rotation counterclockwise", uln2003.FullStep, func(d *uln2003.Dev) error { return d.FullRotation(-1) }},
	{"full rotation clockwise", uln2003.HalfStep, func(d *uln2003.Dev) error { return d.FullRotation(1) }},
	{"half rotation counterclockwise", uln2003.FullStep, func(d *uln2003.Dev) error { return d.HalfRotation(-1) }},
	{"quarter rotation clockwise", uln2003.FullStep, func(d *uln2003.Dev) error { return d.QuarterRotation(1) }},
	{"180 degree rotation counterclockwise", uln2003.FullStep, func(d *uln2003.Dev) error { return d.AngleRotation(-180) }},
	{"270 degree rotation clockwise", uln2003.HalfStep, func(d *uln2003.Dev) error { return d.AngleRotation(270) }},
}

const demoStepDuration = 3 * time.Millisecond

func runDemo(d *uln2003.Dev, log *slog.Logger, stepDuration time.Duration) error {
	d.SetStepDuration(stepDuration)
	for _, mv := range demoMoves {
		d.SetSteppingMethod(mv.method)
		log.Info("starting "+mv.desc, "method", mv.method.String(), "step_duration", stepDuration)
		start := time.Now()
		if err := mv.rotate(d); err != nil {
			return err
		}
		log.Info("done", "took", time.Since(start).Round(time.Millisecond))
	}
	return nil
}
