// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

func newRotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Rotate the motor by steps, turns or degrees",
		Long: `Rotate the motor and return once the move is complete.

Exactly one amount must be given. Positive values rotate clockwise, negative
values counterclockwise. Angles are truncated to whole steps.`,
		Example: `  byj48 rotate --full 1
  byj48 rotate --angle -90 --method full
  byj48 rotate --steps 64 --dry-run --step-duration 100ms`,
		Args: cobra.NoArgs,
		RunE: runRotate,
	}
	cmd.Flags().Int("steps", 0, "number of steps")
	cmd.Flags().Int("quarter", 0, "number of quarter turns")
	cmd.Flags().Int("half", 0, "number of half turns")
	cmd.Flags().Int("full", 0, "number of full turns")
	cmd.Flags().Float64("angle", 0, "angle in degrees")
	amounts := []string{"steps", "quarter", "half", "full", "angle"}
	cmd.MarkFlagsOneRequired(amounts...)
	cmd.MarkFlagsMutuallyExclusive(amounts...)
	return cmd
}

func runRotate(cmd *cobra.Command, args []string) error {
	m, err := openMotor(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer m.Close()

	flags := cmd.Flags()
	var (
		rotate func() error
		unit   string
		amount any
	)
	switch {
	case flags.Changed("steps"):
		n, _ := flags.GetInt("steps")
		rotate, unit, amount = func() error { return m.Step(n) }, "steps", n
	case flags.Changed("quarter"):
		n, _ := flags.GetInt("quarter")
		rotate, unit, amount = func() error { return m.QuarterRotation(n) }, "quarter", n
	case flags.Changed("half"):
		n, _ := flags.GetInt("half")
		rotate, unit, amount = func() error { return m.HalfRotation(n) }, "half", n
	case flags.Changed("full"):
		n, _ := flags.GetInt("full")
		rotate, unit, amount = func() error { return m.FullRotation(n) }, "full", n
	default:
		a, _ := flags.GetFloat64("angle")
		rotate, unit, amount = func() error { return m.AngleRotation(a) }, "angle", a
	}

	start := time.Now()
	if err := rotate(); err != nil {
		return err
	}
	m.log.Info("rotation complete",
		unit, amount,
		"method", m.SteppingMethod().String(),
		"took", time.Since(start).Round(time.Millisecond))
	return m.Close()
}
