// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Rotate continuously until interrupted",
		Long: `Rotate the motor continuously in one direction until interrupted with
Ctrl-C, or until --for has elapsed. The coils are de-energized on exit.`,
		Example: `  byj48 run --direction ccw
  byj48 run --for 30s --method full`,
		Args: cobra.NoArgs,
		RunE: runRun,
	}
	cmd.Flags().StringP("direction", "d", "cw", "direction: cw or ccw")
	cmd.Flags().Duration("for", 0, "stop after this long (0 runs until interrupted)")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	direction, _ := cmd.Flags().GetString("direction")
	duration, _ := cmd.Flags().GetDuration("for")
	if duration < 0 {
		return fmt.Errorf("--for must not be negative, got %s", duration)
	}

	m, err := openMotor(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer m.Close()

	var start func() error
	switch direction {
	case "cw", "clockwise":
		start = m.StartClockwise
	case "ccw", "counterclockwise":
		start = m.StartCounterClockwise
	default:
		return fmt.Errorf("unknown direction %q, want cw or ccw", direction)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	if err := start(); err != nil {
		return err
	}
	m.log.Info("running", "direction", direction, "method", m.SteppingMethod().String())
	began := time.Now()
	<-ctx.Done()

	if err := m.Stop(); err != nil {
		return err
	}
	m.log.Info("stopped", "ran", time.Since(began).Round(time.Millisecond))
	return m.Close()
}
