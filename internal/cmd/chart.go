// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GermanBionicSystems/byj48/seqchart"
	"github.com/GermanBionicSystems/byj48/uln2003"
)

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the coil timing chart of a move to a PNG file",
		Long: `Draw the coils energized at each step of a move, using the stepping
method from --method. No hardware is needed.`,
		Example: `  byj48 chart --steps 16 -o half.png
  byj48 chart --method full --steps -8 -o ccw.png`,
		Args: cobra.NoArgs,
		RunE: runChart,
	}
	cmd.Flags().Int("steps", 16, fmt.Sprintf("number of steps, negative for counterclockwise (at most %d)", seqchart.MaxSteps))
	cmd.Flags().StringP("output", "o", "chart.png", "output PNG file")
	cmd.Flags().Int("step-width", 16, "pixels per step")
	return cmd
}

func runChart(cmd *cobra.Command, args []string) error {
	method, err := uln2003.ParseSteppingMethod(viper.GetString("motor.stepping_method"))
	if err != nil {
		return err
	}
	steps, _ := cmd.Flags().GetInt("steps")
	out, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("step-width")
	if steps > seqchart.MaxSteps || steps < -seqchart.MaxSteps {
		return fmt.Errorf("--steps must be between %d and %d", -seqchart.MaxSteps, seqchart.MaxSteps)
	}

	if err := seqchart.SavePNG(out, method, steps, &seqchart.Opts{StepWidth: width}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d steps)\n", out, method, steps)
	return nil
}
