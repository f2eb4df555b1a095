// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package cmd implements the byj48 command-line tool.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/byj48/internal/config"
	"github.com/GermanBionicSystems/byj48/internal/logging"
	"github.com/GermanBionicSystems/byj48/ledboard"
	"github.com/GermanBionicSystems/byj48/uln2003"
)

// NewRootCmd returns the byj48 command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "byj48",
		Short: "Drive a 28BYJ-48 stepper motor through a ULN2003 board",
		Long: `byj48 drives a 28BYJ-48 stepper motor wired to four GPIO pins through a
ULN2003 driver board. Rotations are given in steps, turns or degrees;
positive values rotate clockwise.

Use --dry-run to show the coil states on the terminal instead.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Init(viper.GetString("config"))
		},
	}

	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", fmt.Sprintf("config file (default is %s, then ./config.yaml)", config.ConfigFile()))
	flags.StringSlice("pins", defaults.Motor.Pins, "GPIO names wired to IN1,IN2,IN3,IN4")
	flags.Duration("step-duration", defaults.Motor.StepDuration, "time each step is held")
	flags.String("method", defaults.Motor.SteppingMethod, "stepping method: wave, full or half")
	flags.Bool("dry-run", defaults.Motor.DryRun, "show the coils on the terminal instead of driving GPIO")
	flags.String("log-level", defaults.Logging.Level, "log level: debug, info, warn or error")
	flags.String("log-format", defaults.Logging.Format, "log format: text or json")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("motor.pins", flags.Lookup("pins"))
	_ = viper.BindPFlag("motor.step_duration", flags.Lookup("step-duration"))
	_ = viper.BindPFlag("motor.stepping_method", flags.Lookup("method"))
	_ = viper.BindPFlag("motor.dry_run", flags.Lookup("dry-run"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(
		newRotateCmd(),
		newDemoCmd(),
		newRunCmd(),
		newJogCmd(),
		newChartCmd(),
	)
	return rootCmd
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// motor is an opened Dev with everything needed to release it.
type motor struct {
	*uln2003.Dev
	cfg    *config.Config
	log    *slog.Logger
	board  *ledboard.Dev
	closed bool
}

// openMotor loads the configuration and opens the motor. In dry-run mode the
// coils are drawn to boardOut.
func openMotor(cmd *cobra.Command, boardOut io.Writer) (*motor, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	m := &motor{cfg: cfg, log: logger}
	var pins []gpio.PinOut
	if cfg.Motor.DryRun {
		m.board, err = ledboard.New(&ledboard.Opts{Name: "ULN2003", W: boardOut})
		if err != nil {
			return nil, err
		}
		for _, p := range m.board.Pins {
			pins = append(pins, p)
		}
	} else {
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize periph: %w", err)
		}
		if pins, err = uln2003.PinsByName(cfg.Motor.Pins...); err != nil {
			return nil, err
		}
	}

	m.Dev, err = uln2003.New(pins[0], pins[1], pins[2], pins[3], cfg.Motor.Opts())
	if err != nil {
		if m.board != nil {
			_ = m.board.Halt()
		}
		return nil, err
	}
	m.log.Debug("motor ready",
		"dev", m.Dev.String(),
		"method", m.SteppingMethod().String(),
		"step_duration", m.StepDuration(),
		"dry_run", cfg.Motor.DryRun)
	return m, nil
}

// Close stops the motor, de-energizes the coils and releases the LED board.
func (m *motor) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	err := m.Dev.Halt()
	if m.board != nil {
		if err2 := m.board.Halt(); err == nil {
			err = err2
		}
	}
	return err
}
