// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads byj48 settings from defaults, a YAML file, BYJ48_*
// environment variables and command-line flags through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/GermanBionicSystems/byj48/uln2003"
)

// Config represents the complete byj48 configuration
type Config struct {
	Motor   MotorConfig   `mapstructure:"motor"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// MotorConfig describes the wiring and default motion settings
type MotorConfig struct {
	// Pins are the GPIO names wired to IN1..IN4 of the driver board
	Pins []string `mapstructure:"pins"`
	// StepDuration is how long each coil pattern is held
	StepDuration time.Duration `mapstructure:"step_duration"`
	// SteppingMethod is one of "wave", "full" or "half"
	SteppingMethod string `mapstructure:"stepping_method"`
	// DryRun drives a terminal LED board instead of GPIO pins
	DryRun bool `mapstructure:"dry_run"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Format is "text" or "json"
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when nothing is set.
//
// The pins are BCM GPIO17, 18, 27 and 22, the usual Raspberry Pi wiring.
func Default() *Config {
	return &Config{
		Motor: MotorConfig{
			Pins:           []string{"GPIO17", "GPIO18", "GPIO27", "GPIO22"},
			StepDuration:   uln2003.DefaultOpts.StepDuration,
			SteppingMethod: "half",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("motor.pins", defaults.Motor.Pins)
	viper.SetDefault("motor.step_duration", defaults.Motor.StepDuration)
	viper.SetDefault("motor.stepping_method", defaults.Motor.SteppingMethod)
	viper.SetDefault("motor.dry_run", defaults.Motor.DryRun)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
}

// Init points viper at the config file and the environment. An empty
// cfgFile searches the config directory and the working directory for
// config.yaml; a missing file there is not an error.
//
// Environment variables use the BYJ48 prefix with dots replaced by
// underscores, e.g. BYJ48_MOTOR_STEP_DURATION for motor.step_duration.
func Init(cfgFile string) error {
	SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("BYJ48")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Opts converts the motor section to driver options. The configuration must
// be valid.
func (c *MotorConfig) Opts() *uln2003.Opts {
	m, _ := uln2003.ParseSteppingMethod(c.SteppingMethod)
	return &uln2003.Opts{StepDuration: c.StepDuration, SteppingMethod: m}
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "byj48")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".byj48"
	}
	return filepath.Join(home, ".config", "byj48")
}

// ConfigFile returns the path of the config file searched first when no file
// is given. A config.yaml in the working directory is searched next.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
