// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"

	"github.com/GermanBionicSystems/byj48/uln2003"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	// Keep the user's own config file out of the tests.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if diff := cmp.Diff([]string{"GPIO17", "GPIO18", "GPIO27", "GPIO22"}, cfg.Motor.Pins); diff != "" {
		t.Errorf("Motor.Pins (-want +got):\n%s", diff)
	}
	if cfg.Motor.StepDuration != 3*time.Millisecond {
		t.Errorf("Motor.StepDuration = %s, want 3ms", cfg.Motor.StepDuration)
	}
	if cfg.Motor.SteppingMethod != "half" {
		t.Errorf("Motor.SteppingMethod = %q, want %q", cfg.Motor.SteppingMethod, "half")
	}
	if cfg.Motor.DryRun {
		t.Error("Motor.DryRun should be false by default")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want info/text", cfg.Logging)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default() is invalid: %v", ValidationErrors(errs))
	}
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "byj48.yaml")
	data := `motor:
  pins: [GPIO5, GPIO6, GPIO13, GPIO19]
  step_duration: 2ms
  stepping_method: full
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Init(path); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Motor: MotorConfig{
			Pins:           []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"},
			StepDuration:   2 * time.Millisecond,
			SteppingMethod: "full",
		},
		Logging: LoggingConfig{Level: "debug", Format: "json"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&uln2003.Opts{StepDuration: 2 * time.Millisecond, SteppingMethod: uln2003.FullStep}, cfg.Motor.Opts()); diff != "" {
		t.Errorf("Opts() (-want +got):\n%s", diff)
	}
}

func writeConfig(t *testing.T, path, method string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("motor:\n  stepping_method: "+method+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSearchPath(t *testing.T) {
	for _, test := range []struct {
		name       string
		dir, local string
		want       string
	}{
		{"config dir", "full", "", "full"},
		{"working dir", "", "wave", "wave"},
		{"config dir first", "full", "wave", "full"},
	} {
		t.Run(test.name, func(t *testing.T) {
			resetViper(t)
			if want := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "byj48", "config.yaml"); ConfigFile() != want {
				t.Fatalf("ConfigFile() = %q, want %q", ConfigFile(), want)
			}
			if test.dir != "" {
				writeConfig(t, ConfigFile(), test.dir)
			}
			if test.local != "" {
				writeConfig(t, "config.yaml", test.local)
			}
			if err := Init(""); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load()
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Motor.SteppingMethod != test.want {
				t.Errorf("stepping method = %q, want %q", cfg.Motor.SteppingMethod, test.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	resetViper(t)
	if err := Init(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for an explicit missing config file")
	}
}

func TestLoadEnv(t *testing.T) {
	resetViper(t)
	t.Setenv("BYJ48_MOTOR_STEP_DURATION", "10ms")
	t.Setenv("BYJ48_MOTOR_STEPPING_METHOD", "wave")
	t.Setenv("BYJ48_MOTOR_DRY_RUN", "true")
	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Motor.StepDuration != 10*time.Millisecond {
		t.Errorf("Motor.StepDuration = %s, want 10ms", cfg.Motor.StepDuration)
	}
	if cfg.Motor.SteppingMethod != "wave" {
		t.Errorf("Motor.SteppingMethod = %q, want wave", cfg.Motor.SteppingMethod)
	}
	if !cfg.Motor.DryRun {
		t.Error("Motor.DryRun should be true")
	}
}

func TestLoadInvalid(t *testing.T) {
	resetViper(t)
	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	viper.Set("motor.stepping_method", "micro")
	_, err := Load()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Load() error = %v, want ValidationErrors", err)
	}
	if len(verrs) != 1 || verrs[0].Field != "motor.stepping_method" {
		t.Errorf("Load() errors = %v", verrs)
	}
}

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{"valid", func(*Config) {}, nil},
		{"three pins", func(c *Config) { c.Motor.Pins = c.Motor.Pins[:3] }, []string{"motor.pins"}},
		{"empty pin", func(c *Config) { c.Motor.Pins[1] = " " }, []string{"motor.pins[1]"}},
		{"duplicate pin", func(c *Config) { c.Motor.Pins[3] = c.Motor.Pins[0] }, []string{"motor.pins[3]"}},
		{"negative duration", func(c *Config) { c.Motor.StepDuration = -time.Millisecond }, []string{"motor.step_duration"}},
		{"duration too long", func(c *Config) { c.Motor.StepDuration = 3 * time.Second }, []string{"motor.step_duration"}},
		{"zero duration", func(c *Config) { c.Motor.StepDuration = 0 }, nil},
		{"method", func(c *Config) { c.Motor.SteppingMethod = "" }, []string{"motor.stepping_method"}},
		{"upper case method", func(c *Config) { c.Motor.SteppingMethod = "FULL" }, nil},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, []string{"logging.level"}},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, []string{"logging.format"}},
		{
			"several",
			func(c *Config) {
				c.Motor.Pins = nil
				c.Logging.Level = "loud"
			},
			[]string{"motor.pins", "logging.level"},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			var got []string
			for _, e := range cfg.Validate() {
				got = append(got, e.Field)
			}
			if diff := cmp.Diff(test.fields, got); diff != "" {
				t.Errorf("invalid fields (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	one := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if got := one.Error(); got != "a: bad (got: 1)" {
		t.Errorf("Error() = %q", got)
	}
	two := append(one, ValidationError{Field: "b", Value: "x", Message: "worse"})
	if got := two.Error(); !strings.HasPrefix(got, "2 validation errors:") || !strings.Contains(got, "2. b: worse (got: x)") {
		t.Errorf("Error() = %q", got)
	}
}
