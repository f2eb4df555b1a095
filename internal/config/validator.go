// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/GermanBionicSystems/byj48/uln2003"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "motor.step_duration")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// maxStepDuration is far slower than the motor is useful at, and catches
// values given in the wrong unit.
const maxStepDuration = time.Second

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the list of valid log formats
func ValidLogFormats() []string {
	return []string{"text", "json"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if len(c.Motor.Pins) != 4 {
		errors = append(errors, ValidationError{
			Field:   "motor.pins",
			Value:   c.Motor.Pins,
			Message: "exactly four pins are required (IN1..IN4)",
		})
	}
	for i, p := range c.Motor.Pins {
		if strings.TrimSpace(p) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("motor.pins[%d]", i),
				Value:   p,
				Message: "pin name must not be empty",
			})
			continue
		}
		if slices.Index(c.Motor.Pins, p) != i {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("motor.pins[%d]", i),
				Value:   p,
				Message: "pin is used more than once",
			})
		}
	}

	if c.Motor.StepDuration < 0 || c.Motor.StepDuration > maxStepDuration {
		errors = append(errors, ValidationError{
			Field:   "motor.step_duration",
			Value:   c.Motor.StepDuration,
			Message: fmt.Sprintf("must be between 0 and %s", maxStepDuration),
		})
	}

	if _, err := uln2003.ParseSteppingMethod(c.Motor.SteppingMethod); err != nil {
		errors = append(errors, ValidationError{
			Field:   "motor.stepping_method",
			Value:   c.Motor.SteppingMethod,
			Message: "must be one of: wave, full, half",
		})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if !slices.Contains(ValidLogFormats(), strings.ToLower(c.Logging.Format)) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogFormats(), ", ")),
		})
	}

	return errors
}
