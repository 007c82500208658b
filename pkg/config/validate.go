package config

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

// ErrInvalidConfig is matched by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError names the offending field
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidConfig
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(field, value, message string) error {
	return oops.
		Code("CONFIG_INVALID").
		With("field", field).
		Wrap(&ValidationError{Field: field, Value: value, Message: message})
}

// Validate checks the constraints the runtime depends on. Tunables are
// otherwise free-form; only the pitch limits are cross-checked.
func (c *Config) Validate() error {
	if err := c.Camera.Validate(); err != nil {
		return err
	}
	if c.Planet.Radius <= 0 {
		return invalid("planet.radius", fmt.Sprint(c.Planet.Radius), "must be positive")
	}
	for i, o := range c.Planet.Obstacles {
		if o.Radius <= 0 {
			return invalid(fmt.Sprintf("planet.obstacles[%d].radius", i), fmt.Sprint(o.Radius), "must be positive")
		}
	}
	if c.Simulation.FixedStep <= 0 {
		return invalid("simulation.fixedStep", fmt.Sprint(c.Simulation.FixedStep), "must be positive")
	}
	if c.Dodge.DurationSteps < 1 {
		return invalid("dodge.durationSteps", fmt.Sprint(c.Dodge.DurationSteps), "must be at least 1")
	}
	if c.Movement.Basis == BasisInherit {
		return invalid("movement.basis", "", "want player or camera")
	}
	return nil
}

// Validate checks pitch-limit ordering
func (c CameraConfig) Validate() error {
	if c.PitchLimits.X() > c.PitchLimits.Y() {
		return invalid("camera.pitchLimits", fmt.Sprint(c.PitchLimits), "min must not exceed max")
	}
	return nil
}
