// pkg/config/env.go
package config

import (
	"os"
	"strconv"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PLANETWALK_"

type floatOverride struct {
	key    string
	target func(c *Config) *float64
}

var floatOverrides = []floatOverride{
	{"SPEED", func(c *Config) *float64 { return &c.Movement.Speed }},
	{"JUMP_FORCE", func(c *Config) *float64 { return &c.Movement.JumpForce }},
	{"ROTATION_SPEED", func(c *Config) *float64 { return &c.Movement.RotationSpeed }},
	{"DODGE_SPEED", func(c *Config) *float64 { return &c.Dodge.Speed }},
	{"DODGE_FORCE", func(c *Config) *float64 { return &c.Dodge.Force }},
	{"CAMERA_DISTANCE", func(c *Config) *float64 { return &c.Camera.Distance }},
	{"CAMERA_HEIGHT", func(c *Config) *float64 { return &c.Camera.Height }},
	{"CAMERA_SMOOTH_SPEED", func(c *Config) *float64 { return &c.Camera.SmoothSpeed }},
	{"FIXED_STEP", func(c *Config) *float64 { return &c.Simulation.FixedStep }},
}

// ApplyEnvironmentOverrides overwrites config fields from PLANETWALK_*
// environment variables and re-validates the result
func ApplyEnvironmentOverrides(config *Config) error {
	for _, o := range floatOverrides {
		raw, ok := os.LookupEnv(EnvPrefix + o.key)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return invalid(EnvPrefix+o.key, raw, "not a number")
		}
		*o.target(config) = v
	}

	if raw, ok := os.LookupEnv(EnvPrefix + "DODGE_DURATION_STEPS"); ok && raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return invalid(EnvPrefix+"DODGE_DURATION_STEPS", raw, "not an integer")
		}
		config.Dodge.DurationSteps = v
	}

	if raw, ok := os.LookupEnv(EnvPrefix + "MOVEMENT_BASIS"); ok && raw != "" {
		if err := config.Movement.Basis.UnmarshalText([]byte(raw)); err != nil {
			return err
		}
	}
	if raw, ok := os.LookupEnv(EnvPrefix + "DODGE_MODE"); ok && raw != "" {
		if err := config.Dodge.Mode.UnmarshalText([]byte(raw)); err != nil {
			return err
		}
	}
	if raw, ok := os.LookupEnv(EnvPrefix + "FACE_CAMERA_YAW"); ok && raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return invalid(EnvPrefix+"FACE_CAMERA_YAW", raw, "not a boolean")
		}
		config.Camera.FaceCameraYaw = v
	}

	return config.Validate()
}
