// pkg/config/env_test.go
package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv("PLANETWALK_SPEED", "8")
	t.Setenv("PLANETWALK_DODGE_DURATION_STEPS", "12")
	t.Setenv("PLANETWALK_MOVEMENT_BASIS", "camera")
	t.Setenv("PLANETWALK_DODGE_MODE", "impulse")
	t.Setenv("PLANETWALK_FACE_CAMERA_YAW", "true")
	t.Setenv("PLANETWALK_CAMERA_DISTANCE", "")

	config := DefaultConfig()
	require.NoError(t, ApplyEnvironmentOverrides(config))

	assert.Equal(t, 8.0, config.Movement.Speed)
	assert.Equal(t, 12, config.Dodge.DurationSteps)
	assert.Equal(t, BasisCamera, config.Movement.Basis)
	assert.Equal(t, DodgeImpulse, config.Dodge.Mode)
	assert.True(t, config.Camera.FaceCameraYaw)
	assert.Equal(t, 5.0, config.Camera.Distance, "empty values are ignored")
}

func TestApplyEnvironmentOverrides_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad_float", "PLANETWALK_SPEED", "fast"},
		{"bad_int", "PLANETWALK_DODGE_DURATION_STEPS", "1.5"},
		{"bad_bool", "PLANETWALK_FACE_CAMERA_YAW", "maybe"},
		{"bad_basis", "PLANETWALK_MOVEMENT_BASIS", "diagonal"},
		{"invalid_result", "PLANETWALK_FIXED_STEP", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			err := ApplyEnvironmentOverrides(DefaultConfig())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}
