package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())

	assert.Equal(t, 5.0, config.Movement.Speed)
	assert.Equal(t, 0.1, config.Movement.Deadzone)
	assert.Equal(t, 30, config.Dodge.DurationSteps)
	assert.Equal(t, DodgeSurfaceLocked, config.Dodge.Mode)
	assert.Equal(t, BasisPlayer, config.Movement.Basis)
	assert.Equal(t, mgl64.Vec2{-30, 60}, config.Camera.PitchLimits)
	assert.Equal(t, mgl64.Vec2{2, 1.5}, config.Camera.Sensitivity)
	assert.Equal(t, 0.02, config.Simulation.FixedStep)
}

func TestSaveLoadConfig(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			original := DefaultConfig()
			original.Movement.Basis = BasisCamera
			original.Dodge.Mode = DodgeImpulse
			original.Movement.GroundSource = GroundFromProbe
			original.Camera.PitchLimits = mgl64.Vec2{-10, 45}

			require.NoError(t, SaveConfig(original, path))
			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, original, loaded)
		})
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("movement:\n  speed: 7.5\n  basis: camera\ncamera:\n  pitchLimits: [-20, 40]\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7.5, config.Movement.Speed)
	assert.Equal(t, BasisCamera, config.Movement.Basis)
	assert.Equal(t, mgl64.Vec2{-20, 40}, config.Camera.PitchLimits)
	assert.Equal(t, 5.0, config.Movement.JumpForce)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		content    string
		wantField  string
		wantReadOK bool
	}{
		{"pitch_limits_reversed", "camera:\n  pitchLimits: [60, -30]\n", "camera.pitchLimits", true},
		{"unknown_basis", "movement:\n  basis: sideways\n", "basis", true},
		{"unknown_dodge_mode", "dodge:\n  mode: teleport\n", "dodge.mode", true},
		{"zero_duration", "dodge:\n  durationSteps: 0\n", "dodge.durationSteps", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "err = %v", err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestCameraConfig_Validate(t *testing.T) {
	c := DefaultConfig().Camera
	c.PitchLimits = mgl64.Vec2{10, 10}
	assert.NoError(t, c.Validate(), "equal limits are allowed")
	c.PitchLimits = mgl64.Vec2{11, 10}
	assert.Error(t, c.Validate())
}

func TestPolicyText(t *testing.T) {
	tests := []struct {
		text string
		want Basis
	}{
		{"player", BasisPlayer},
		{"Camera", BasisCamera},
		{"camera_relative", BasisCamera},
		{"", BasisInherit},
	}
	for _, tt := range tests {
		t.Run("basis_"+tt.text, func(t *testing.T) {
			var b Basis
			require.NoError(t, b.UnmarshalText([]byte(tt.text)))
			assert.Equal(t, tt.want, b)
		})
	}

	var g GroundSource
	require.NoError(t, g.UnmarshalText([]byte("probe")))
	assert.Equal(t, GroundFromProbe, g)
	assert.Equal(t, "probe", g.String())

	var m DodgeMode
	require.NoError(t, m.UnmarshalText([]byte("impulse")))
	assert.Equal(t, "impulse", m.String())
}
