// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Config contains every tunable of a play session
type Config struct {
	Planet     PlanetConfig     `yaml:"planet" json:"planet"`
	Player     PlayerConfig     `yaml:"player" json:"player"`
	Movement   MovementConfig   `yaml:"movement" json:"movement"`
	Dodge      DodgeConfig      `yaml:"dodge" json:"dodge"`
	Camera     CameraConfig     `yaml:"camera" json:"camera"`
	Simulation SimulationConfig `yaml:"simulation" json:"simulation"`
}

// PlanetConfig describes the spherical world
type PlanetConfig struct {
	Name    string     `yaml:"name" json:"name"`
	Center  mgl64.Vec3 `yaml:"center" json:"center"`
	Radius  float64    `yaml:"radius" json:"radius"`
	Gravity float64    `yaml:"gravity" json:"gravity"`

	// Obstacles are static spheres that block the camera's line of sight.
	Obstacles []ObstacleConfig `yaml:"obstacles" json:"obstacles"`
}

// ObstacleConfig places a spherical obstacle in world space
type ObstacleConfig struct {
	Center mgl64.Vec3 `yaml:"center" json:"center"`
	Radius float64    `yaml:"radius" json:"radius"`
}

// PlayerConfig describes the controlled character at spawn
type PlayerConfig struct {
	Spawn mgl64.Vec3 `yaml:"spawn" json:"spawn"`
	Mass  float64    `yaml:"mass" json:"mass"`
}

// MovementConfig tunes the movement integrator and state machine
type MovementConfig struct {
	Speed               float64      `yaml:"speed" json:"speed"`
	JumpForce           float64      `yaml:"jumpForce" json:"jumpForce"`
	RotationSpeed       float64      `yaml:"rotationSpeed" json:"rotationSpeed"`
	Deadzone            float64      `yaml:"deadzone" json:"deadzone"`
	Basis               Basis        `yaml:"basis" json:"basis"`
	GroundSource        GroundSource `yaml:"groundSource" json:"groundSource"`
	GroundProbeDistance float64      `yaml:"groundProbeDistance" json:"groundProbeDistance"`
	AlignToSurface      bool         `yaml:"alignToSurface" json:"alignToSurface"`
}

// DodgeConfig tunes the dodge maneuver
type DodgeConfig struct {
	Mode          DodgeMode `yaml:"mode" json:"mode"`
	Speed         float64   `yaml:"speed" json:"speed"`
	Force         float64   `yaml:"force" json:"force"`
	DurationSteps int       `yaml:"durationSteps" json:"durationSteps"`
	// Basis of the captured dodge direction; BasisInherit follows Movement.Basis.
	Basis      Basis `yaml:"basis" json:"basis"`
	Cancelable bool  `yaml:"cancelable" json:"cancelable"`
}

// CameraConfig tunes the orbit camera
type CameraConfig struct {
	Distance        float64    `yaml:"distance" json:"distance"`
	Height          float64    `yaml:"height" json:"height"`
	SmoothSpeed     float64    `yaml:"smoothSpeed" json:"smoothSpeed"`
	Sensitivity     mgl64.Vec2 `yaml:"sensitivity" json:"sensitivity"`
	PitchLimits     mgl64.Vec2 `yaml:"pitchLimits" json:"pitchLimits"` // min, max in degrees
	CollisionOffset float64    `yaml:"collisionOffset" json:"collisionOffset"`
	CollisionLayers uint32     `yaml:"collisionLayers" json:"collisionLayers"`
	FaceCameraYaw   bool       `yaml:"faceCameraYaw" json:"faceCameraYaw"`
}

// SimulationConfig controls the fixed-step loop
type SimulationConfig struct {
	FixedStep        float64 `yaml:"fixedStep" json:"fixedStep"`
	MaxStepsPerFrame int     `yaml:"maxStepsPerFrame" json:"maxStepsPerFrame"`
}

// LoadConfig loads a configuration from a YAML or JSON file. Fields absent
// from the file keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isJSON(path) {
		err = json.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves a configuration to a file, as JSON when the path ends
// in .json and YAML otherwise
func SaveConfig(config *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(config, "", "  ")
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// DefaultConfig returns the tuning of the reference scene
func DefaultConfig() *Config {
	return &Config{
		Planet: PlanetConfig{
			Name:    "Homeworld",
			Center:  mgl64.Vec3{0, 0, 0},
			Radius:  10,
			Gravity: 9.81,
			Obstacles: []ObstacleConfig{
				{Center: mgl64.Vec3{6, 8, 0}, Radius: 1.5},
				{Center: mgl64.Vec3{0, 8, -6}, Radius: 1.2},
				{Center: mgl64.Vec3{-8, 0, 6}, Radius: 2},
			},
		},
		Player: PlayerConfig{
			Spawn: mgl64.Vec3{0, 10, 0},
			Mass:  1,
		},
		Movement: MovementConfig{
			Speed:               5,
			JumpForce:           5,
			RotationSpeed:       10,
			Deadzone:            0.1,
			Basis:               BasisPlayer,
			GroundSource:        GroundFromContacts,
			GroundProbeDistance: 0.1,
			AlignToSurface:      true,
		},
		Dodge: DodgeConfig{
			Mode:          DodgeSurfaceLocked,
			Speed:         5,
			Force:         2,
			DurationSteps: 30,
			Basis:         BasisInherit,
		},
		Camera: CameraConfig{
			Distance:        5,
			Height:          1.5,
			SmoothSpeed:     10,
			Sensitivity:     mgl64.Vec2{2, 1.5},
			PitchLimits:     mgl64.Vec2{-30, 60},
			CollisionOffset: 0.3,
			CollisionLayers: 0xFFFFFFFF,
			FaceCameraYaw:   false,
		},
		Simulation: SimulationConfig{
			FixedStep:        0.02,
			MaxStepsPerFrame: 8,
		},
	}
}
