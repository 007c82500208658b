// Package render turns the state of a play session into views: a trace of
// per-frame values, an ASCII picture through the orbit camera, and (in the
// engo subpackage) a window.
package render

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-planetwalk/pkg/engine"
	"github.com/opd-ai/go-planetwalk/pkg/physics"
)

// Snapshot is the state of a session after one rendered frame
type Snapshot struct {
	Step  uint64
	Frame uint64
	State string

	Player         mgl64.Vec3
	PlayerRotation mgl64.Quat
	Up             mgl64.Vec3
	DodgeElapsed   int

	Camera         mgl64.Vec3
	CameraRotation mgl64.Quat
	Yaw            float64
	Pitch          float64
	Occluded       bool

	PlanetCenter mgl64.Vec3
	PlanetRadius float64
	Obstacles    []physics.Sphere
}

// Altitude returns the player's height above the planet surface
func (s Snapshot) Altitude() float64 {
	return s.Player.Sub(s.PlanetCenter).Len() - s.PlanetRadius
}

// Capture records the current state of game. obstacles may be nil.
func Capture(game *engine.Game, obstacles []physics.Obstacle) Snapshot {
	s := Snapshot{
		Step:           game.CurrentTick,
		Frame:          game.Frames,
		State:          game.Controller.State().String(),
		Player:         game.Body.Position(),
		PlayerRotation: game.Body.Rotation(),
		DodgeElapsed:   game.Controller.DodgeElapsedSteps(),
		Camera:         game.Camera.Position(),
		CameraRotation: game.Camera.Rotation(),
		Yaw:            game.Camera.Yaw(),
		Pitch:          game.Camera.Pitch(),
		Occluded:       game.Camera.Occluded(),
		PlanetCenter:   game.Planet.Center,
		PlanetRadius:   game.Planet.Radius,
	}
	if frame, ok := game.Controller.Frame(); ok {
		s.Up = frame.Up
	}
	for _, o := range obstacles {
		s.Obstacles = append(s.Obstacles, o.Shape)
	}
	return s
}
