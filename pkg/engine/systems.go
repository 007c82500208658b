// pkg/engine/systems.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-planetwalk/pkg/physics"
)

// Priorities of the built-in systems. Higher runs first.
const (
	LocomotionPriority = 100
	PhysicsPriority    = 50
	CameraPriority     = 100
)

// locomotionSystem samples input and runs the controller once per fixed
// step. ecs passes float32 deltas, so the systems read the float64 step and
// frame times kept by the Game.
type locomotionSystem struct {
	game *Game
}

func (s *locomotionSystem) Priority() int           { return LocomotionPriority }
func (s *locomotionSystem) Remove(ecs.BasicEntity) {}

func (s *locomotionSystem) Update(float32) {
	g := s.game
	g.Controller.Step(g.ctx, g.Input.Sample(), g.TimeStep)
}

// physicsSystem integrates the physics collaborator after locomotion
type physicsSystem struct {
	game    *Game
	stepper physics.Stepper
}

func (s *physicsSystem) Priority() int           { return PhysicsPriority }
func (s *physicsSystem) Remove(ecs.BasicEntity) {}

func (s *physicsSystem) Update(float32) {
	s.stepper.Step(s.game.TimeStep)
}

// cameraSystem updates the orbit camera once per rendered frame
type cameraSystem struct {
	game *Game
}

func (s *cameraSystem) Priority() int           { return CameraPriority }
func (s *cameraSystem) Remove(ecs.BasicEntity) {}

func (s *cameraSystem) Update(float32) {
	g := s.game
	g.Camera.Update(g.ctx, g.Input.Look(), g.Input.Move(), g.frameDT)
}
