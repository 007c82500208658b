// pkg/engine/scene.go
package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-planetwalk/pkg/config"
	"github.com/opd-ai/go-planetwalk/pkg/entity"
	"github.com/opd-ai/go-planetwalk/pkg/event"
	"github.com/opd-ai/go-planetwalk/pkg/input"
	"github.com/opd-ai/go-planetwalk/pkg/logging"
	"github.com/opd-ai/go-planetwalk/pkg/physics"
)

// Scene is the reference world built from a configuration: the planet, its
// obstacles and a kinematic body for the player
type Scene struct {
	Planet *entity.Planet
	World  *physics.World
	Body   *physics.KinematicBody
}

// NewScene builds the reference world described by cfg
func NewScene(cfg *config.Config) *Scene {
	planet := entity.NewPlanet(cfg.Planet.Name, cfg.Planet.Center, cfg.Planet.Radius)

	world := physics.NewWorld(planet)
	for _, o := range cfg.Planet.Obstacles {
		world.AddObstacle(physics.Sphere{Center: o.Center, Radius: o.Radius}, physics.ObstacleLayer)
	}

	body := physics.NewKinematicBody(planet, cfg.Player.Spawn)
	body.Gravity = cfg.Planet.Gravity
	if cfg.Player.Mass > 0 {
		body.Mass = cfg.Player.Mass
	}
	body.Teleport(cfg.Player.Spawn, mgl64.QuatIdent())

	return &Scene{Planet: planet, World: world, Body: body}
}

// NewSceneGame builds the reference scene and a Game driving it from src
func NewSceneGame(cfg *config.Config, src input.Source, logger *logging.Logger, bus *event.Bus) (*Game, *Scene, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	scene := NewScene(cfg)
	game, err := NewGame(cfg, Collaborators{
		Planet:      scene.Planet,
		Body:        scene.Body,
		LineOfSight: scene.World,
		Input:       src,
		Stepper:     scene.Body,
		Logger:      logger,
		Bus:         bus,
	})
	if err != nil {
		return nil, nil, err
	}
	return game, scene, nil
}
