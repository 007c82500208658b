// pkg/engine/game.go
package engine

import (
	"context"
	"math"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/oops"

	"github.com/opd-ai/go-planetwalk/pkg/camera"
	"github.com/opd-ai/go-planetwalk/pkg/config"
	"github.com/opd-ai/go-planetwalk/pkg/entity"
	"github.com/opd-ai/go-planetwalk/pkg/event"
	"github.com/opd-ai/go-planetwalk/pkg/input"
	"github.com/opd-ai/go-planetwalk/pkg/locomotion"
	"github.com/opd-ai/go-planetwalk/pkg/logging"
	"github.com/opd-ai/go-planetwalk/pkg/physics"
)

// ErrMissingCollaborator is returned when a required collaborator is nil
var ErrMissingCollaborator = physics.ErrMissingCollaborator

// GameStatus is the lifecycle state of a play session
type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusEnded
)

// Collaborators are the external systems a Game drives. Stepper, Logger
// and Bus are optional.
type Collaborators struct {
	Planet      *entity.Planet
	Body        physics.Body
	LineOfSight physics.LineOfSight
	Input       input.Source
	Stepper     physics.Stepper
	Logger      *logging.Logger
	Bus         *event.Bus
}

// Game runs the locomotion core at a fixed step and the camera once per
// rendered frame
type Game struct {
	Config     *config.Config
	Planet     *entity.Planet
	Body       physics.Body
	Input      input.Source
	Controller *locomotion.Controller
	Camera     *camera.Orbit
	EventBus   *event.Bus
	Logger     *logging.Logger

	Status      GameStatus
	TimeStep    float64 // seconds per fixed step
	CurrentTick uint64  // fixed steps since start
	Frames      uint64

	mu          sync.Mutex
	ctx         context.Context
	accumulator float64
	frameDT     float64
	fixed       *ecs.World
	frame       *ecs.World
}

// NewGame wires the controller and camera to the collaborators. cfg may be
// nil for the default tuning.
func NewGame(cfg *config.Config, c Collaborators) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if c.Input == nil {
		return nil, missing("input")
	}
	if c.Logger == nil {
		c.Logger = logging.Nop()
	}
	if c.Bus == nil {
		c.Bus = event.NewEventBus()
	}

	controller, err := locomotion.NewController(cfg.Movement, cfg.Dodge, c.Planet, c.Body, locomotion.Options{
		Logger:      c.Logger,
		Bus:         c.Bus,
		LineOfSight: c.LineOfSight,
	})
	if err != nil {
		return nil, err
	}
	orbit, err := camera.NewOrbit(cfg.Camera, c.Planet, c.Body, c.LineOfSight, camera.Options{
		Logger:   c.Logger,
		Bus:      c.Bus,
		Deadzone: cfg.Movement.Deadzone,
	})
	if err != nil {
		return nil, err
	}
	controller.SetViewpoint(orbit)

	if l, ok := c.Body.(interface{ AddListener(physics.ContactListener) }); ok {
		l.AddListener(controller)
	}

	g := &Game{
		Config:     cfg,
		Planet:     c.Planet,
		Body:       c.Body,
		Input:      c.Input,
		Controller: controller,
		Camera:     orbit,
		EventBus:   c.Bus,
		Logger:     c.Logger,
		TimeStep:   cfg.Simulation.FixedStep,
		ctx:        context.Background(),
		fixed:      &ecs.World{},
		frame:      &ecs.World{},
	}

	g.fixed.AddSystem(&locomotionSystem{game: g})
	if c.Stepper != nil {
		g.fixed.AddSystem(&physicsSystem{game: g, stepper: c.Stepper})
	}
	g.frame.AddSystem(&cameraSystem{game: g})

	return g, nil
}

func missing(name string) error {
	return oops.Code("MISSING_COLLABORATOR").With("collaborator", name).Wrap(ErrMissingCollaborator)
}

// AddFixedSystem adds a system that runs once per fixed step, after the
// locomotion and physics systems unless it reports a higher priority
func (g *Game) AddFixedSystem(s ecs.System) {
	g.fixed.AddSystem(s)
}

// AddFrameSystem adds a system that runs once per rendered frame, after the
// camera unless it reports a higher priority
func (g *Game) AddFrameSystem(s ecs.System) {
	g.frame.AddSystem(s)
}

// Start begins a play session. Every log entry of the session carries its
// session ID.
func (g *Game) Start(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ctx = logging.WithSessionID(ctx, logging.GetSessionID(ctx))
	g.Status = GameStatusActive
	g.EventBus.Publish(&event.BaseEvent{EventType: event.SessionStarted, Source: g})
	g.Logger.Info(g.ctx, "session started",
		"planet", g.Planet.Name,
		"fixed_step", g.TimeStep,
		"movement_basis", g.Config.Movement.Basis.String(),
		"dodge_mode", g.Config.Dodge.Mode.String(),
	)
}

// Stop ends the play session
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != GameStatusActive {
		return
	}
	g.Status = GameStatusEnded
	g.Logger.Info(g.ctx, "session ended", "steps", g.CurrentTick, "frames", g.Frames)
}

// Context returns the session context
func (g *Game) Context() context.Context {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ctx
}

// Frame advances the session by dt seconds of rendered time. It runs as many
// fixed steps as fit in the accumulated time, at most MaxStepsPerFrame, and
// then updates the camera. It returns the number of fixed steps run.
func (g *Game) Frame(dt float64) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != GameStatusActive || dt <= 0 {
		return 0
	}

	g.accumulator += dt
	limit := g.Config.Simulation.MaxStepsPerFrame
	steps := 0
	for g.accumulator+stepEpsilon >= g.TimeStep {
		if limit > 0 && steps >= limit {
			dropped := g.accumulator
			g.accumulator = math.Mod(g.accumulator, g.TimeStep)
			dropped -= g.accumulator
			recordDropped(dropped)
			g.Logger.Warn(g.ctx, "simulation falling behind, dropping time",
				"dropped_seconds", dropped, "steps", steps)
			break
		}
		g.fixed.Update(float32(g.TimeStep))
		g.accumulator -= g.TimeStep
		g.CurrentTick++
		steps++
	}
	if g.accumulator < 0 {
		g.accumulator = 0
	}
	recordSteps(steps)

	g.frameDT = dt
	g.frame.Update(float32(dt))
	g.Frames++
	return steps
}

// stepEpsilon absorbs rounding when the accumulated time is a whole number
// of steps
const stepEpsilon = 1e-9

// Reset respawns the character at the configured spawn point and resets the
// controller, camera and input
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if t, ok := g.Body.(interface {
		Teleport(p mgl64.Vec3, q mgl64.Quat)
	}); ok {
		t.Teleport(g.Config.Player.Spawn, mgl64.QuatIdent())
	}
	if r, ok := g.Input.(interface{ Reset() }); ok {
		r.Reset()
	}
	g.Controller.Reset()
	g.Camera.Reset()
	g.accumulator = 0
	g.CurrentTick = 0

	g.EventBus.Publish(&event.BaseEvent{EventType: event.SessionReset, Source: g})
	g.Logger.Info(g.ctx, "session reset", "spawn", g.Config.Player.Spawn)
}

// UpdateConfig applies new movement, dodge and camera tuning to a running
// session. The fixed step and planet are not changed.
func (g *Game) UpdateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.Camera.SetConfig(cfg.Camera); err != nil {
		return err
	}
	if err := g.Controller.UpdateConfig(cfg.Movement, cfg.Dodge); err != nil {
		return err
	}
	g.Camera.SetDeadzone(cfg.Movement.Deadzone)
	updated := *cfg
	updated.Simulation.FixedStep = g.TimeStep
	updated.Planet = g.Config.Planet
	g.Config = &updated
	return nil
}
