// Package locomotion drives a character across the surface of a spherical
// world. A Controller samples one input snapshot per fixed step and runs
// either the movement integrator or the dodge maneuver, switching between
// the Grounded, Airborne and Dodging states.
package locomotion

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/oops"

	"github.com/opd-ai/go-planetwalk/pkg/config"
	"github.com/opd-ai/go-planetwalk/pkg/entity"
	"github.com/opd-ai/go-planetwalk/pkg/event"
	"github.com/opd-ai/go-planetwalk/pkg/gravity"
	"github.com/opd-ai/go-planetwalk/pkg/input"
	"github.com/opd-ai/go-planetwalk/pkg/logging"
	"github.com/opd-ai/go-planetwalk/pkg/physics"
)

// State is the locomotion state of the character
type State int

const (
	Grounded State = iota
	Airborne
	Dodging
)

func (s State) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Airborne:
		return "airborne"
	case Dodging:
		return "dodging"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Rejection reasons published with JumpRejected and DodgeRejected
const (
	ReasonAirborne = "airborne"
	ReasonDodging  = "dodging"
)

// Viewpoint supplies the camera forward for camera-relative input
type Viewpoint interface {
	Forward() mgl64.Vec3
}

// Options carries the optional collaborators of a Controller
type Options struct {
	Logger *logging.Logger
	Bus    *event.Bus
	// LineOfSight is required when the ground source is the probe.
	LineOfSight physics.LineOfSight
	// Viewpoint is used by the camera basis. Without one, camera-relative
	// input falls back to the player's forward.
	Viewpoint Viewpoint
}

// Controller is the locomotion state machine
type Controller struct {
	movement config.MovementConfig
	dodgeCfg config.DodgeConfig

	planet *entity.Planet
	body   physics.Body
	los    physics.LineOfSight
	view   Viewpoint
	logger *logging.Logger
	bus    *event.Bus

	mover *Mover
	dodge *Dodge

	state  State
	resume State

	frame    gravity.Frame
	hasFrame bool
	step     uint64
}

// NewController creates a controller for body on planet. The character
// starts Grounded.
func NewController(movement config.MovementConfig, dodge config.DodgeConfig, planet *entity.Planet, body physics.Body, opts Options) (*Controller, error) {
	if planet == nil {
		return nil, missing("planet")
	}
	if body == nil {
		return nil, missing("body")
	}
	if movement.GroundSource == config.GroundFromProbe && opts.LineOfSight == nil {
		return nil, missing("line_of_sight")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &Controller{
		movement: movement,
		dodgeCfg: dodge,
		planet:   planet,
		body:     body,
		los:      opts.LineOfSight,
		view:     opts.Viewpoint,
		logger:   logger,
		bus:      opts.Bus,
		mover:    NewMover(movement),
		dodge:    NewDodge(dodge),
		state:    Grounded,
		resume:   Grounded,
	}, nil
}

const groundMask = physics.LayerMask(1 << physics.PlanetLayer)

func missing(name string) error {
	return oops.Code("MISSING_COLLABORATOR").With("collaborator", name).Wrap(physics.ErrMissingCollaborator)
}

// SetViewpoint sets the camera used by the camera basis
func (c *Controller) SetViewpoint(v Viewpoint) { c.view = v }

// State returns the current locomotion state
func (c *Controller) State() State { return c.state }

// DodgeElapsedSteps returns the number of steps the active dodge has run
func (c *Controller) DodgeElapsedSteps() int { return c.dodge.Elapsed() }

// DodgeDirection returns the direction captured by the last dodge
func (c *Controller) DodgeDirection() mgl64.Vec3 { return c.dodge.Direction() }

// Frame returns the gravity frame used by the last step
func (c *Controller) Frame() (gravity.Frame, bool) { return c.frame, c.hasFrame }

// Steps returns the number of fixed steps run since the last reset
func (c *Controller) Steps() uint64 { return c.step }

// UpdateConfig replaces the movement and dodge tuning. An active dodge keeps
// its direction but uses the new duration and speed. Switching to the probe
// ground source fails when the controller has no line-of-sight query.
func (c *Controller) UpdateConfig(movement config.MovementConfig, dodge config.DodgeConfig) error {
	if movement.GroundSource == config.GroundFromProbe && c.los == nil {
		return missing("line_of_sight")
	}
	c.movement = movement
	c.dodgeCfg = dodge
	c.mover.cfg = movement
	c.dodge.cfg = dodge
	return nil
}

// Reset returns the controller to Grounded with no dodge in progress
func (c *Controller) Reset() {
	c.dodge.Cancel()
	c.state = Grounded
	c.resume = Grounded
	c.frame = gravity.Frame{}
	c.hasFrame = false
	c.step = 0
}

// Step runs one fixed step with the sampled input
func (c *Controller) Step(ctx context.Context, in input.Snapshot, dt float64) {
	c.step++

	if c.movement.GroundSource == config.GroundFromProbe {
		c.probeGround()
	}

	frame, ok := c.resolveFrame(ctx, c.movement.Basis)
	if !ok {
		return
	}

	if in.Dodge {
		c.triggerDodge(ctx, frame, in.Move)
	}
	if in.Jump {
		c.triggerJump(ctx, frame)
	}

	if c.state == Dodging {
		c.dodge.Step(c.body, c.planet, dt)
		if c.dodge.IsComplete() {
			c.bus.Publish(event.NewTriggerEvent(event.DodgeEnded, c, c.step, "complete"))
			c.transition(ctx, c.resume)
		}
		return
	}
	c.mover.Step(c.body, frame, in.Move, dt)
}

// resolveFrame resolves the gravity frame for basis. A degenerate frame
// holds the previous one; ok is false when there is nothing to hold.
func (c *Controller) resolveFrame(ctx context.Context, basis config.Basis) (gravity.Frame, bool) {
	frame, err := gravity.Resolve(c.body.Position(), c.planet.Center, c.referenceForward(basis))
	if err == nil {
		c.frame = frame
		c.hasFrame = true
		return frame, true
	}

	recordDegenerateFrame(c.hasFrame)
	c.bus.Publish(event.NewFrameEvent(c, c.step, "locomotion", c.hasFrame))
	c.logger.Debug(ctx, "degenerate gravity frame", "step", c.step, "held", c.hasFrame, "error", err.Error())
	return c.frame, c.hasFrame
}

func (c *Controller) referenceForward(basis config.Basis) mgl64.Vec3 {
	if basis == config.BasisCamera && c.view != nil {
		return c.view.Forward()
	}
	return physics.Forward(c.body.Rotation())
}

func (c *Controller) triggerDodge(ctx context.Context, frame gravity.Frame, move mgl64.Vec2) {
	if c.state == Dodging {
		recordTrigger("dodge", OutcomeRejected)
		c.bus.Publish(event.NewTriggerEvent(event.DodgeRejected, c, c.step, ReasonDodging))
		c.logger.Debug(ctx, "dodge rejected", "step", c.step, "reason", ReasonDodging)
		return
	}

	basis := c.dodgeCfg.Basis
	if basis == config.BasisInherit {
		basis = c.movement.Basis
	}
	if basis != c.movement.Basis {
		if f, err := gravity.Resolve(c.body.Position(), c.planet.Center, c.referenceForward(basis)); err == nil {
			frame = f
		}
	}

	dir, ok := c.mover.Intent(frame, move)
	if !ok {
		dir = frame.Forward
	}
	c.dodge.Start(dir)
	c.resume = c.state

	recordTrigger("dodge", OutcomeAccepted)
	c.bus.Publish(event.NewTriggerEvent(event.DodgeStarted, c, c.step, c.state.String()))
	c.transition(ctx, Dodging)
}

func (c *Controller) triggerJump(ctx context.Context, frame gravity.Frame) {
	if c.state == Dodging {
		if !c.dodgeCfg.Cancelable {
			c.rejectJump(ctx, ReasonDodging)
			return
		}
		c.dodge.Cancel()
		recordTrigger("dodge", OutcomeCanceled)
		c.bus.Publish(event.NewTriggerEvent(event.DodgeEnded, c, c.step, "canceled"))
		c.transition(ctx, c.resume)
	}

	if c.state == Airborne {
		c.rejectJump(ctx, ReasonAirborne)
		return
	}

	impulse := c.mover.Jump(c.body, frame)
	recordTrigger("jump", OutcomeAccepted)
	c.bus.Publish(event.NewTriggerEvent(event.Jumped, c, c.step, ""))
	c.logger.Debug(ctx, "jump", "step", c.step, "impulse", impulse)
	c.transition(ctx, Airborne)
}

func (c *Controller) rejectJump(ctx context.Context, reason string) {
	recordTrigger("jump", OutcomeRejected)
	c.bus.Publish(event.NewTriggerEvent(event.JumpRejected, c, c.step, reason))
	c.logger.Debug(ctx, "jump rejected", "step", c.step, "reason", reason)
}

func (c *Controller) transition(ctx context.Context, to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	recordTransition(from, to)
	c.bus.Publish(event.NewStateEvent(c, c.step, from.String(), to.String()))
	c.logger.Debug(ctx, "locomotion state changed", "step", c.step, "from", from.String(), "to", to.String())
}

// setGrounded applies a ground observation. During a dodge it only changes
// the state resumed afterwards.
func (c *Controller) setGrounded(grounded bool) {
	to := Airborne
	if grounded {
		to = Grounded
	}
	if c.state == Dodging {
		c.resume = to
		return
	}
	c.transition(context.Background(), to)
}

// OnContactEnter implements physics.ContactListener
func (c *Controller) OnContactEnter(contact physics.Contact) {
	if c.movement.GroundSource != config.GroundFromContacts || contact.Other != c.planet.ID {
		return
	}
	c.setGrounded(true)
}

// OnContactExit implements physics.ContactListener
func (c *Controller) OnContactExit(contact physics.Contact) {
	if c.movement.GroundSource != config.GroundFromContacts || contact.Other != c.planet.ID {
		return
	}
	c.setGrounded(false)
}

// probeGround casts a short segment along -up through the body's position
// against the planet layer only, so obstacles never count as ground.
// Landing also needs non-positive radial velocity so the take-off step does
// not re-ground the character.
func (c *Controller) probeGround() {
	pos := c.body.Position()
	up, ok := physics.SafeNormalize(pos.Sub(c.planet.Center))
	if !ok {
		return
	}
	d := c.movement.GroundProbeDistance
	_, hit := c.los.Linecast(pos.Add(up.Mul(d)), pos.Sub(up.Mul(d)), groundMask)

	record := c.state
	if record == Dodging {
		record = c.resume
	}
	if hit && record == Airborne && c.body.Velocity().Dot(up) > 0 {
		hit = false
	}
	c.setGrounded(hit)
}
