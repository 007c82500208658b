// Package camera implements a third-person orbit camera for a character
// walking on a spherical world. Yaw turns about the local up axis, pitch
// about the yawed right axis, and the camera is pulled in front of any
// geometry blocking its view of the character.
package camera

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/oops"

	"github.com/opd-ai/go-planetwalk/pkg/config"
	"github.com/opd-ai/go-planetwalk/pkg/entity"
	"github.com/opd-ai/go-planetwalk/pkg/event"
	"github.com/opd-ai/go-planetwalk/pkg/gravity"
	"github.com/opd-ai/go-planetwalk/pkg/logging"
	"github.com/opd-ai/go-planetwalk/pkg/physics"
)

// DefaultDeadzone is the move-input magnitude above which the facing
// policy turns the character
const DefaultDeadzone = 0.1

// Options carries the optional collaborators of an Orbit
type Options struct {
	Logger *logging.Logger
	Bus    *event.Bus
	// Deadzone for the facing policy. Zero means DefaultDeadzone.
	Deadzone float64
}

// Orbit is the orbit camera state
type Orbit struct {
	cfg      config.CameraConfig
	planet   *entity.Planet
	body     physics.Body
	los      physics.LineOfSight
	logger   *logging.Logger
	bus      *event.Bus
	deadzone float64

	yaw   float64
	pitch float64
	// reference is the yaw-zero forward. It is re-projected onto the tangent
	// plane every update so it follows the character around the sphere.
	reference mgl64.Vec3

	position mgl64.Vec3
	velocity mgl64.Vec3
	rotation mgl64.Quat
	frame    gravity.Frame
	hasFrame bool
	occluded bool
	snap     bool
	updates  uint64
}

// NewOrbit creates a camera behind body. The first Update places the
// camera on its target without smoothing.
func NewOrbit(cfg config.CameraConfig, planet *entity.Planet, body physics.Body, los physics.LineOfSight, opts Options) (*Orbit, error) {
	switch {
	case planet == nil:
		return nil, missing("planet")
	case body == nil:
		return nil, missing("body")
	case los == nil:
		return nil, missing("line_of_sight")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &Orbit{
		cfg:      cfg,
		planet:   planet,
		body:     body,
		los:      los,
		logger:   opts.Logger,
		bus:      opts.Bus,
		deadzone: opts.Deadzone,
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}
	if o.deadzone <= 0 {
		o.deadzone = DefaultDeadzone
	}
	o.Reset()
	return o, nil
}

func missing(name string) error {
	return oops.Code("MISSING_COLLABORATOR").With("collaborator", name).Wrap(physics.ErrMissingCollaborator)
}

// Reset puts the camera behind the character with zero yaw and the pitch
// closest to level, and snaps it on the next update
func (o *Orbit) Reset() {
	o.yaw = 0
	o.pitch = mgl64.Clamp(0, o.cfg.PitchLimits.X(), o.cfg.PitchLimits.Y())
	o.reference = physics.Forward(o.body.Rotation())
	o.velocity = mgl64.Vec3{}
	o.occluded = false
	o.hasFrame = false
	o.snap = true

	o.rotation = mgl64.QuatIdent()
	if frame, err := gravity.Resolve(o.body.Position(), o.planet.Center, o.reference); err == nil {
		o.frame, o.hasFrame = frame, true
		o.reference = frame.Forward
		o.rotation = o.orientation(frame)
		o.position = o.desired(frame, o.rotation)
	}
}

// Snap places the camera on its target on the next update
func (o *Orbit) Snap() { o.snap = true }

// SetConfig replaces the tuning. Pitch limits must be ordered; the current
// pitch is re-clamped to the new limits.
func (o *Orbit) SetConfig(cfg config.CameraConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	o.pitch = mgl64.Clamp(o.pitch, cfg.PitchLimits.X(), cfg.PitchLimits.Y())
	return nil
}

// SetFacingPolicy turns the camera-yaw facing policy on or off
func (o *Orbit) SetFacingPolicy(on bool) { o.cfg.FaceCameraYaw = on }

// SetDeadzone replaces the move magnitude the facing policy ignores.
// Non-positive values restore DefaultDeadzone.
func (o *Orbit) SetDeadzone(d float64) {
	if d <= 0 {
		d = DefaultDeadzone
	}
	o.deadzone = d
}

// Deadzone returns the move magnitude the facing policy ignores
func (o *Orbit) Deadzone() float64 { return o.deadzone }

// FacingPolicy reports whether the camera turns the character
func (o *Orbit) FacingPolicy() bool { return o.cfg.FaceCameraYaw }

func (o *Orbit) Position() mgl64.Vec3 { return o.position }
func (o *Orbit) Rotation() mgl64.Quat { return o.rotation }
func (o *Orbit) Yaw() float64         { return o.yaw }
func (o *Orbit) Pitch() float64       { return o.pitch }

// Forward returns the camera's viewing direction
func (o *Orbit) Forward() mgl64.Vec3 { return physics.Forward(o.rotation) }

// Occluded reports whether geometry blocked the last desired position
func (o *Orbit) Occluded() bool { return o.occluded }

// Update applies look input and moves the camera toward its target pose.
// It runs once per rendered frame, after the fixed steps.
func (o *Orbit) Update(ctx context.Context, look, move mgl64.Vec2, dt float64) {
	o.updates++
	o.yaw += look.X() * o.cfg.Sensitivity.X()
	o.pitch = mgl64.Clamp(o.pitch-look.Y()*o.cfg.Sensitivity.Y(), o.cfg.PitchLimits.X(), o.cfg.PitchLimits.Y())

	playerPos := o.body.Position()
	frame, err := gravity.Resolve(playerPos, o.planet.Center, o.reference)
	if err != nil {
		recordDegenerateFrame(o.hasFrame)
		o.bus.Publish(event.NewFrameEvent(o, o.updates, "camera", o.hasFrame))
		o.logger.Debug(ctx, "degenerate gravity frame", "component", "camera", "held", o.hasFrame)
		if !o.hasFrame {
			return
		}
		frame = o.frame
	}
	o.frame, o.hasFrame = frame, true
	o.reference = frame.Forward

	rot := o.orientation(frame)
	pivot := playerPos.Add(frame.Up.Mul(o.cfg.Height))
	target := o.desired(frame, rot)

	hit, blocked := o.los.Linecast(pivot, target, physics.LayerMask(o.cfg.CollisionLayers))
	if blocked {
		target = hit.Point.Add(hit.Normal.Mul(o.cfg.CollisionOffset))
		if !o.occluded {
			recordOcclusion()
			o.bus.Publish(event.NewTriggerEvent(event.CameraOccluded, o, o.updates, "blocked"))
		}
	}
	o.occluded = blocked

	if o.snap {
		o.position = target
		o.velocity = mgl64.Vec3{}
		o.snap = false
	} else {
		o.position = physics.SmoothDamp(o.position, target, &o.velocity, dt*o.cfg.SmoothSpeed, math.Inf(1), dt)
	}

	if view, ok := physics.SafeNormalize(pivot.Sub(o.position)); ok {
		o.rotation = physics.LookRotation(view, frame.Up)
	} else {
		o.rotation = rot
	}

	if o.cfg.FaceCameraYaw && move.Len() > o.deadzone {
		facing := o.yawRotation(frame)
		o.body.MoveRotation(physics.Slerp(o.body.Rotation(), facing, dt*o.cfg.SmoothSpeed))
	}
}

// yawRotation turns the yaw-zero basis about up by the current yaw
func (o *Orbit) yawRotation(frame gravity.Frame) mgl64.Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(o.yaw), frame.Up)
	return yaw.Mul(frame.Rotation()).Normalize()
}

// orientation composes the pitch about the yawed right axis onto the yaw
// rotation
func (o *Orbit) orientation(frame gravity.Frame) mgl64.Quat {
	yaw := o.yawRotation(frame)
	right, ok := physics.SafeNormalize(frame.Up.Cross(physics.Forward(yaw)))
	if !ok {
		return yaw
	}
	pitch := mgl64.QuatRotate(mgl64.DegToRad(o.pitch), right)
	return pitch.Mul(yaw).Normalize()
}

func (o *Orbit) desired(frame gravity.Frame, rot mgl64.Quat) mgl64.Vec3 {
	return o.body.Position().
		Add(frame.Up.Mul(o.cfg.Height)).
		Sub(physics.Forward(rot).Mul(o.cfg.Distance))
}
