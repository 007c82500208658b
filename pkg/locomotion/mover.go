// pkg/locomotion/mover.go
package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-planetwalk/pkg/config"
	"github.com/opd-ai/go-planetwalk/pkg/gravity"
	"github.com/opd-ai/go-planetwalk/pkg/physics"
)

// Motion is the outcome of one integrator step
type Motion struct {
	Delta  mgl64.Vec3
	Target mgl64.Vec3
	Moved  bool
}

// Mover integrates movement input in the tangent plane of the gravity frame
type Mover struct {
	cfg config.MovementConfig
}

// NewMover creates a movement integrator
func NewMover(cfg config.MovementConfig) *Mover {
	return &Mover{cfg: cfg}
}

// Intent maps a 2-D input onto the frame's tangent plane. ok is false when
// the input lies inside the deadzone.
func (m *Mover) Intent(frame gravity.Frame, move mgl64.Vec2) (mgl64.Vec3, bool) {
	if move.Len() < m.cfg.Deadzone {
		return mgl64.Vec3{}, false
	}
	return physics.SafeNormalize(frame.Compose(move[0], move[1]))
}

// Step moves body along the input and turns it toward the move direction.
// Inputs inside the deadzone produce no move request.
func (m *Mover) Step(body physics.Body, frame gravity.Frame, move mgl64.Vec2, dt float64) Motion {
	dir, ok := m.Intent(frame, move)
	if !ok {
		if m.cfg.AlignToSurface {
			m.Align(body, frame, dt)
		}
		return Motion{}
	}

	delta := dir.Mul(m.cfg.Speed * dt)
	target := body.Position().Add(delta)
	body.MovePosition(target)

	facing := physics.LookRotation(dir, frame.Up)
	body.MoveRotation(physics.Slerp(body.Rotation(), facing, m.cfg.RotationSpeed*dt))

	return Motion{Delta: delta, Target: target, Moved: true}
}

// Align turns body so its up axis follows the gravity up while keeping its
// heading
func (m *Mover) Align(body physics.Body, frame gravity.Frame, dt float64) {
	rot := body.Rotation()
	heading, ok := physics.SafeNormalize(frame.Tangent(physics.Forward(rot)))
	if !ok {
		heading = frame.Forward
	}
	target := physics.LookRotation(heading, frame.Up)
	if rot.OrientationEqualThreshold(target, physics.Epsilon) {
		return
	}
	body.MoveRotation(physics.Slerp(rot, target, m.cfg.RotationSpeed*dt))
}

// Jump applies the jump impulse along the frame's up axis
func (m *Mover) Jump(body physics.Body, frame gravity.Frame) mgl64.Vec3 {
	impulse := frame.Up.Mul(m.cfg.JumpForce)
	body.ApplyImpulse(impulse)
	return impulse
}
