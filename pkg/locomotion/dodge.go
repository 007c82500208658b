// pkg/locomotion/dodge.go
package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-planetwalk/pkg/config"
	"github.com/opd-ai/go-planetwalk/pkg/entity"
	"github.com/opd-ai/go-planetwalk/pkg/physics"
)

// Dodge is a timed burst of movement along a direction captured when it
// starts. Its duration is counted in fixed steps.
type Dodge struct {
	cfg       config.DodgeConfig
	direction mgl64.Vec3
	elapsed   int
	active    bool
	complete  bool
}

// NewDodge creates an idle dodge maneuver
func NewDodge(cfg config.DodgeConfig) *Dodge {
	return &Dodge{cfg: cfg}
}

// Start begins a dodge along direction, which should already be tangent to
// the sphere
func (d *Dodge) Start(direction mgl64.Vec3) {
	d.direction = physics.Normalize(direction)
	d.elapsed = 0
	d.active = true
	d.complete = false
}

// Step advances the dodge by one fixed step and returns the displacement
// requested (surface-locked mode) or the velocity change applied (impulse
// mode). It is a no-op when no dodge is active.
func (d *Dodge) Step(body physics.Body, planet *entity.Planet, dt float64) mgl64.Vec3 {
	if !d.active {
		return mgl64.Vec3{}
	}

	var out mgl64.Vec3
	switch d.cfg.Mode {
	case config.DodgeImpulse:
		out = d.direction.Mul(d.cfg.Force)
		body.ApplyVelocityChange(out)
	default:
		pos := body.Position()
		radius := pos.Sub(planet.Center).Len()
		candidate := pos.Add(d.direction.Mul(d.cfg.Speed * dt))
		target := candidate
		if up, ok := physics.SafeNormalize(candidate.Sub(planet.Center)); ok {
			target = planet.Center.Add(up.Mul(radius))
		}
		body.MovePosition(target)
		out = target.Sub(pos)
	}

	d.elapsed++
	if d.elapsed >= d.cfg.DurationSteps {
		d.elapsed = 0
		d.active = false
		d.complete = true
	}
	return out
}

// IsComplete reports whether the last Step finished the dodge
func (d *Dodge) IsComplete() bool { return d.complete }

// Elapsed returns the number of steps taken by the active dodge
func (d *Dodge) Elapsed() int { return d.elapsed }

// Direction returns the captured dodge direction
func (d *Dodge) Direction() mgl64.Vec3 { return d.direction }

// Active reports whether a dodge is in progress
func (d *Dodge) Active() bool { return d.active }

// Cancel stops the dodge without completing it
func (d *Dodge) Cancel() {
	d.elapsed = 0
	d.active = false
	d.complete = false
}
