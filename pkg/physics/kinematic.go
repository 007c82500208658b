package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-planetwalk/pkg/entity"
)

// ContactSlop is how far above the surface a grounded body may drift
// before it reports losing contact
const ContactSlop = 0.05

// KinematicBody is a point body that falls toward the planet center and
// rests on its surface. It implements Body and Stepper and reports ground
// contacts to its listeners.
type KinematicBody struct {
	ID       entity.ID
	Mass     float64
	Gravity  float64
	Friction float64 // tangential damping per second while grounded

	planet    *entity.Planet
	position  mgl64.Vec3
	velocity  mgl64.Vec3
	rotation  mgl64.Quat
	grounded  bool
	listeners []ContactListener
}

// NewKinematicBody creates a body at position on planet
func NewKinematicBody(planet *entity.Planet, position mgl64.Vec3) *KinematicBody {
	b := &KinematicBody{
		ID:       entity.GenerateID(),
		Mass:     1,
		Gravity:  9.81,
		Friction: 8,
		planet:   planet,
		position: position,
		rotation: mgl64.QuatIdent(),
	}
	b.grounded = planet.Altitude(position) <= ContactSlop
	return b
}

// AddListener registers a contact listener
func (b *KinematicBody) AddListener(l ContactListener) {
	b.listeners = append(b.listeners, l)
}

func (b *KinematicBody) Position() mgl64.Vec3 { return b.position }
func (b *KinematicBody) Rotation() mgl64.Quat { return b.rotation }
func (b *KinematicBody) Velocity() mgl64.Vec3 { return b.velocity }

// Grounded reports whether the body currently rests on the planet
func (b *KinematicBody) Grounded() bool { return b.grounded }

func (b *KinematicBody) MovePosition(p mgl64.Vec3) { b.position = p }
func (b *KinematicBody) MoveRotation(q mgl64.Quat) { b.rotation = q.Normalize() }

func (b *KinematicBody) ApplyImpulse(impulse mgl64.Vec3) {
	mass := b.Mass
	if mass <= 0 {
		mass = 1
	}
	b.velocity = b.velocity.Add(impulse.Mul(1 / mass))
}

func (b *KinematicBody) ApplyVelocityChange(v mgl64.Vec3) {
	b.velocity = b.velocity.Add(v)
}

// Teleport places the body without notifying listeners and clears velocity
func (b *KinematicBody) Teleport(p mgl64.Vec3, q mgl64.Quat) {
	b.position = p
	b.rotation = q.Normalize()
	b.velocity = mgl64.Vec3{}
	b.grounded = b.planet.Altitude(p) <= ContactSlop
}

// Step integrates gravity and resolves contact with the planet surface
func (b *KinematicBody) Step(dt float64) {
	up, ok := SafeNormalize(b.position.Sub(b.planet.Center))
	if !ok {
		return
	}

	b.velocity = b.velocity.Sub(up.Mul(b.Gravity * dt))
	b.position = b.position.Add(b.velocity.Mul(dt))

	altitude := b.planet.Altitude(b.position)
	switch {
	case altitude <= 0:
		up = Normalize(b.position.Sub(b.planet.Center))
		b.position = b.planet.Center.Add(up.Mul(b.planet.Radius))
		if radial := b.velocity.Dot(up); radial < 0 {
			b.velocity = b.velocity.Sub(up.Mul(radial))
		}
		damping := 1 - b.Friction*dt
		if damping < 0 {
			damping = 0
		}
		b.velocity = b.velocity.Mul(damping)
		if !b.grounded {
			b.grounded = true
			b.notify(true, up)
		}
	case altitude > ContactSlop && b.grounded:
		b.grounded = false
		b.notify(false, up)
	}
}

func (b *KinematicBody) notify(enter bool, normal mgl64.Vec3) {
	c := Contact{
		Other:  b.planet.ID,
		Point:  b.planet.SurfacePoint(b.position),
		Normal: normal,
	}
	for _, l := range b.listeners {
		if enter {
			l.OnContactEnter(c)
		} else {
			l.OnContactExit(c)
		}
	}
}
