package physics

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-planetwalk/pkg/entity"
)

// ErrMissingCollaborator is returned by constructors handed a nil planet,
// body, line-of-sight query or input source
var ErrMissingCollaborator = errors.New("missing collaborator")

// Body is the physics collaborator's handle on the controlled character.
// The core never writes position or rotation directly; it asks the body to
// move so the collaborator's own collision resolution still applies.
type Body interface {
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	Velocity() mgl64.Vec3

	// MovePosition requests a move to p during the current step.
	MovePosition(p mgl64.Vec3)
	// MoveRotation requests the body to turn to q during the current step.
	MoveRotation(q mgl64.Quat)
	// ApplyImpulse adds a one-shot impulse (mass dependent).
	ApplyImpulse(impulse mgl64.Vec3)
	// ApplyVelocityChange adds v to the velocity (mass independent).
	ApplyVelocityChange(v mgl64.Vec3)
}

// LayerMask selects which collision layers a query considers
type LayerMask uint32

// AllLayers matches every layer
const AllLayers LayerMask = ^LayerMask(0)

// Contains reports whether layer (0-31) is in the mask
func (m LayerMask) Contains(layer uint8) bool {
	return m&(1<<layer) != 0
}

// Hit describes the first surface crossed by a line query
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Body     entity.ID
}

// LineOfSight answers segment queries against scene geometry
type LineOfSight interface {
	Linecast(from, to mgl64.Vec3, mask LayerMask) (Hit, bool)
}

// Contact identifies the other body of a contact-enter/exit callback
type Contact struct {
	Other  entity.ID
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// ContactListener receives contact callbacks from the physics collaborator
type ContactListener interface {
	OnContactEnter(c Contact)
	OnContactExit(c Contact)
}

// Stepper is implemented by collaborators that integrate once per fixed step
type Stepper interface {
	Step(dt float64)
}
