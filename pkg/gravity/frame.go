// Package gravity resolves the local reference frame of a body standing on
// a spherical world, where "up" points away from the planet center.
package gravity

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/oops"

	"github.com/opd-ai/go-planetwalk/pkg/physics"
)

// ErrDegenerateFrame is returned when the body coincides with the planet
// center and no up direction exists.
var ErrDegenerateFrame = errors.New("degenerate gravity frame")

// Frame is an orthonormal basis tangent to the sphere at the body
type Frame struct {
	Up      mgl64.Vec3
	Right   mgl64.Vec3
	Forward mgl64.Vec3
}

// Resolve derives the gravity frame at playerPos. referenceForward picks
// the heading of the tangent basis; when it is parallel to up, world X
// (then world Z) is used instead.
func Resolve(playerPos, planetCenter, referenceForward mgl64.Vec3) (Frame, error) {
	up, ok := physics.SafeNormalize(playerPos.Sub(planetCenter))
	if !ok {
		return Frame{}, oops.
			Code("DEGENERATE_FRAME").
			With("position", playerPos).
			With("center", planetCenter).
			Wrap(ErrDegenerateFrame)
	}

	forward, ok := physics.SafeNormalize(physics.ProjectOnPlane(referenceForward, up))
	if !ok {
		forward = physics.Perpendicular(up)
	}

	return Frame{
		Up:      up,
		Right:   physics.Normalize(up.Cross(forward)),
		Forward: forward,
	}, nil
}

// Tangent projects v onto the plane orthogonal to Up
func (f Frame) Tangent(v mgl64.Vec3) mgl64.Vec3 {
	return physics.ProjectOnPlane(v, f.Up)
}

// Compose maps a 2-D input (x = right, y = forward) into the tangent plane
func (f Frame) Compose(x, y float64) mgl64.Vec3 {
	return f.Right.Mul(x).Add(f.Forward.Mul(y))
}

// Rotation returns the rotation whose axes match the frame
func (f Frame) Rotation() mgl64.Quat {
	return physics.LookRotation(f.Forward, f.Up)
}
