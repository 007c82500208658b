// pkg/render/projection.go
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Projector maps world points to screen coordinates through a pinhole
// camera whose forward axis is +Z
type Projector struct {
	Width  float64
	Height float64
	FOV    float64 // vertical field of view in degrees
	Near   float64
}

// NewProjector creates a projector for a width x height screen
func NewProjector(width, height, fov float64) Projector {
	return Projector{Width: width, Height: height, FOV: fov, Near: 0.05}
}

// focal returns the distance to the image plane in screen units
func (p Projector) focal() float64 {
	return (p.Height / 2) / math.Tan(mgl64.DegToRad(p.FOV)/2)
}

// Project returns the screen position of point seen from a camera at eye
// with rotation rot, and its depth along the view axis. ok is false for
// points behind the near plane.
func (p Projector) Project(eye mgl64.Vec3, rot mgl64.Quat, point mgl64.Vec3) (screen mgl64.Vec2, depth float64, ok bool) {
	local := rot.Conjugate().Rotate(point.Sub(eye))
	depth = local.Z()
	if depth <= p.Near {
		return mgl64.Vec2{}, depth, false
	}
	f := p.focal()
	return mgl64.Vec2{
		p.Width/2 + local.X()/depth*f,
		p.Height/2 - local.Y()/depth*f,
	}, depth, true
}

// Scale returns the screen size of a world length seen at depth
func (p Projector) Scale(length, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return length / depth * p.focal()
}

// OnScreen reports whether a screen position lies inside the viewport
func (p Projector) OnScreen(s mgl64.Vec2) bool {
	return s.X() >= 0 && s.X() < p.Width && s.Y() >= 0 && s.Y() < p.Height
}

// Lattice returns n points spread evenly over a sphere (a Fibonacci
// lattice). They give the surface visible texture in views.
func Lattice(center mgl64.Vec3, radius float64, n int) []mgl64.Vec3 {
	points := make([]mgl64.Vec3, 0, n)
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := 0; i < n; i++ {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(1 - y*y)
		theta := golden * float64(i)
		dir := mgl64.Vec3{math.Cos(theta) * r, y, math.Sin(theta) * r}
		points = append(points, center.Add(dir.Mul(radius)))
	}
	return points
}

// FacesEye reports whether a point on a sphere's surface is on the
// hemisphere turned toward eye
func FacesEye(center, point, eye mgl64.Vec3) bool {
	return point.Sub(center).Dot(eye.Sub(point)) > 0
}
