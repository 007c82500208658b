// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length below which a vector is treated as zero
const Epsilon = 1e-6

// Local axes of a body. Forward is +Z, right is +X and up is +Y.
var (
	AxisRight   = mgl64.Vec3{1, 0, 0}
	AxisUp      = mgl64.Vec3{0, 1, 0}
	AxisForward = mgl64.Vec3{0, 0, 1}
)

// Normalize returns a unit vector in the same direction, or the zero
// vector when v is (near) zero
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	n, ok := SafeNormalize(v)
	if !ok {
		return mgl64.Vec3{}
	}
	return n
}

// SafeNormalize normalizes v and reports whether v was long enough to
// have a direction
func SafeNormalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// ProjectOnPlane removes the component of v along normal. normal must be
// unit length.
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(normal.Mul(v.Dot(normal)))
}

// ClampMagnitude shortens v to at most max
func ClampMagnitude(v mgl64.Vec3, max float64) mgl64.Vec3 {
	l := v.Len()
	if l > max && l > 0 {
		return v.Mul(max / l)
	}
	return v
}

// Perpendicular returns some unit vector orthogonal to n
func Perpendicular(n mgl64.Vec3) mgl64.Vec3 {
	if p, ok := SafeNormalize(ProjectOnPlane(AxisRight, n)); ok {
		return p
	}
	return Normalize(ProjectOnPlane(AxisForward, n))
}

// LookRotation builds the rotation whose forward axis points along
// forward and whose up axis is as close to up as possible
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	f, ok := SafeNormalize(forward)
	if !ok {
		return mgl64.QuatIdent()
	}
	r, ok := SafeNormalize(up.Cross(f))
	if !ok {
		// up parallel to forward
		r = Perpendicular(f)
	}
	u := f.Cross(r)
	m := mgl64.Mat3FromCols(r, u, f)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// Slerp interpolates along the shortest arc between a and b. t is
// clamped to [0, 1].
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = mgl64.Clamp(t, 0, 1)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

// Forward returns the forward axis of rotation q
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(AxisForward)
}

// Up returns the up axis of rotation q
func Up(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(AxisUp)
}

// SmoothDamp moves current toward target with a critically damped spring.
// velocity is carried between calls by the caller. smoothTime is roughly
// the time to reach the target; maxSpeed caps the approach speed (use
// math.Inf(1) for no cap).
func SmoothDamp(current, target mgl64.Vec3, velocity *mgl64.Vec3, smoothTime, maxSpeed, dt float64) mgl64.Vec3 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := ClampMagnitude(current.Sub(target), maxSpeed*smoothTime)
	originalTo := target
	target = current.Sub(change)

	temp := velocity.Add(change.Mul(omega)).Mul(dt)
	*velocity = velocity.Sub(temp.Mul(omega)).Mul(exp)
	output := target.Add(change.Add(temp).Mul(exp))

	// Do not overshoot
	if originalTo.Sub(current).Dot(output.Sub(originalTo)) > 0 {
		output = originalTo
		*velocity = mgl64.Vec3{}
	}
	return output
}
