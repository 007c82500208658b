// pkg/entity/planet.go
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Planet is the spherical world the character walks on. Its center and
// radius are treated as immutable for the duration of a frame.
type Planet struct {
	ID     ID
	Name   string
	Center mgl64.Vec3
	Radius float64
}

// NewPlanet creates a planet with a fresh ID
func NewPlanet(name string, center mgl64.Vec3, radius float64) *Planet {
	return &Planet{
		ID:     GenerateID(),
		Name:   name,
		Center: center,
		Radius: radius,
	}
}

// DistanceTo returns the distance from point to the planet center
func (p *Planet) DistanceTo(point mgl64.Vec3) float64 {
	return point.Sub(p.Center).Len()
}

// Altitude returns the height of point above the surface. Negative values
// are below the surface.
func (p *Planet) Altitude(point mgl64.Vec3) float64 {
	return p.DistanceTo(point) - p.Radius
}

// SurfacePoint projects point radially onto the surface. The result is
// undefined (NaN) when point is the center.
func (p *Planet) SurfacePoint(point mgl64.Vec3) mgl64.Vec3 {
	dir := point.Sub(p.Center)
	l := dir.Len()
	if l == 0 {
		return mgl64.Vec3{math.NaN(), math.NaN(), math.NaN()}
	}
	return p.Center.Add(dir.Mul(p.Radius / l))
}
