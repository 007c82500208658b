// pkg/physics/collision.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-planetwalk/pkg/entity"
)

// Layer assignments used by the reference world
const (
	PlanetLayer   uint8 = 0
	ObstacleLayer uint8 = 1
)

// Sphere represents a spherical collision shape
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Contains reports whether point lies inside the sphere
func (s Sphere) Contains(point mgl64.Vec3) bool {
	return point.Sub(s.Center).LenSqr() < s.Radius*s.Radius
}

// Collides checks if two spheres overlap
func (s Sphere) Collides(other Sphere) bool {
	return s.Center.Sub(other.Center).Len() < s.Radius+other.Radius
}

// Raycast returns the distance along dir (unit length) at which a ray
// from origin enters the sphere. Rays starting inside the sphere do not
// hit it.
func (s Sphere) Raycast(origin, dir mgl64.Vec3, maxDistance float64) (float64, bool) {
	if s.Contains(origin) {
		return 0, false
	}
	oc := origin.Sub(s.Center)
	b := oc.Dot(dir)
	c := oc.LenSqr() - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}

// Obstacle is a static sphere placed in the scene
type Obstacle struct {
	ID    entity.ID
	Shape Sphere
	Layer uint8
}

// World is a minimal stand-in for the physics engine: a planet plus static
// sphere obstacles, answering line-of-sight queries.
type World struct {
	Planet    *entity.Planet
	obstacles []Obstacle
}

// NewWorld creates a world around planet
func NewWorld(planet *entity.Planet) *World {
	return &World{Planet: planet}
}

// AddObstacle places a static sphere and returns its ID
func (w *World) AddObstacle(shape Sphere, layer uint8) entity.ID {
	id := entity.GenerateID()
	w.obstacles = append(w.obstacles, Obstacle{ID: id, Shape: shape, Layer: layer})
	return id
}

// Obstacles returns the static obstacles
func (w *World) Obstacles() []Obstacle {
	return w.obstacles
}

// Linecast returns the nearest surface crossed by the segment from -> to
func (w *World) Linecast(from, to mgl64.Vec3, mask LayerMask) (Hit, bool) {
	dir, ok := SafeNormalize(to.Sub(from))
	if !ok {
		return Hit{}, false
	}
	maxDistance := to.Sub(from).Len()

	best := Hit{Distance: math.Inf(1)}
	found := false
	check := func(id entity.ID, s Sphere, layer uint8) {
		if !mask.Contains(layer) {
			return
		}
		t, hit := s.Raycast(from, dir, maxDistance)
		if !hit || t >= best.Distance {
			return
		}
		point := from.Add(dir.Mul(t))
		best = Hit{
			Point:    point,
			Normal:   Normalize(point.Sub(s.Center)),
			Distance: t,
			Body:     id,
		}
		found = true
	}

	if w.Planet != nil {
		check(w.Planet.ID, Sphere{Center: w.Planet.Center, Radius: w.Planet.Radius}, PlanetLayer)
	}
	for _, o := range w.obstacles {
		check(o.ID, o.Shape, o.Layer)
	}
	return best, found
}
