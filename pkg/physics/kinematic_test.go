package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-planetwalk/pkg/entity"
)

type recordingListener struct {
	enters, exits []Contact
}

func (r *recordingListener) OnContactEnter(c Contact) { r.enters = append(r.enters, c) }
func (r *recordingListener) OnContactExit(c Contact)  { r.exits = append(r.exits, c) }

func TestKinematicBody_RestsOnSurface(t *testing.T) {
	planet := entity.NewPlanet("test", mgl64.Vec3{}, 10)
	b := NewKinematicBody(planet, mgl64.Vec3{0, 10, 0})
	require.True(t, b.Grounded())

	for i := 0; i < 50; i++ {
		b.Step(0.02)
	}
	assert.InDelta(t, 10.0, planet.DistanceTo(b.Position()), 1e-9)
	assert.True(t, b.Grounded())
}

func TestKinematicBody_JumpAndLand(t *testing.T) {
	planet := entity.NewPlanet("test", mgl64.Vec3{}, 10)
	b := NewKinematicBody(planet, mgl64.Vec3{0, 10, 0})
	l := &recordingListener{}
	b.AddListener(l)

	b.ApplyImpulse(mgl64.Vec3{0, 5, 0})
	b.Step(0.02)
	require.False(t, b.Grounded())
	require.Len(t, l.exits, 1)
	assert.Equal(t, planet.ID, l.exits[0].Other)

	for i := 0; i < 200 && !b.Grounded(); i++ {
		b.Step(0.02)
	}
	require.True(t, b.Grounded())
	require.Len(t, l.enters, 1)
	assert.InDelta(t, 10.0, planet.DistanceTo(b.Position()), 1e-9)
}

func TestKinematicBody_FallsFromAltitude(t *testing.T) {
	planet := entity.NewPlanet("test", mgl64.Vec3{}, 10)
	b := NewKinematicBody(planet, mgl64.Vec3{15, 0, 0})
	require.False(t, b.Grounded())
	for i := 0; i < 500 && !b.Grounded(); i++ {
		b.Step(0.02)
	}
	assert.True(t, b.Grounded())
	assert.InDelta(t, 0.0, b.Position().Sub(mgl64.Vec3{10, 0, 0}).Len(), 1e-6)
}

func TestKinematicBody_ImpulseUsesMass(t *testing.T) {
	planet := entity.NewPlanet("test", mgl64.Vec3{}, 10)
	b := NewKinematicBody(planet, mgl64.Vec3{0, 10, 0})
	b.Mass = 2
	b.ApplyImpulse(mgl64.Vec3{4, 0, 0})
	assert.Equal(t, mgl64.Vec3{2, 0, 0}, b.Velocity())
	b.ApplyVelocityChange(mgl64.Vec3{1, 0, 0})
	assert.Equal(t, mgl64.Vec3{3, 0, 0}, b.Velocity())
}

func TestKinematicBody_Teleport(t *testing.T) {
	planet := entity.NewPlanet("test", mgl64.Vec3{}, 10)
	b := NewKinematicBody(planet, mgl64.Vec3{0, 10, 0})
	b.ApplyVelocityChange(mgl64.Vec3{1, 0, 0})
	b.Teleport(mgl64.Vec3{0, 30, 0}, mgl64.QuatIdent())
	assert.False(t, b.Grounded())
	assert.Equal(t, mgl64.Vec3{}, b.Velocity())
}
