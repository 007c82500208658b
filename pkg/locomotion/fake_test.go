package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-planetwalk/pkg/config"
	"github.com/opd-ai/go-planetwalk/pkg/entity"
	"github.com/opd-ai/go-planetwalk/pkg/event"
)

// fakeBody records every request made through physics.Body
type fakeBody struct {
	pos mgl64.Vec3
	rot mgl64.Quat
	vel mgl64.Vec3

	moves           []mgl64.Vec3
	rotations       []mgl64.Quat
	impulses        []mgl64.Vec3
	velocityChanges []mgl64.Vec3
}

func newFakeBody(pos mgl64.Vec3) *fakeBody {
	return &fakeBody{pos: pos, rot: mgl64.QuatIdent()}
}

func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }
func (b *fakeBody) Rotation() mgl64.Quat { return b.rot }
func (b *fakeBody) Velocity() mgl64.Vec3 { return b.vel }

func (b *fakeBody) MovePosition(p mgl64.Vec3) {
	b.moves = append(b.moves, p)
	b.pos = p
}

func (b *fakeBody) MoveRotation(q mgl64.Quat) {
	b.rotations = append(b.rotations, q)
	b.rot = q
}

func (b *fakeBody) ApplyImpulse(v mgl64.Vec3) {
	b.impulses = append(b.impulses, v)
	b.vel = b.vel.Add(v)
}

func (b *fakeBody) ApplyVelocityChange(v mgl64.Vec3) {
	b.velocityChanges = append(b.velocityChanges, v)
	b.vel = b.vel.Add(v)
}

type fixedView struct{ forward mgl64.Vec3 }

func (v fixedView) Forward() mgl64.Vec3 { return v.forward }

// eventLog collects published events by type
type eventLog struct {
	events map[event.Type][]event.Event
}

func watch(bus *event.Bus, types ...event.Type) *eventLog {
	l := &eventLog{events: make(map[event.Type][]event.Event)}
	for _, t := range types {
		bus.Subscribe(t, func(e event.Event) {
			l.events[e.GetType()] = append(l.events[e.GetType()], e)
		})
	}
	return l
}

func (l *eventLog) reasons(t event.Type) []string {
	var out []string
	for _, e := range l.events[t] {
		if te, ok := e.(*event.TriggerEvent); ok {
			out = append(out, te.Reason)
		}
	}
	return out
}

func testPlanet() *entity.Planet {
	return entity.NewPlanet("test", mgl64.Vec3{}, 10)
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Movement.AlignToSurface = false
	return cfg
}
