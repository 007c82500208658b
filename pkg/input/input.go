// Package input carries the normalized per-step input the locomotion core
// consumes: two 2-D axes and two momentary triggers. Devices are mapped onto
// a Queue by the host; recorded Scripts replay the same stream headlessly.
package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Snapshot is the input observed for one fixed step
type Snapshot struct {
	Move  mgl64.Vec2
	Look  mgl64.Vec2
	Jump  bool
	Dodge bool
}

// Source yields input. Sample is called once per fixed step and consumes
// any latched triggers; Look and Move report the current axes without
// consuming anything and are read by the camera pass.
type Source interface {
	Sample() Snapshot
	Look() mgl64.Vec2
	Move() mgl64.Vec2
}

// Queue is a Source fed by device callbacks. Triggers pressed between two
// samples are latched so a press shorter than a fixed step is not lost.
type Queue struct {
	mu    sync.Mutex
	move  mgl64.Vec2
	look  mgl64.Vec2
	jump  bool
	dodge bool
}

// NewQueue creates an empty input queue
func NewQueue() *Queue {
	return &Queue{}
}

// SetMove sets the movement axis, clamped to the unit square
func (q *Queue) SetMove(v mgl64.Vec2) {
	q.mu.Lock()
	q.move = clampAxis(v)
	q.mu.Unlock()
}

// SetLook sets the look axis
func (q *Queue) SetLook(v mgl64.Vec2) {
	q.mu.Lock()
	q.look = v
	q.mu.Unlock()
}

// PressJump latches a jump trigger until the next Sample
func (q *Queue) PressJump() {
	q.mu.Lock()
	q.jump = true
	q.mu.Unlock()
}

// PressDodge latches a dodge trigger until the next Sample
func (q *Queue) PressDodge() {
	q.mu.Lock()
	q.dodge = true
	q.mu.Unlock()
}

// Sample returns the current axes and any latched triggers, then clears the
// triggers
func (q *Queue) Sample() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	s := Snapshot{Move: q.move, Look: q.look, Jump: q.jump, Dodge: q.dodge}
	q.jump, q.dodge = false, false
	return s
}

// Look returns the current look axis
func (q *Queue) Look() mgl64.Vec2 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.look
}

// Move returns the current movement axis
func (q *Queue) Move() mgl64.Vec2 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.move
}

// Reset clears axes and triggers
func (q *Queue) Reset() {
	q.mu.Lock()
	q.move, q.look = mgl64.Vec2{}, mgl64.Vec2{}
	q.jump, q.dodge = false, false
	q.mu.Unlock()
}

func clampAxis(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{mgl64.Clamp(v[0], -1, 1), mgl64.Clamp(v[1], -1, 1)}
}
