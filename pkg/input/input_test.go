package input

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueLatchesTriggers(t *testing.T) {
	q := NewQueue()
	q.SetMove(mgl64.Vec2{0, 1})
	q.PressJump()
	q.PressJump()

	first := q.Sample()
	assert.True(t, first.Jump)
	assert.False(t, first.Dodge)
	assert.Equal(t, mgl64.Vec2{0, 1}, first.Move)

	second := q.Sample()
	assert.False(t, second.Jump, "trigger must be consumed by the first sample")
	assert.Equal(t, mgl64.Vec2{0, 1}, second.Move, "axes persist across samples")
}

func TestQueueClampsMove(t *testing.T) {
	q := NewQueue()
	q.SetMove(mgl64.Vec2{3, -2})
	assert.Equal(t, mgl64.Vec2{1, -1}, q.Move())
}

func TestQueueLookDoesNotConsume(t *testing.T) {
	q := NewQueue()
	q.SetLook(mgl64.Vec2{0.5, -0.25})
	q.PressDodge()

	assert.Equal(t, mgl64.Vec2{0.5, -0.25}, q.Look())
	assert.True(t, q.Sample().Dodge, "reading Look must not clear triggers")

	q.Reset()
	assert.Equal(t, mgl64.Vec2{}, q.Look())
}

const sampleScript = `
duration: 6
entries:
  - step: 0
    move: [0, 1]
  - step: 2
    jump: true
  - step: 3
    move: [1, 0]
    look: [0.5, 0]
    dodge: true
`

func TestReplay(t *testing.T) {
	s, err := ParseScript([]byte(sampleScript))
	require.NoError(t, err)
	assert.Equal(t, 6, s.Steps())

	r := NewReplay(s)
	var snaps []Snapshot
	for !r.Done() {
		snaps = append(snaps, r.Sample())
	}
	require.Len(t, snaps, 6)

	assert.Equal(t, mgl64.Vec2{0, 1}, snaps[0].Move)
	assert.Equal(t, mgl64.Vec2{0, 1}, snaps[1].Move)
	assert.False(t, snaps[1].Jump)
	assert.True(t, snaps[2].Jump)
	assert.False(t, snaps[3].Jump)
	assert.True(t, snaps[3].Dodge)
	assert.Equal(t, mgl64.Vec2{1, 0}, snaps[5].Move)
	assert.Equal(t, mgl64.Vec2{0.5, 0}, r.Look())

	r.Rewind()
	assert.Equal(t, 0, r.Step())
	assert.Equal(t, mgl64.Vec2{0, 1}, r.Sample().Move)
}

func TestScriptStepsWithoutDuration(t *testing.T) {
	s := &Script{Entries: []Entry{{Step: 0}, {Step: 4, Jump: true}}}
	assert.Equal(t, 5, s.Steps())
	assert.Equal(t, 0, (&Script{}).Steps())
}

func TestParseScriptRejectsUnorderedSteps(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"duplicate step", "entries:\n  - step: 1\n  - step: 1\n"},
		{"decreasing step", "entries:\n  - step: 3\n  - step: 2\n"},
		{"negative step", "entries:\n  - step: -1\n"},
		{"negative duration", "duration: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScript))
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0o644))

	s, err := LoadScript(path)
	require.NoError(t, err)
	assert.Len(t, s.Entries, 3)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
