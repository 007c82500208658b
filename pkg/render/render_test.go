package render

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-planetwalk/pkg/engine"
	"github.com/opd-ai/go-planetwalk/pkg/input"
	"github.com/opd-ai/go-planetwalk/pkg/logging"
)

// frontView looks down +Z at a radius 5 planet from 20 units away, with the
// player on the near pole
func frontView() Snapshot {
	return Snapshot{
		Step:           12,
		Frame:          1,
		State:          "grounded",
		Player:         mgl64.Vec3{0, 0, -5},
		PlayerRotation: mgl64.QuatIdent(),
		Camera:         mgl64.Vec3{0, 0, -20},
		CameraRotation: mgl64.QuatIdent(),
		PlanetRadius:   5,
	}
}

func TestProjector_Project(t *testing.T) {
	p := NewProjector(100, 50, 60)
	eye := mgl64.Vec3{}
	rot := mgl64.QuatIdent()

	center, depth, ok := p.Project(eye, rot, mgl64.Vec3{0, 0, 5})
	require.True(t, ok)
	assert.InDelta(t, 50, center.X(), 1e-9)
	assert.InDelta(t, 25, center.Y(), 1e-9)
	assert.InDelta(t, 5, depth, 1e-9)

	right, _, ok := p.Project(eye, rot, mgl64.Vec3{1, 0, 5})
	require.True(t, ok)
	assert.Greater(t, right.X(), center.X())

	up, _, ok := p.Project(eye, rot, mgl64.Vec3{0, 1, 5})
	require.True(t, ok)
	assert.Less(t, up.Y(), center.Y(), "screen y grows downward")

	_, _, ok = p.Project(eye, rot, mgl64.Vec3{0, 0, -5})
	assert.False(t, ok, "points behind the camera are not projected")
}

func TestProjector_CameraRotation(t *testing.T) {
	p := NewProjector(100, 50, 60)
	// Turned to look along +X
	rot := mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 1, 0})

	s, depth, ok := p.Project(mgl64.Vec3{}, rot, mgl64.Vec3{5, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 50, s.X(), 1e-9)
	assert.InDelta(t, 5, depth, 1e-9)
}

func TestProjector_ScaleAndBounds(t *testing.T) {
	p := NewProjector(100, 50, 90)
	assert.InDelta(t, 25, p.Scale(1, 1), 1e-9)
	assert.InDelta(t, 12.5, p.Scale(1, 2), 1e-9)
	assert.Zero(t, p.Scale(1, 0))

	assert.True(t, p.OnScreen(mgl64.Vec2{0, 0}))
	assert.False(t, p.OnScreen(mgl64.Vec2{100, 10}))
	assert.False(t, p.OnScreen(mgl64.Vec2{10, -1}))
}

func TestLattice(t *testing.T) {
	center := mgl64.Vec3{1, 2, 3}
	points := Lattice(center, 4, 200)
	require.Len(t, points, 200)

	var above, below int
	for _, p := range points {
		assert.InDelta(t, 4, p.Sub(center).Len(), 1e-9)
		if p.Y() > center.Y() {
			above++
		} else {
			below++
		}
	}
	assert.Equal(t, above, below, "points are spread over both hemispheres")
}

func TestFacesEye(t *testing.T) {
	eye := mgl64.Vec3{0, 0, -20}
	assert.True(t, FacesEye(mgl64.Vec3{}, mgl64.Vec3{0, 0, -5}, eye))
	assert.False(t, FacesEye(mgl64.Vec3{}, mgl64.Vec3{0, 0, 5}, eye))
}

func TestTerminalRenderer_Render(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, 40, 20)

	s := frontView()
	s.Obstacles = nil
	require.NoError(t, r.Render(s))

	assert.Equal(t, '@', r.Cell(20, 10), "player is drawn in the middle of the view")
	assert.Equal(t, ' ', r.Cell(-1, 0))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 21)
	assert.Contains(t, lines[20], "step 12")
	assert.Contains(t, lines[20], "grounded")
	assert.NotContains(t, lines[20], "occluded")
	assert.Contains(t, out.String(), ".", "planet surface is visible")
}

func TestTerminalRenderer_OccludedAndClear(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, 20, 10)
	r.SetClearScreen(true)

	s := frontView()
	s.Occluded = true
	require.NoError(t, r.Render(s))

	assert.True(t, strings.HasPrefix(out.String(), "\033[H\033[2J"))
	assert.Contains(t, out.String(), "[occluded]")

	r.Clear()
	assert.Equal(t, ' ', r.Cell(10, 5))
}

func TestTraceRenderer(t *testing.T) {
	var out bytes.Buffer
	r := NewTraceRenderer(&out, 2)

	for frame := uint64(1); frame <= 4; frame++ {
		s := frontView()
		s.Frame = frame
		require.NoError(t, r.Render(s))
	}
	require.NoError(t, r.Flush())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3, "header plus frames 2 and 4")
	assert.Contains(t, lines[0], "altitude")
	assert.Contains(t, lines[1], "grounded")
	assert.Contains(t, lines[1], "0.000", "player stands on the surface")
}

func TestLogRenderer(t *testing.T) {
	var out bytes.Buffer
	logger := logging.NewLoggerWithOptions(logging.Options{Output: &out, Level: slog.LevelDebug})
	r := NewLogRenderer(context.Background(), logger)

	require.NoError(t, r.Render(frontView()))
	assert.Contains(t, out.String(), `"msg":"frame"`)
	assert.Contains(t, out.String(), `"state":"grounded"`)

	assert.NoError(t, NewLogRenderer(context.Background(), nil).Render(frontView()))
}

type failing struct{ calls int }

func (f *failing) Render(Snapshot) error {
	f.calls++
	return assert.AnError
}

func TestMulti_StopsAtFirstError(t *testing.T) {
	first, second := &failing{}, &failing{}
	err := Multi{first, second}.Render(frontView())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls)
}

func TestCapture(t *testing.T) {
	game, scene, err := engine.NewSceneGame(nil, input.NewQueue(), nil, nil)
	require.NoError(t, err)
	game.Start(context.Background())
	game.Frame(0.02)

	s := Capture(game, scene.World.Obstacles())
	assert.Equal(t, uint64(1), s.Step)
	assert.Equal(t, uint64(1), s.Frame)
	assert.Equal(t, "grounded", s.State)
	assert.InDelta(t, 0, s.Altitude(), 1e-6)
	assert.InDelta(t, 1, s.Up.Y(), 1e-9)
	assert.Equal(t, game.Camera.Position(), s.Camera)
	assert.Len(t, s.Obstacles, 3)
	assert.InDelta(t, 10, s.PlanetRadius, 1e-9)
}
