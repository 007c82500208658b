// pkg/render/terminal.go
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// TerminalRenderer draws the view through the orbit camera as ASCII art
type TerminalRenderer struct {
	out       io.Writer
	width     int
	height    int
	buffer    [][]rune
	depth     [][]float64
	projector Projector
	lattice   int
	clear     bool
}

// NewTerminalRenderer creates a width x height character view. Terminal
// cells are about twice as tall as wide, so rows are projected at half
// resolution.
func NewTerminalRenderer(out io.Writer, width, height int) *TerminalRenderer {
	buffer := make([][]rune, height)
	depth := make([][]float64, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
		depth[i] = make([]float64, width)
	}

	return &TerminalRenderer{
		out:       out,
		width:     width,
		height:    height,
		buffer:    buffer,
		depth:     depth,
		projector: NewProjector(float64(width), float64(height)*2, 60),
		lattice:   600,
	}
}

// SetClearScreen makes Present clear the terminal before drawing
func (r *TerminalRenderer) SetClearScreen(on bool) { r.clear = on }

// Clear blanks the buffer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
			r.depth[y][x] = 0
		}
	}
}

// Render implements Renderer.
func (r *TerminalRenderer) Render(s Snapshot) error {
	r.Clear()
	r.Draw(s)
	return r.Present(s)
}

// Draw plots the planet surface, obstacles and player into the buffer
func (r *TerminalRenderer) Draw(s Snapshot) {
	for _, p := range Lattice(s.PlanetCenter, s.PlanetRadius, r.lattice) {
		if FacesEye(s.PlanetCenter, p, s.Camera) {
			r.plot(s, p, '.')
		}
	}
	for _, o := range s.Obstacles {
		r.plot(s, o.Center, 'O')
	}
	r.plot(s, s.Player, '@')
}

// plot draws c at the projection of p unless something nearer already
// occupies the cell
func (r *TerminalRenderer) plot(s Snapshot, p mgl64.Vec3, c rune) {
	screen, depth, ok := r.projector.Project(s.Camera, s.CameraRotation, p)
	if !ok || !r.projector.OnScreen(screen) {
		return
	}
	x, y := int(screen.X()), int(screen.Y()/2)
	if y >= r.height {
		return
	}
	if r.buffer[y][x] != ' ' && r.depth[y][x] < depth {
		return
	}
	r.buffer[y][x] = c
	r.depth[y][x] = depth
}

// Cell returns the character at column x, row y
func (r *TerminalRenderer) Cell(x, y int) rune {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return ' '
	}
	return r.buffer[y][x]
}

// Present writes the buffer followed by a status line
func (r *TerminalRenderer) Present(s Snapshot) error {
	var b strings.Builder
	if r.clear {
		b.WriteString("\033[H\033[2J")
	}
	for y := 0; y < r.height; y++ {
		b.WriteString(strings.TrimRight(string(r.buffer[y]), " "))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "step %d  %s  alt %.2f  yaw %.0f  pitch %.0f",
		s.Step, s.State, s.Altitude(), s.Yaw, s.Pitch)
	if s.Occluded {
		b.WriteString("  [occluded]")
	}
	b.WriteByte('\n')
	_, err := io.WriteString(r.out, b.String())
	return err
}
