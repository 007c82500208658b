// pkg/render/trace.go
package render

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// TraceRenderer writes one aligned text row per snapshot
type TraceRenderer struct {
	w       *tabwriter.Writer
	every   uint64
	started bool
}

// NewTraceRenderer creates a trace writing every nth frame to out. every
// below 1 is treated as 1.
func NewTraceRenderer(out io.Writer, every int) *TraceRenderer {
	if every < 1 {
		every = 1
	}
	return &TraceRenderer{
		w:     tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight),
		every: uint64(every),
	}
}

// Render implements Renderer.
func (r *TraceRenderer) Render(s Snapshot) error {
	if s.Frame%r.every != 0 {
		return nil
	}
	if !r.started {
		r.started = true
		if _, err := fmt.Fprintln(r.w, "frame\tstep\tstate\tx\ty\tz\taltitude\tdodge\tyaw\tpitch\toccluded\t"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.w, "%d\t%d\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%d\t%.1f\t%.1f\t%t\t\n",
		s.Frame, s.Step, s.State,
		s.Player.X(), s.Player.Y(), s.Player.Z(),
		s.Altitude(), s.DodgeElapsed, s.Yaw, s.Pitch, s.Occluded,
	)
	return err
}

// Flush writes any buffered rows
func (r *TraceRenderer) Flush() error {
	return r.w.Flush()
}
