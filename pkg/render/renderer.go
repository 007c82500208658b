// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-planetwalk/pkg/logging"
)

// Renderer presents snapshots
type Renderer interface {
	Render(s Snapshot) error
}

// LogRenderer writes every snapshot to a structured logger at debug level
type LogRenderer struct {
	logger *logging.Logger
	ctx    context.Context
}

// NewLogRenderer creates a renderer logging through logger under ctx
func NewLogRenderer(ctx context.Context, logger *logging.Logger) *LogRenderer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &LogRenderer{logger: logger, ctx: ctx}
}

// Render implements Renderer.
func (r *LogRenderer) Render(s Snapshot) error {
	r.logger.Debug(r.ctx, "frame",
		"step", s.Step,
		"frame", s.Frame,
		"state", s.State,
		"player", s.Player,
		"altitude", s.Altitude(),
		"camera", s.Camera,
		"yaw", s.Yaw,
		"pitch", s.Pitch,
		"occluded", s.Occluded,
	)
	return nil
}

// Multi renders each snapshot with every renderer in turn, stopping at the
// first error
type Multi []Renderer

// Render implements Renderer.
func (m Multi) Render(s Snapshot) error {
	for _, r := range m {
		if err := r.Render(s); err != nil {
			return err
		}
	}
	return nil
}
