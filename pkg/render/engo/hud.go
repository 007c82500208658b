// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"strings"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-planetwalk/pkg/render"
)

// HUD shows the session status in the window title
type HUD struct {
	title    string
	last     string
	setTitle func(string)
}

// NewHUD creates a HUD prefixing status with title
func NewHUD(title string) *HUD {
	return &HUD{title: title, setTitle: engo.SetTitle}
}

// Render implements render.Renderer. The title only changes when the
// status text does.
func (h *HUD) Render(s render.Snapshot) error {
	text := h.title + " | " + Status(s)
	if text != h.last {
		h.last = text
		h.setTitle(text)
	}
	return nil
}

// Status summarizes a snapshot in one line
func Status(s render.Snapshot) string {
	var b strings.Builder
	b.WriteString(s.State)
	if s.State == "dodging" {
		fmt.Fprintf(&b, " %d", s.DodgeElapsed)
	}
	fmt.Fprintf(&b, " | alt %.1f | yaw %.0f pitch %.0f", s.Altitude(), s.Yaw, s.Pitch)
	if s.Occluded {
		b.WriteString(" | occluded")
	}
	return b.String()
}
