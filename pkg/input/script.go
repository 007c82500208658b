// pkg/input/script.go
package input

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScript is returned for scripts with out-of-order or negative
// step numbers
var ErrInvalidScript = errors.New("invalid input script")

// Entry changes the input starting at Step. Axes that are set stay in
// effect until a later entry changes them; triggers fire on Step only.
type Entry struct {
	Step  int         `yaml:"step"`
	Move  *mgl64.Vec2 `yaml:"move,omitempty"`
	Look  *mgl64.Vec2 `yaml:"look,omitempty"`
	Jump  bool        `yaml:"jump,omitempty"`
	Dodge bool        `yaml:"dodge,omitempty"`
}

// Script is a recorded input sequence, indexed by fixed step
type Script struct {
	// Duration is the number of steps the script covers. Zero means one
	// step past the last entry.
	Duration int     `yaml:"duration"`
	Entries  []Entry `yaml:"entries"`
}

// LoadScript reads a YAML script from path
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input script: %w", err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return s, nil
}

// ParseScript decodes and validates a YAML script
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse input script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that entry steps are non-negative and strictly increasing
func (s *Script) Validate() error {
	prev := -1
	for i, e := range s.Entries {
		if e.Step <= prev {
			return oops.Code("SCRIPT_INVALID").
				With("entry", i).
				With("step", e.Step).
				Wrap(ErrInvalidScript)
		}
		prev = e.Step
	}
	if s.Duration < 0 {
		return oops.Code("SCRIPT_INVALID").With("duration", s.Duration).Wrap(ErrInvalidScript)
	}
	return nil
}

// Steps returns the number of fixed steps the script covers
func (s *Script) Steps() int {
	if s.Duration > 0 {
		return s.Duration
	}
	if n := len(s.Entries); n > 0 {
		return s.Entries[n-1].Step + 1
	}
	return 0
}

// Replay is a Source that plays a Script back one step per Sample
type Replay struct {
	script *Script
	step   int
	next   int
	move   mgl64.Vec2
	look   mgl64.Vec2
}

// NewReplay creates a replay positioned at step 0
func NewReplay(s *Script) *Replay {
	return &Replay{script: s}
}

// Sample returns the input for the current step and advances
func (r *Replay) Sample() Snapshot {
	snap := Snapshot{}
	for r.next < len(r.script.Entries) && r.script.Entries[r.next].Step <= r.step {
		e := r.script.Entries[r.next]
		if e.Move != nil {
			r.move = clampAxis(*e.Move)
		}
		if e.Look != nil {
			r.look = *e.Look
		}
		if e.Step == r.step {
			snap.Jump = snap.Jump || e.Jump
			snap.Dodge = snap.Dodge || e.Dodge
		}
		r.next++
	}
	snap.Move, snap.Look = r.move, r.look
	r.step++
	return snap
}

// Look returns the look axis in effect at the last sampled step
func (r *Replay) Look() mgl64.Vec2 { return r.look }

// Move returns the movement axis in effect at the last sampled step
func (r *Replay) Move() mgl64.Vec2 { return r.move }

// Step returns the number of steps sampled so far
func (r *Replay) Step() int { return r.step }

// Done reports whether every step of the script has been sampled
func (r *Replay) Done() bool { return r.step >= r.script.Steps() }

// Rewind restarts the replay from step 0
func (r *Replay) Rewind() {
	r.step, r.next = 0, 0
	r.move, r.look = mgl64.Vec2{}, mgl64.Vec2{}
}
