package config

import (
	"fmt"
	"strings"
)

// Basis selects which forward direction movement input is relative to
type Basis int

const (
	// BasisInherit is only meaningful for the dodge basis: use the movement basis.
	BasisInherit Basis = iota
	BasisPlayer
	BasisCamera
)

var basisNames = map[Basis]string{
	BasisInherit: "",
	BasisPlayer:  "player",
	BasisCamera:  "camera",
}

func (b Basis) String() string {
	if name, ok := basisNames[b]; ok && name != "" {
		return name
	}
	if b == BasisInherit {
		return "inherit"
	}
	return fmt.Sprintf("Basis(%d)", int(b))
}

// MarshalText implements encoding.TextMarshaler
func (b Basis) MarshalText() ([]byte, error) {
	name, ok := basisNames[b]
	if !ok {
		return nil, fmt.Errorf("unknown basis %d", int(b))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *Basis) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "inherit":
		*b = BasisInherit
	case "player", "player_relative":
		*b = BasisPlayer
	case "camera", "camera_relative":
		*b = BasisCamera
	default:
		return invalid("basis", string(text), "want player or camera")
	}
	return nil
}

// DodgeMode selects how the dodge displaces the character
type DodgeMode int

const (
	// DodgeSurfaceLocked re-projects the character onto its orbital radius every step.
	DodgeSurfaceLocked DodgeMode = iota
	// DodgeImpulse applies a velocity change every step with no radius correction.
	DodgeImpulse
)

func (m DodgeMode) String() string {
	switch m {
	case DodgeSurfaceLocked:
		return "surface_locked"
	case DodgeImpulse:
		return "impulse"
	}
	return fmt.Sprintf("DodgeMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler
func (m DodgeMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *DodgeMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "surface_locked", "surfacelocked":
		*m = DodgeSurfaceLocked
	case "impulse":
		*m = DodgeImpulse
	default:
		return invalid("dodge.mode", string(text), "want surface_locked or impulse")
	}
	return nil
}

// GroundSource selects the single system of record for ground contact
type GroundSource int

const (
	// GroundFromContacts trusts contact-enter/exit callbacks from the physics collaborator.
	GroundFromContacts GroundSource = iota
	// GroundFromProbe casts a short line toward the planet center every step.
	GroundFromProbe
)

func (g GroundSource) String() string {
	switch g {
	case GroundFromContacts:
		return "contact"
	case GroundFromProbe:
		return "probe"
	}
	return fmt.Sprintf("GroundSource(%d)", int(g))
}

// MarshalText implements encoding.TextMarshaler
func (g GroundSource) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (g *GroundSource) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "contact", "contacts":
		*g = GroundFromContacts
	case "probe", "ray":
		*g = GroundFromProbe
	default:
		return invalid("movement.groundSource", string(text), "want contact or probe")
	}
	return nil
}
