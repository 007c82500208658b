// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-planetwalk/pkg/input"
)

// Binding names registered with the engo input manager
const (
	AxisStrafe  = "strafe"
	AxisForward = "forward"
	AxisLookX   = "lookX"
	AxisLookY   = "lookY"

	ButtonJump   = "jump"
	ButtonDodge  = "dodge"
	ButtonReset  = "reset"
	ButtonFacing = "facing"
	ButtonQuit   = "quit"
)

// Device is the part of a window's input the InputSystem reads
type Device interface {
	// Axis returns the value of a registered axis in [-1, 1].
	Axis(name string) float64
	// Pressed reports whether a button went down this frame.
	Pressed(name string) bool
	// Cursor returns the mouse position in window pixels.
	Cursor() mgl64.Vec2
}

// Device reading the global engo input manager. Only valid once engo.Run
// has started.
type engoDevice struct{}

func (engoDevice) Axis(name string) float64 {
	return float64(engo.Input.Axis(name).Value())
}

func (engoDevice) Pressed(name string) bool {
	return engo.Input.Button(name).JustPressed()
}

func (engoDevice) Cursor() mgl64.Vec2 {
	return mgl64.Vec2{float64(engo.Input.Mouse.X), float64(engo.Input.Mouse.Y)}
}

// SetupInputBindings registers the key bindings for walking
func SetupInputBindings() {
	engo.Input.RegisterAxis(AxisStrafe, engo.AxisKeyPair{Min: engo.KeyA, Max: engo.KeyD})
	engo.Input.RegisterAxis(AxisForward, engo.AxisKeyPair{Min: engo.KeyS, Max: engo.KeyW})
	engo.Input.RegisterAxis(AxisLookX, engo.AxisKeyPair{Min: engo.KeyArrowLeft, Max: engo.KeyArrowRight})
	engo.Input.RegisterAxis(AxisLookY, engo.AxisKeyPair{Min: engo.KeyArrowUp, Max: engo.KeyArrowDown})

	engo.Input.RegisterButton(ButtonJump, engo.KeySpace)
	engo.Input.RegisterButton(ButtonDodge, engo.KeyLeftShift, engo.KeyE)
	engo.Input.RegisterButton(ButtonReset, engo.KeyR)
	engo.Input.RegisterButton(ButtonFacing, engo.KeyF)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape)
}

// InputPriority runs the input system before the session driver
const InputPriority = 30

// InputSystem copies device state into an input queue once per frame.
// Look is the mouse movement since the previous frame scaled by
// MouseScale, plus the arrow keys scaled by KeyLookScale.
type InputSystem struct {
	device Device
	queue  *input.Queue

	MouseScale   float64
	KeyLookScale float64

	// Called when the matching button is pressed
	OnReset  func()
	OnFacing func()
	OnQuit   func()

	cursor    mgl64.Vec2
	hasCursor bool
}

// NewInputSystem creates an input system feeding queue. A nil device reads
// the engo input manager.
func NewInputSystem(device Device, queue *input.Queue) *InputSystem {
	if device == nil {
		device = engoDevice{}
	}
	return &InputSystem{
		device:       device,
		queue:        queue,
		MouseScale:   0.1,
		KeyLookScale: 1,
	}
}

// Priority implements ecs.Prioritizer.
func (is *InputSystem) Priority() int { return InputPriority }

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(ecs.BasicEntity) {}

// Update samples the device
func (is *InputSystem) Update(dt float32) {
	is.queue.SetMove(mgl64.Vec2{is.device.Axis(AxisStrafe), is.device.Axis(AxisForward)})

	cursor := is.device.Cursor()
	var delta mgl64.Vec2
	if is.hasCursor {
		delta = cursor.Sub(is.cursor)
	}
	is.cursor, is.hasCursor = cursor, true

	keys := mgl64.Vec2{is.device.Axis(AxisLookX), is.device.Axis(AxisLookY)}
	is.queue.SetLook(delta.Mul(is.MouseScale).Add(keys.Mul(is.KeyLookScale)))

	if is.device.Pressed(ButtonJump) {
		is.queue.PressJump()
	}
	if is.device.Pressed(ButtonDodge) {
		is.queue.PressDodge()
	}
	is.fire(ButtonReset, is.OnReset)
	is.fire(ButtonFacing, is.OnFacing)
	is.fire(ButtonQuit, is.OnQuit)
}

func (is *InputSystem) fire(button string, fn func()) {
	if fn != nil && is.device.Pressed(button) {
		fn()
	}
}
