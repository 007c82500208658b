// pkg/render/engo/scene.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-planetwalk/pkg/engine"
	"github.com/opd-ai/go-planetwalk/pkg/input"
	"github.com/opd-ai/go-planetwalk/pkg/physics"
	"github.com/opd-ai/go-planetwalk/pkg/render"
)

// DriverPriority runs the session after input and before rendering
const DriverPriority = 20

// Driver advances a play session once per engo frame and hands the
// resulting snapshot to its renderers. Reset and policy toggles requested
// by input are applied between frames, never from inside the session.
type Driver struct {
	game      *engine.Game
	obstacles []physics.Obstacle
	renderers render.Multi

	resetRequested  bool
	toggleRequested bool
	last            render.Snapshot
	err             error
}

// NewDriver creates a driver for game
func NewDriver(game *engine.Game, obstacles []physics.Obstacle, renderers ...render.Renderer) *Driver {
	return &Driver{game: game, obstacles: obstacles, renderers: renderers}
}

// RequestReset restarts the session before the next frame
func (d *Driver) RequestReset() { d.resetRequested = true }

// RequestFacingToggle flips the camera facing policy before the next frame
func (d *Driver) RequestFacingToggle() { d.toggleRequested = true }

// Snapshot returns the state after the most recent frame
func (d *Driver) Snapshot() render.Snapshot { return d.last }

// Err returns the first renderer error, if any
func (d *Driver) Err() error { return d.err }

// Priority implements ecs.Prioritizer.
func (d *Driver) Priority() int { return DriverPriority }

// Remove satisfies the ecs.System interface
func (d *Driver) Remove(ecs.BasicEntity) {}

// Update runs one frame of dt seconds
func (d *Driver) Update(dt float32) {
	if d.resetRequested {
		d.resetRequested = false
		d.game.Reset()
	}
	if d.toggleRequested {
		d.toggleRequested = false
		d.game.Camera.SetFacingPolicy(!d.game.Camera.FacingPolicy())
	}

	d.game.Frame(float64(dt))
	d.last = render.Capture(d.game, d.obstacles)
	if err := d.renderers.Render(d.last); err != nil && d.err == nil {
		d.err = err
		d.game.Logger.Error(d.game.Context(), "render failed", err)
	}
}

// SceneOptions configures a PlanetScene
type SceneOptions struct {
	Title   string
	Width   float64
	Height  float64
	FOV     float64
	Lattice int

	// Renderers also receive every snapshot
	Renderers []render.Renderer
}

// PlanetScene is the engo scene for walking around the planet
type PlanetScene struct {
	game      *engine.Game
	queue     *input.Queue
	obstacles []physics.Obstacle
	opts      SceneOptions

	driver *Driver
}

// NewPlanetScene creates a scene showing game. queue must be the input
// source the game samples.
func NewPlanetScene(game *engine.Game, queue *input.Queue, obstacles []physics.Obstacle, opts SceneOptions) *PlanetScene {
	if opts.FOV <= 0 {
		opts.FOV = 60
	}
	if opts.Lattice <= 0 {
		opts.Lattice = 400
	}
	return &PlanetScene{game: game, queue: queue, obstacles: obstacles, opts: opts}
}

// Type returns the scene type (required by Engo)
func (scene *PlanetScene) Type() string {
	return "PlanetScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *PlanetScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *PlanetScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.RGBA{12, 14, 30, 255})
	SetupInputBindings()

	lattice := render.Lattice(scene.game.Planet.Center, scene.game.Planet.Radius, scene.opts.Lattice)
	renderer := NewRenderer(scene.opts.Width, scene.opts.Height, scene.opts.FOV, lattice)
	if err := renderer.Initialize(world); err != nil {
		panic("Failed to initialize renderer: " + err.Error())
	}

	renderers := append([]render.Renderer{renderer, NewHUD(scene.opts.Title)}, scene.opts.Renderers...)
	scene.driver = NewDriver(scene.game, scene.obstacles, renderers...)

	in := NewInputSystem(nil, scene.queue)
	in.OnReset = scene.driver.RequestReset
	in.OnFacing = scene.driver.RequestFacingToggle
	in.OnQuit = engo.Exit

	world.AddSystem(in)
	world.AddSystem(scene.driver)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *PlanetScene) Exit() {
	scene.game.Stop()
}
