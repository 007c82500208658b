// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-planetwalk/pkg/render"
)

// Placement is where a scene element lands on screen
type Placement struct {
	Kind    SpriteKind
	Screen  mgl64.Vec2 // center, in pixels
	Size    float64    // diameter, in pixels
	Depth   float64
	Visible bool
}

// Sizes of scene elements in world units
const (
	surfaceMarkSize = 0.25
	playerSize      = 0.6
	minSpriteSize   = 1.0
)

// Layout places the planet outline, the surface lattice, the obstacles and
// the player for snapshot s. lattice holds points on the planet surface.
// Order is stable so the result can be applied to a fixed set of sprites:
// horizon first, then lattice, obstacles and the player.
func Layout(p render.Projector, s render.Snapshot, lattice []mgl64.Vec3) []Placement {
	out := make([]Placement, 0, 2+len(lattice)+len(s.Obstacles))

	out = append(out, horizon(p, s))
	for _, point := range lattice {
		pl := place(p, s, SpriteSurface, point, surfaceMarkSize)
		pl.Visible = pl.Visible && render.FacesEye(s.PlanetCenter, point, s.Camera)
		out = append(out, pl)
	}
	for _, o := range s.Obstacles {
		out = append(out, place(p, s, SpriteObstacle, o.Center, 2*o.Radius))
	}
	out = append(out, place(p, s, SpritePlayer, s.Player, playerSize))
	return out
}

func place(p render.Projector, s render.Snapshot, kind SpriteKind, point mgl64.Vec3, size float64) Placement {
	screen, depth, ok := p.Project(s.Camera, s.CameraRotation, point)
	pl := Placement{Kind: kind, Screen: screen, Depth: depth}
	if !ok {
		return pl
	}
	pl.Size = math.Max(minSpriteSize, p.Scale(size, depth))
	pl.Visible = overlaps(p, screen, pl.Size)
	return pl
}

// overlaps reports whether a sprite of the given diameter centered at
// screen touches the viewport
func overlaps(p render.Projector, screen mgl64.Vec2, size float64) bool {
	half := size / 2
	return screen.X()+half >= 0 && screen.X()-half < p.Width &&
		screen.Y()+half >= 0 && screen.Y()-half < p.Height
}

// horizon approximates the planet silhouette by a disc around the
// projected center spanning the sphere's angular radius
func horizon(p render.Projector, s render.Snapshot) Placement {
	screen, _, ok := p.Project(s.Camera, s.CameraRotation, s.PlanetCenter)
	pl := Placement{Kind: SpriteHorizon, Screen: screen}
	d := s.Camera.Sub(s.PlanetCenter).Len()
	if !ok || d <= s.PlanetRadius {
		return pl
	}
	pl.Size = 2 * p.Scale(math.Tan(math.Asin(s.PlanetRadius/d)), 1)
	pl.Depth = d + s.PlanetRadius
	pl.Visible = overlaps(p, screen, pl.Size)
	return pl
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// Renderer keeps one engo sprite per scene element and moves them to match
// each snapshot
type Renderer struct {
	projector render.Projector
	lattice   []mgl64.Vec3
	assets    *AssetManager
	sprites   []*sprite
	system    *common.RenderSystem
}

// NewRenderer creates a renderer for a width x height window
func NewRenderer(width, height, fov float64, lattice []mgl64.Vec3) *Renderer {
	return &Renderer{
		projector: render.NewProjector(width, height, fov),
		lattice:   lattice,
		assets:    NewAssetManager(),
	}
}

// Projector returns the projection used for sprite placement
func (r *Renderer) Projector() render.Projector { return r.projector }

// Initialize loads textures and adds a render system to world
func (r *Renderer) Initialize(world *ecs.World) error {
	if err := r.assets.LoadAssets(); err != nil {
		return err
	}
	r.system = &common.RenderSystem{}
	world.AddSystem(r.system)
	return nil
}

// Render implements render.Renderer.
func (r *Renderer) Render(s render.Snapshot) error {
	placements := Layout(r.projector, s, r.lattice)
	for len(r.sprites) < len(placements) {
		r.sprites = append(r.sprites, r.newSprite(placements[len(r.sprites)].Kind))
	}
	for i, pl := range placements {
		r.apply(r.sprites[i], pl)
	}
	return nil
}

func (r *Renderer) newSprite(kind SpriteKind) *sprite {
	sp := &sprite{BasicEntity: ecs.NewBasic()}
	sp.RenderComponent = common.RenderComponent{
		Drawable: r.assets.Sprite(kind),
		Color:    color.White,
	}
	if r.system != nil {
		r.system.Add(&sp.BasicEntity, &sp.RenderComponent, &sp.SpaceComponent)
	}
	return sp
}

func (r *Renderer) apply(sp *sprite, pl Placement) {
	sp.Hidden = !pl.Visible
	if !pl.Visible {
		return
	}
	size := float32(pl.Size)
	sp.SpaceComponent.Position = engo.Point{
		X: float32(pl.Screen.X()) - size/2,
		Y: float32(pl.Screen.Y()) - size/2,
	}
	sp.SpaceComponent.Width = size
	sp.SpaceComponent.Height = size
	sp.RenderComponent.Scale = engo.Point{X: size / spriteSize, Y: size / spriteSize}
	// Nearer elements draw on top
	sp.RenderComponent.SetZIndex(float32(-pl.Depth))
}
