// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"
)

// SpriteKind selects the texture used for a scene element
type SpriteKind int

const (
	SpriteSurface SpriteKind = iota
	SpritePlayer
	SpriteObstacle
	SpriteHorizon
)

// spriteSize is the texture edge length in pixels. Sprites are scaled by
// their SpaceComponent, so one size serves every depth.
const spriteSize = 32

// AssetManager builds the procedural textures of the scene
type AssetManager struct {
	sprites map[SpriteKind]common.Drawable
}

// NewAssetManager creates an empty asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{sprites: make(map[SpriteKind]common.Drawable)}
}

// LoadAssets uploads every sprite texture. It needs a live GL context.
func (am *AssetManager) LoadAssets() error {
	for kind, img := range SpriteImages() {
		am.sprites[kind] = convertToEngoTexture(img)
	}
	return nil
}

// SpriteImages returns the source image for each sprite kind
func SpriteImages() map[SpriteKind]*image.RGBA {
	return map[SpriteKind]*image.RGBA{
		SpriteSurface:  discImage(spriteSize, spriteSize/2, color.RGBA{90, 170, 110, 255}),
		SpritePlayer:   discImage(spriteSize, spriteSize/2, color.RGBA{250, 210, 60, 255}),
		SpriteObstacle: discImage(spriteSize, spriteSize/2, color.RGBA{140, 120, 160, 255}),
		SpriteHorizon:  ringImage(spriteSize, spriteSize/2, 2, color.RGBA{60, 110, 80, 255}),
	}
}

// Sprite returns the texture for kind, or the surface texture when kind is
// unknown
func (am *AssetManager) Sprite(kind SpriteKind) common.Drawable {
	if sprite, exists := am.sprites[kind]; exists {
		return sprite
	}
	return am.sprites[SpriteSurface]
}

// createBaseImage creates a transparent RGBA image with the specified dimensions.
func createBaseImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)
	return img
}

// discImage draws a filled circle of radius r centered in a size x size image
func discImage(size, r int, c color.RGBA) *image.RGBA {
	img := createBaseImage(size, size)
	eachPixel(size, func(x, y, d2 int) {
		if d2 <= r*r {
			img.SetRGBA(x, y, c)
		}
	})
	return img
}

// ringImage draws a circle outline of the given width
func ringImage(size, r, width int, c color.RGBA) *image.RGBA {
	img := createBaseImage(size, size)
	inner := r - width
	eachPixel(size, func(x, y, d2 int) {
		if d2 <= r*r && d2 > inner*inner {
			img.SetRGBA(x, y, c)
		}
	})
	return img
}

// eachPixel calls fn with the squared distance of every pixel center from
// the image center (in doubled units so odd sizes stay exact)
func eachPixel(size int, fn func(x, y, d2 int)) {
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := 2*x+1-size, 2*y+1-size
			fn(x, y, (dx*dx+dy*dy)/4)
		}
	}
}

// convertToEngoTexture converts an RGBA image to an Engo-compatible texture.
func convertToEngoTexture(img *image.RGBA) common.Drawable {
	bounds := img.Bounds()
	nrgbaImg := image.NewNRGBA(bounds)
	draw.Draw(nrgbaImg, bounds, img, bounds.Min, draw.Src)

	texture := common.NewImageObject(nrgbaImg)
	return common.NewTextureSingle(texture)
}
