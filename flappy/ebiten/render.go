package ebiten

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flappybird/ecs"
	"github.com/plus3/flappybird/flappy"
)

// Viewport maps world space (origin at the camera, y up) to screen pixels
// (origin top-left, y down).
type Viewport struct {
	CameraX, CameraY float64
	Zoom             float64
	Width, Height    float64
}

// WorldToScreen converts a world position to screen pixels.
func (v Viewport) WorldToScreen(x, y float64) (float64, float64) {
	zoom := v.zoom()
	return (x-v.CameraX)*zoom + v.Width/2, v.Height/2 - (y-v.CameraY)*zoom
}

func (v Viewport) zoom() float64 {
	if v.Zoom == 0 {
		return 1
	}
	return v.Zoom
}

// SpriteGeoM places an image of the given pixel size centred on t: scaled,
// rotated counter-clockwise, then projected through the viewport.
func SpriteGeoM(imageWidth, imageHeight float64, t flappy.Transform, v Viewport) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-imageWidth/2, -imageHeight/2)
	g.Scale(1, -1)
	g.Scale(float64(t.Scale.X), float64(t.Scale.Y))
	g.Rotate(float64(t.Rotation))
	g.Translate(float64(t.Translation.X)-v.CameraX, float64(t.Translation.Y)-v.CameraY)
	g.Scale(v.zoom(), -v.zoom())
	g.Translate(v.Width/2, v.Height/2)
	return g
}

type sprite struct {
	transform flappy.Transform
	image     flappy.ImageHandle
}

// RenderSystem clears the screen and draws every sprite, lowest z first.
type RenderSystem struct {
	Sprites ecs.Query[struct {
		*flappy.Transform
		*flappy.Sprite
	}]
	Cameras ecs.Query[struct {
		*flappy.Transform
		*flappy.Camera2D
	}]
	Clear ecs.Singleton[flappy.ClearColor]

	Images *ImageCache

	screen  *ebiten.Image
	sprites []sprite
}

func (r *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	if r.screen == nil {
		return
	}
	if clear := r.Clear.Get(); clear != nil {
		r.screen.Fill(clear.RGBA())
	}

	viewport := r.viewport()

	r.sprites = r.sprites[:0]
	for item := range r.Sprites.Values() {
		r.sprites = append(r.sprites, sprite{transform: *item.Transform, image: item.Image})
	}
	slices.SortStableFunc(r.sprites, func(a, b sprite) int {
		return cmp.Compare(a.transform.Translation.Z, b.transform.Translation.Z)
	})

	for _, s := range r.sprites {
		img := r.Images.Get(s.image)
		if img == nil {
			continue
		}
		bounds := img.Bounds()

		op := &ebiten.DrawImageOptions{}
		op.GeoM = SpriteGeoM(float64(bounds.Dx()), float64(bounds.Dy()), s.transform, viewport)
		op.Filter = ebiten.FilterNearest
		r.screen.DrawImage(img, op)
	}
}

func (r *RenderSystem) viewport() Viewport {
	bounds := r.screen.Bounds()
	v := Viewport{Zoom: 1, Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
	if _, camera, ok := r.Cameras.Single(); ok {
		v.CameraX = float64(camera.Translation.X)
		v.CameraY = float64(camera.Translation.Y)
		if camera.Zoom > 0 {
			v.Zoom = float64(camera.Zoom)
		}
	}
	return v
}
