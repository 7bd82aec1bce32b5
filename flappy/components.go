package flappy

type Vec2 struct {
	X, Y float32
}

type Vec3 struct {
	X, Y, Z float32
}

// Transform places an entity in world space. The origin is the centre of the
// window and y points up.
type Transform struct {
	Translation Vec3
	Rotation    float32 // radians about z, counter-clockwise
	Scale       Vec2
}

// NewTransform returns a transform at (x, y) with a uniform scale.
func NewTransform(x, y, scale float32) Transform {
	return Transform{
		Translation: Vec3{X: x, Y: y},
		Scale:       Vec2{X: scale, Y: scale},
	}
}

// ImageHandle names an image asset. Frontends resolve it to pixels; a handle
// that has not been resolved draws nothing.
type ImageHandle string

func (h ImageHandle) String() string {
	return string(h)
}

// Sprite draws Image centred on the entity's Transform. Size is the source
// image size in pixels, used by frontends that never load the image.
type Sprite struct {
	Image ImageHandle
	Size  Vec2
}

// Camera2D marks the entity whose Transform is the centre of the view.
type Camera2D struct {
	Zoom float32
}

type Bird struct {
	Velocity float32
	Dead     bool
}

// Obstacle is one pipe. PipeDirection is +1 for a top pipe, -1 for a bottom one.
type Obstacle struct {
	PipeDirection float32
}
