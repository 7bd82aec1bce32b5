package flappy

// Gameplay tuning. Sizes are in sprite pixels unless noted; PixelRatio maps
// sprite pixels to world units.
const (
	PixelRatio              = 4
	FlapForce               = 500 // world units/s
	Gravity                 = 2000
	VelocityToRotationRatio = 7.5

	ObstacleAmount         = 5
	ObstacleWidth          = 32
	ObstacleHeight         = 144
	ObstacleVerticalOffset = 30
	ObstacleGapSize        = 15
	ObstacleSpacing        = 60
	ObstacleSpeed          = 150 // world units/s
)

// Default window.
const (
	WindowTitle  = "Flappybird"
	WindowWidth  = 512
	WindowHeight = 512
)

// Asset handles, relative to the asset directory.
const (
	BirdImage ImageHandle = "bird.png"
	PipeImage ImageHandle = "pipe.png"
)

// Source sizes of the bundled sprites.
var (
	BirdSpriteSize = Vec2{X: 16, Y: 16}
	PipeSpriteSize = Vec2{X: 18, Y: 144}
)

// centeredPipePosition is the distance from the origin to the centre of a
// pipe when the pair is not jittered.
func centeredPipePosition() float32 {
	return (ObstacleHeight/2 + ObstacleGapSize) * PixelRatio
}

// recycleDistance is how far a recycled obstacle jumps to the back of the queue.
func recycleDistance() float32 {
	return ObstacleAmount * ObstacleSpacing * PixelRatio
}
