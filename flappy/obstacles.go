package flappy

import (
	"math/rand/v2"

	"github.com/plus3/flappybird/ecs"
)

// ObstacleSystem scrolls every pipe left and sends pipes that leave the
// window to the back of the queue. It keeps running after the game is over.
//
// One jitter is drawn per tick and shared by every pipe recycled in that
// tick, so both pipes of a pair stay aligned.
type ObstacleSystem struct {
	Obstacles ecs.Query[struct {
		*Transform
		*Obstacle
	}]
	Manager ecs.Singleton[GameManager]

	Rand *rand.Rand

	// Recycles counts pipes sent to the back of the queue.
	Recycles int
}

func (s *ObstacleSystem) Execute(frame *ecs.UpdateFrame) {
	manager := s.Manager.Get()
	if manager == nil {
		return
	}
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	dt := float32(frame.DeltaTime)
	offset := generateOffset(s.Rand)
	leftEdge := -manager.WindowDimensions.X / 2

	for pipe := range s.Obstacles.Values() {
		pipe.Translation.X -= ObstacleSpeed * dt

		if pipe.Translation.X+ObstacleWidth*PixelRatio/2 < leftEdge {
			pipe.Translation.X += recycleDistance()
			pipe.Translation.Y = centeredPipePosition()*pipe.PipeDirection + offset
			s.Recycles++
		}
	}
}
