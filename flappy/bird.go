package flappy

import (
	"log/slog"
	"math"

	"github.com/plus3/flappybird/ecs"
)

// BirdSystem integrates the bird's flight and detects its death. It does
// nothing once the game is over.
type BirdSystem struct {
	Birds ecs.Query[struct {
		*Transform
		*Bird
	}]
	Manager ecs.Singleton[GameManager]
	Input   ecs.Singleton[Input]

	Logger *slog.Logger
}

func (s *BirdSystem) Execute(frame *ecs.UpdateFrame) {
	manager := s.Manager.Get()
	if manager == nil || manager.GameOver {
		return
	}

	_, bird, ok := s.Birds.Single()
	if !ok {
		return
	}

	dt := float32(frame.DeltaTime)
	if input := s.Input.Get(); input != nil && input.Jump {
		bird.Velocity = FlapForce
	}
	bird.Velocity -= Gravity * dt
	bird.Translation.Y += bird.Velocity * dt
	bird.Rotation = BirdRotation(bird.Velocity)

	if bird.Translation.Y < -manager.WindowDimensions.Y/2 {
		bird.Dead = true
	}

	if bird.Dead {
		manager.GameOver = true
		s.logger().Info("Bird has died.", "y", bird.Translation.Y)
	}
}

func (s *BirdSystem) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// BirdRotation maps a vertical velocity to the bird's tilt in radians,
// clamped to a quarter turn either way.
func BirdRotation(velocity float32) float32 {
	return radians(clamp(velocity/VelocityToRotationRatio, -90, 90))
}

func radians(degrees float32) float32 {
	return degrees * math.Pi / 180
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
