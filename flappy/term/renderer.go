// Package term plays the game in a terminal. Pipes are drawn as blocks, the
// bird as a single emoji. There is no inspector overlay.
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/plus3/flappybird/ecs"
	"github.com/plus3/flappybird/flappy"
)

const (
	birdGlyph   = "🐤"
	pipeGlyph   = '█'
	gameOverMsg = "GAME OVER"
)

var (
	pipeStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true)
)

// Renderer draws a world onto a tcell screen, stretching the game window over
// the whole terminal.
type Renderer struct {
	screen tcell.Screen

	sprites *ecs.View[struct {
		*flappy.Transform
		*flappy.Sprite
	}]
	birds *ecs.View[struct{ *flappy.Bird }]
}

func NewRenderer(screen tcell.Screen, storage *ecs.Storage) *Renderer {
	return &Renderer{
		screen: screen,
		sprites: ecs.NewView[struct {
			*flappy.Transform
			*flappy.Sprite
		}](storage),
		birds: ecs.NewView[struct{ *flappy.Bird }](storage),
	}
}

// Project converts a world position to a terminal cell for a window of
// width x height world units.
func (r *Renderer) Project(window flappy.Vec2, x, y float32) (col, row int) {
	cols, rows := r.screen.Size()
	col = int((x + window.X/2) * float32(cols) / window.X)
	row = int((window.Y/2 - y) * float32(rows) / window.Y)
	return col, row
}

// Draw renders one frame. It does not call Show.
func (r *Renderer) Draw(storage *ecs.Storage) {
	var manager *flappy.GameManager
	if !storage.ReadSingleton(&manager) {
		return
	}

	bg := tcell.ColorDefault
	var clear *flappy.ClearColor
	if storage.ReadSingleton(&clear) {
		c := clear.RGBA()
		bg = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	background := tcell.StyleDefault.Background(bg)
	r.screen.Fill(' ', background)

	window := manager.WindowDimensions
	for id, item := range r.sprites.Iter() {
		if ecs.ReadComponent[flappy.Bird](storage, id) != nil {
			col, row := r.Project(window, item.Translation.X, item.Translation.Y)
			r.putGlyph(col-runewidth.StringWidth(birdGlyph)/2, row, birdGlyph, background)
			continue
		}
		r.drawBlock(window, item.Transform, item.Sprite, pipeStyle.Background(bg))
	}

	if manager.GameOver {
		r.drawBanner(gameOverMsg)
	}
}

// drawBlock fills the cells covered by a sprite's scaled bounds.
func (r *Renderer) drawBlock(window flappy.Vec2, t *flappy.Transform, s *flappy.Sprite, style tcell.Style) {
	halfW := s.Size.X * abs(t.Scale.X) / 2
	halfH := s.Size.Y * abs(t.Scale.Y) / 2

	left, top := r.Project(window, t.Translation.X-halfW, t.Translation.Y+halfH)
	right, bottom := r.Project(window, t.Translation.X+halfW, t.Translation.Y-halfH)

	cols, rows := r.screen.Size()
	for row := max(top, 0); row < min(bottom, rows); row++ {
		for col := max(left, 0); col < min(right, cols); col++ {
			r.screen.SetContent(col, row, pipeGlyph, nil, style)
		}
	}
}

func (r *Renderer) drawBanner(msg string) {
	cols, rows := r.screen.Size()
	col := (cols - runewidth.StringWidth(msg)) / 2
	row := rows / 2
	for _, ch := range msg {
		r.screen.SetContent(col, row, ch, nil, bannerStyle)
		col += runewidth.RuneWidth(ch)
	}
}

// putGlyph draws a glyph that may be two columns wide.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
