package ebiten

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/flappybird/ecs"
	"github.com/plus3/flappybird/flappy"
)

const (
	tickStep   = 50
	tickLength = 5
)

var (
	xAxisColor = color.RGBA{R: 0xff, A: 0xff}
	yAxisColor = color.RGBA{G: 0xff, A: 0xff}
)

// AxisTicks returns tick positions from -extent/2 to extent/2 every step units.
func AxisTicks(extent float32, step int) []int {
	half := int(extent) / 2
	var ticks []int
	for v := -half; v <= half; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// GizmoSystem draws the world axes with labelled tick marks.
type GizmoSystem struct {
	Settings ecs.Singleton[flappy.DebugSettings]
	Manager  ecs.Singleton[flappy.GameManager]

	screen   *ebiten.Image
	viewport Viewport
}

func (g *GizmoSystem) Execute(frame *ecs.UpdateFrame) {
	settings := g.Settings.Get()
	manager := g.Manager.Get()
	if g.screen == nil || settings == nil || manager == nil || !settings.ShowAxes {
		return
	}

	w, h := manager.WindowDimensions.X, manager.WindowDimensions.Y
	g.line(-w/2, 0, w/2, 0, xAxisColor)
	g.line(0, -h/2, 0, h/2, yAxisColor)

	for _, x := range AxisTicks(w, tickStep) {
		g.line(float32(x), -tickLength, float32(x), tickLength, xAxisColor)
		if x != 0 {
			g.label(x, float32(x), 10)
		}
	}
	for _, y := range AxisTicks(h, tickStep) {
		g.line(-tickLength, float32(y), tickLength, float32(y), yAxisColor)
		if y != 0 {
			g.label(y, -10, float32(y))
		}
	}
}

func (g *GizmoSystem) line(x0, y0, x1, y1 float32, clr color.Color) {
	sx0, sy0 := g.viewport.WorldToScreen(float64(x0), float64(y0))
	sx1, sy1 := g.viewport.WorldToScreen(float64(x1), float64(y1))
	vector.StrokeLine(g.screen, float32(sx0), float32(sy0), float32(sx1), float32(sy1), 1, clr, false)
}

func (g *GizmoSystem) label(value int, x, y float32) {
	sx, sy := g.viewport.WorldToScreen(float64(x), float64(y))
	ebitenutil.DebugPrintAt(g.screen, strconv.Itoa(value), int(sx), int(sy))
}
