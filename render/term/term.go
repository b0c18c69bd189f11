// Package term draws physics debug outlines as characters on a tcell screen.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	RuneCircle = 'o'
	RuneFill   = '#'
)

// Renderer maps world coordinates to terminal cells. Scale is world units per
// cell; world y grows upward, row numbers grow downward.
type Renderer struct {
	screen tcell.Screen

	Scale      float64
	Origin     mgl64.Vec2
	Background tcell.Style
}

func New(screen tcell.Screen, scale float64) *Renderer {
	if !(scale > 0) {
		scale = 1
	}
	return &Renderer{
		screen:     screen,
		Scale:      scale,
		Background: tcell.StyleDefault,
	}
}

func (r *Renderer) Screen() tcell.Screen { return r.screen }

func (r *Renderer) BeginFrame() {
	r.screen.Fill(' ', r.Background)
}

func (r *Renderer) EndFrame() {
	r.screen.Show()
}

// ToCell converts a world position to a column and row.
func (r *Renderer) ToCell(p mgl64.Vec2) (int, int) {
	_, h := r.screen.Size()
	x := int(math.Floor((p.X() - r.Origin.X()) / r.Scale))
	y := h - 1 - int(math.Floor((p.Y()-r.Origin.Y())/r.Scale))
	return x, y
}

func (r *Renderer) DrawRect(position, size mgl64.Vec2, c [4]float32) {
	style := r.style(c)
	x0, y1 := r.ToCell(position)
	x1, y0 := r.ToCell(position.Add(size))

	if x0 == x1 || y0 == y1 {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				r.set(x, y, RuneFill, style)
			}
		}
		return
	}

	for x := x0 + 1; x < x1; x++ {
		r.set(x, y0, tcell.RuneHLine, style)
		r.set(x, y1, tcell.RuneHLine, style)
	}
	for y := y0 + 1; y < y1; y++ {
		r.set(x0, y, tcell.RuneVLine, style)
		r.set(x1, y, tcell.RuneVLine, style)
	}
	r.set(x0, y0, tcell.RuneULCorner, style)
	r.set(x1, y0, tcell.RuneURCorner, style)
	r.set(x0, y1, tcell.RuneLLCorner, style)
	r.set(x1, y1, tcell.RuneLRCorner, style)
}

func (r *Renderer) DrawCircle(center mgl64.Vec2, radius float64, c [4]float32) {
	style := r.style(c)
	cells := radius / r.Scale
	if cells < 1 {
		x, y := r.ToCell(center)
		r.set(x, y, RuneCircle, style)
		return
	}

	// Two samples per cell of circumference keep the outline closed.
	samples := max(8, int(math.Ceil(2*math.Pi*cells))*2)
	for i := 0; i < samples; i++ {
		angle := 2 * math.Pi * float64(i) / float64(samples)
		p := center.Add(mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(radius))
		x, y := r.ToCell(p)
		r.set(x, y, RuneCircle, style)
	}
}

func (r *Renderer) set(x, y int, ch rune, style tcell.Style) {
	w, h := r.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *Renderer) style(c [4]float32) tcell.Style {
	channel := func(v float32) int32 {
		return int32(math.Round(float64(max(0, min(1, v))) * 255))
	}
	return r.Background.Foreground(tcell.NewRGBColor(channel(c[0]), channel(c[1]), channel(c[2])))
}
