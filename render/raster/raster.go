// Package raster draws physics debug outlines into an RGBA image.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/vector"
)

// circleSegments is the number of edges used to approximate a circle.
const circleSegments = 48

// Renderer maps world coordinates to pixels with a scale and an origin. World y
// grows upward, image y grows downward.
type Renderer struct {
	img  *image.RGBA
	rast *vector.Rasterizer

	Scale      float64
	Origin     mgl64.Vec2
	Stroke     float64
	Background color.RGBA
}

func New(width, height int) *Renderer {
	r := &Renderer{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		rast:       vector.NewRasterizer(width, height),
		Scale:      1,
		Stroke:     1,
		Background: color.RGBA{A: 255},
	}
	r.BeginFrame()
	return r
}

func (r *Renderer) Image() *image.RGBA { return r.img }

// BeginFrame clears the image to the background color.
func (r *Renderer) BeginFrame() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)
}

func (r *Renderer) EndFrame() {}

// ToPixel converts a world position to image coordinates.
func (r *Renderer) ToPixel(p mgl64.Vec2) (float64, float64) {
	h := float64(r.img.Bounds().Dy())
	return (p.X() - r.Origin.X()) * r.Scale, h - (p.Y()-r.Origin.Y())*r.Scale
}

func (r *Renderer) DrawRect(position, size mgl64.Vec2, c [4]float32) {
	x0, y1 := r.ToPixel(position)
	x1, y0 := r.ToPixel(position.Add(size))
	s := r.Stroke

	r.begin()
	// Outer contour clockwise, inner counter-clockwise so the interior cancels out.
	r.polygon([][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}})
	if x1-x0 > 2*s && y1-y0 > 2*s {
		r.polygon([][2]float64{{x0 + s, y0 + s}, {x0 + s, y1 - s}, {x1 - s, y1 - s}, {x1 - s, y0 + s}})
	}
	r.fill(c)
}

func (r *Renderer) DrawCircle(center mgl64.Vec2, radius float64, c [4]float32) {
	cx, cy := r.ToPixel(center)
	outer := radius * r.Scale
	inner := outer - r.Stroke

	r.begin()
	r.polygon(circlePoints(cx, cy, outer, false))
	if inner > 0 {
		r.polygon(circlePoints(cx, cy, inner, true))
	}
	r.fill(c)
}

// WritePNG encodes the current image.
func (r *Renderer) WritePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Renderer) begin() {
	b := r.img.Bounds()
	r.rast.Reset(b.Dx(), b.Dy())
}

func (r *Renderer) polygon(points [][2]float64) {
	r.rast.MoveTo(float32(points[0][0]), float32(points[0][1]))
	for _, p := range points[1:] {
		r.rast.LineTo(float32(p[0]), float32(p[1]))
	}
	r.rast.ClosePath()
}

func (r *Renderer) fill(c [4]float32) {
	src := image.NewUniform(toRGBA(c))
	r.rast.Draw(r.img, r.img.Bounds(), src, image.Point{})
}

func circlePoints(cx, cy, radius float64, reverse bool) [][2]float64 {
	points := make([][2]float64, circleSegments)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / circleSegments
		if reverse {
			angle = -angle
		}
		points[i] = [2]float64{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)}
	}
	return points
}

func toRGBA(c [4]float32) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(math.Round(float64(max(0, min(1, v))) * 255))
	}
	a := max(0, min(1, c[3]))
	return color.RGBA{R: clamp(c[0] * a), G: clamp(c[1] * a), B: clamp(c[2] * a), A: clamp(a)}
}
