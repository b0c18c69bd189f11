package gekko2d

import "github.com/go-gl/mathgl/mgl64"

type DebugShapeKind int

const (
	DebugCircle DebugShapeKind = iota // Wireframe circle
	DebugRect                         // Wireframe rectangle
)

var (
	DebugColorStatic    = [4]float32{0.6, 0.6, 0.6, 1}
	DebugColorKinematic = [4]float32{0.3, 0.5, 1, 1}
	DebugColorDynamic   = [4]float32{0.2, 0.9, 0.3, 1}
	DebugColorTrigger   = [4]float32{1, 0.85, 0.1, 1}
)

// DebugShape describes one collider outline in world space.
// For DebugCircle, Center and Radius are set. For DebugRect, Position is the
// minimum corner and Size the full extents.
type DebugShape struct {
	Kind     DebugShapeKind
	Body     BodyHandle
	Collider int
	Color    [4]float32
	Trigger  bool

	Center mgl64.Vec2
	Radius float64

	Position mgl64.Vec2
	Size     mgl64.Vec2
}

// DebugRenderer is implemented by anything that can draw outlines; see render/raster
// and render/term.
type DebugRenderer interface {
	DrawCircle(center mgl64.Vec2, radius float64, color [4]float32)
	DrawRect(position, size mgl64.Vec2, color [4]float32)
}

func NewDebugCircle(center mgl64.Vec2, radius float64, color [4]float32) DebugShape {
	return DebugShape{
		Kind:   DebugCircle,
		Center: center,
		Radius: radius,
		Color:  color,
	}
}

func NewDebugRect(position, size mgl64.Vec2, color [4]float32) DebugShape {
	return DebugShape{
		Kind:     DebugRect,
		Position: position,
		Size:     size,
		Color:    color,
	}
}

// Draw forwards the shape to r.
func (s DebugShape) Draw(r DebugRenderer) {
	switch s.Kind {
	case DebugCircle:
		r.DrawCircle(s.Center, s.Radius, s.Color)
	case DebugRect:
		r.DrawRect(s.Position, s.Size, s.Color)
	}
}

func debugColor(b *Body, c *Collider) [4]float32 {
	if c.trigger {
		return DebugColorTrigger
	}
	switch b.bodyType {
	case BodyStatic:
		return DebugColorStatic
	case BodyKinematic:
		return DebugColorKinematic
	}
	return DebugColorDynamic
}

func colliderDebugShape(c *Collider) DebugShape {
	color := debugColor(c.body, c)

	var shape DebugShape
	switch s := c.shape.(type) {
	case Circle:
		shape = NewDebugCircle(c.WorldPosition(), s.Radius, color)
	case Box:
		bounds := c.AABB()
		shape = NewDebugRect(bounds.Min, bounds.Size(), color)
	}
	shape.Body = c.body.handle
	shape.Collider = c.index
	shape.Trigger = c.trigger
	return shape
}
