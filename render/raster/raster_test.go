package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = [4]float32{1, 1, 1, 1}

func TestRenderer_ToPixel(t *testing.T) {
	r := New(20, 20)
	x, y := r.ToPixel(mgl64.Vec2{3, 4})
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 16.0, y)

	r.Scale = 2
	r.Origin = mgl64.Vec2{1, 1}
	x, y = r.ToPixel(mgl64.Vec2{2, 3})
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 16.0, y)
}

func TestRenderer_DrawRectOutline(t *testing.T) {
	r := New(20, 20)
	r.DrawRect(mgl64.Vec2{5, 5}, mgl64.Vec2{10, 10}, white)

	img := r.Image()
	assert.GreaterOrEqual(t, img.RGBAAt(5, 10).R, uint8(250), "left edge")
	assert.GreaterOrEqual(t, img.RGBAAt(10, 5).R, uint8(250), "top edge")
	assert.Equal(t, r.Background, img.RGBAAt(10, 10), "interior stays clear")
	assert.Equal(t, r.Background, img.RGBAAt(2, 2), "outside stays clear")
}

func TestRenderer_DrawCircleOutline(t *testing.T) {
	r := New(20, 20)
	r.DrawCircle(mgl64.Vec2{10, 10}, 5, [4]float32{1, 0, 0, 1})

	img := r.Image()
	assert.Greater(t, img.RGBAAt(14, 10).R, uint8(0), "ring")
	assert.Equal(t, r.Background, img.RGBAAt(10, 10), "center")
	assert.Equal(t, uint8(0), img.RGBAAt(14, 10).G)
}

func TestRenderer_BeginFrameClears(t *testing.T) {
	r := New(8, 8)
	r.Background = color.RGBA{10, 20, 30, 255}
	r.DrawRect(mgl64.Vec2{0, 0}, mgl64.Vec2{8, 8}, white)

	r.BeginFrame()
	r.EndFrame()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.Equal(t, r.Background, r.Image().RGBAAt(x, y))
		}
	}
}

func TestRenderer_WritePNG(t *testing.T) {
	r := New(16, 12)
	r.DrawCircle(mgl64.Vec2{8, 6}, 4, white)

	var buf bytes.Buffer
	require.NoError(t, r.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 12, img.Bounds().Dy())
}

func TestToRGBA_Premultiplies(t *testing.T) {
	assert.Equal(t, color.RGBA{128, 0, 0, 128}, toRGBA([4]float32{1, 0, 0, 0.5}))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, toRGBA([4]float32{2, 2, 2, 2}))
}
