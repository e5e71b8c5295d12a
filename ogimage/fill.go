package ogimage

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Fill paints an area. Implementations return an image covering rect.
type Fill interface {
	Image(rect image.Rectangle) image.Image
}

// Solid fills with one color.
type Solid struct {
	Color color.RGBA
}

func (s Solid) Image(image.Rectangle) image.Image {
	return image.NewUniform(s.Color)
}

// LinearGradient follows CSS linear-gradient: Angle 90 runs left to right,
// 180 runs top to bottom. Stops are spread evenly along the line.
type LinearGradient struct {
	Angle float64
	Stops []color.RGBA
}

func (g LinearGradient) Image(rect image.Rectangle) image.Image {
	rad := g.Angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	w, h := float64(rect.Dx()), float64(rect.Dy())
	return &gradientImage{
		rect:   rect,
		stops:  g.Stops,
		dx:     dx,
		dy:     dy,
		length: math.Abs(w*dx) + math.Abs(h*dy),
		cx:     float64(rect.Min.X) + w/2,
		cy:     float64(rect.Min.Y) + h/2,
	}
}

type gradientImage struct {
	rect           image.Rectangle
	stops          []color.RGBA
	dx, dy, length float64
	cx, cy         float64
}

func (g *gradientImage) ColorModel() color.Model { return color.RGBAModel }

func (g *gradientImage) Bounds() image.Rectangle { return g.rect }

func (g *gradientImage) At(x, y int) color.Color {
	switch len(g.stops) {
	case 0:
		return color.RGBA{}
	case 1:
		return g.stops[0]
	}
	t := 0.5
	if g.length > 0 {
		px, py := float64(x)+0.5-g.cx, float64(y)+0.5-g.cy
		t = (px*g.dx+py*g.dy)/g.length + 0.5
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(g.stops)-1)
	i := int(pos)
	if i >= len(g.stops)-1 {
		return g.stops[len(g.stops)-1]
	}
	return lerp(g.stops[i], g.stops[i+1], pos-float64(i))
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Hex parses "#rrggbb" or "#rgb" into an opaque color.
func Hex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustHex is Hex for constant colors; it panics on malformed input.
func MustHex(s string) color.RGBA {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
