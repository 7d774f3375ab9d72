// Package draw renders game snapshots to an ANSI terminal using colored
// half-block characters.
package draw

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Pixel is a packed 0xRRGGBB color with a presence bit; the zero Pixel is empty.
type Pixel uint32

const pixelSet Pixel = 1 << 24

// RGB packs a color into a set pixel.
func RGB(r, g, b uint8) Pixel {
	return pixelSet | Pixel(r)<<16 | Pixel(g)<<8 | Pixel(b)
}

// FromColor converts a colorful color to a pixel.
func FromColor(c colorful.Color) Pixel {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

// FromHex parses "#rrggbb". Unparseable strings fall back to white.
func FromHex(hex string) Pixel {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB(255, 255, 255)
	}
	return FromColor(c)
}

// IsSet reports whether the pixel holds a color.
func (p Pixel) IsSet() bool {
	return p&pixelSet != 0
}

// RGB unpacks the color components.
func (p Pixel) RGB() (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// Fade blends a hex color towards black; alpha 1 keeps it, 0 is black.
func Fade(hex string, alpha float64) Pixel {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 1, G: 1, B: 1}
	}
	return fade(c, alpha)
}

func fade(c colorful.Color, alpha float64) Pixel {
	alpha = min(max(alpha, 0), 1)
	if alpha == 1 {
		return FromColor(c)
	}
	return FromColor(colorful.Color{}.BlendRgb(c, alpha))
}

const maxPaletteSize = 1024

// palette caches parsed entity colors.
type palette map[string]colorful.Color

// pixel returns hex faded by alpha. Unparseable colors render white.
func (p palette) pixel(hex string, alpha float64) Pixel {
	c, ok := p[hex]
	if !ok {
		if len(p) >= maxPaletteSize {
			clear(p)
		}
		var err error
		if c, err = colorful.Hex(hex); err != nil {
			c = colorful.Color{R: 1, G: 1, B: 1}
		}
		p[hex] = c
	}
	return fade(c, alpha)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
