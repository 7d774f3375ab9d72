package object

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// NeonColor returns a fully saturated color for hue (degrees) at the given
// lightness as a "#rrggbb" string.
func NeonColor(hue, lightness float64) string {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	return colorful.Hsl(hue, 1, lightness).Clamped().Hex()
}

// Lightness of adversary hulls and explosion sparks.
const (
	adversaryLightness = 0.6
	particleLightness  = 0.7
)
