// Package core implements the shade-smoothing simulation engine.
// It contains no external dependencies (especially no Bubble Tea) to keep
// the simulation pure and testable; rendering lives in the platform layer.
package core

// Shade is the brightness value of a single cell.
// Valid values are in [0, MaxShade].
type Shade uint8

// MaxShade is the highest representable shade. The renderer maps the
// MaxShade+1 levels onto a grayscale ramp.
const MaxShade Shade = 15

// ClampShade saturates an arbitrary integer into the valid shade range.
// Out-of-range intermediates clamp rather than wrap.
func ClampShade(v int) Shade {
	if v < 0 {
		return 0
	}
	if v > int(MaxShade) {
		return MaxShade
	}
	return Shade(v)
}
