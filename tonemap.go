package raytrace

import (
	"math"

	"github.com/kvelez/raytrace/internal/prim"
)

const gammaExponent = 1.0 / 2.2

// ToneMapAndGamma applies extended Reinhard tone mapping (using the
// maximum color component across the whole grid as the normalization
// constant) followed by gamma 2.2 encoding, in place. A grid that is
// entirely black (max == 0) is left untouched: the Reinhard formula
// would divide by zero, and the identity mapping of all-zero to
// all-zero is already correct.
func ToneMapAndGamma(grid [][]prim.Vec3) {
	maxComponent := 0.0
	for _, row := range grid {
		for _, c := range row {
			maxComponent = math.Max(maxComponent, math.Max(c.X, math.Max(c.Y, c.Z)))
		}
	}
	if maxComponent == 0 {
		return
	}
	m2 := maxComponent * maxComponent

	tone := func(c float64) float64 {
		c = c * (1 + c/m2) / (1 + c)
		return math.Pow(c, gammaExponent)
	}

	for i := range grid {
		for j := range grid[i] {
			c := &grid[i][j]
			c.X = tone(c.X)
			c.Y = tone(c.Y)
			c.Z = tone(c.Z)
			c.ClampI()
		}
	}
}

// toByte converts a tone-mapped, gamma-corrected channel value in
// [0, 1] to an 8-bit sample, matching the reference's
// floor((c - epsilon) * 256) rounding, clamped to [0, 255].
func toByte(c float64) byte {
	v := int((c - rayEpsilon) * 256)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
