package raytrace

import (
	"math"

	"github.com/kvelez/raytrace/internal/imageio"
	"github.com/kvelez/raytrace/internal/prim"
	"github.com/kvelez/raytrace/internal/sceneio"
)

func init() {
	sceneio.SkyboxSampler = sampleCubeMap
}

// sampleCubeMap resolves a miss-ray direction against a 4:3-cross-layout
// cube-map image, dispatching to the face whose world axis has the
// largest absolute component of direction.
func sampleCubeMap(img *imageio.Image, direction *prim.Vec3) prim.Vec3 {
	block := float64(img.Width) / 4

	ax, ay, az := math.Abs(direction.X), math.Abs(direction.Y), math.Abs(direction.Z)

	var x, y int
	switch {
	case ax >= ay && ax >= az:
		c := direction.Scale(1 / ax)
		if direction.X > 0 {
			x, y = frontXY(block, c)
		} else {
			x, y = backXY(block, c)
		}
	case ay >= ax && ay >= az:
		c := direction.Scale(1 / ay)
		if direction.Y > 0 {
			x, y = topXY(block, c)
		} else {
			x, y = bottomXY(block, c)
		}
	default:
		c := direction.Scale(1 / az)
		if direction.Z > 0 {
			x, y = rightXY(block, c)
		} else {
			x, y = leftXY(block, c)
		}
	}

	r, g, b := img.GetPixel(clampInt(x, img.Width-1), clampInt(y, img.Height-1))
	return prim.Vec3{X: float64(r) / 256, Y: float64(g) / 256, Z: float64(b) / 256}
}

func frontXY(b float64, c *prim.Vec3) (int, int) {
	return int(1.5*b + math.Floor(b*c.Z/2)), int(1.5*b + math.Floor(b*-c.Y/2))
}

func backXY(b float64, c *prim.Vec3) (int, int) {
	return int(3.5*b + math.Floor(b*-c.Z/2)), int(1.5*b + math.Floor(b*-c.Y/2))
}

func topXY(b float64, c *prim.Vec3) (int, int) {
	return int(1.5*b + math.Floor(b*c.Z/2)), int(0.5*b + math.Floor(b*c.X/2))
}

func bottomXY(b float64, c *prim.Vec3) (int, int) {
	return int(1.5*b + math.Floor(b*c.Z/2)), int(2.5*b + math.Floor(b*-c.X/2))
}

func rightXY(b float64, c *prim.Vec3) (int, int) {
	return int(2.5*b + math.Floor(b*-c.X/2)), int(1.5*b + math.Floor(b*-c.Y/2))
}

func leftXY(b float64, c *prim.Vec3) (int, int) {
	return int(0.5*b + math.Floor(b*c.X/2)), int(1.5*b + math.Floor(b*-c.Y/2))
}

func clampInt(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
