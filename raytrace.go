// Package raytrace is the rendering core: camera, intersection engine,
// recursive shading kernel, and tone mapping. It consumes a
// fully-built scene.Scene (see internal/sceneio) and produces an
// imageio.Image; it knows nothing about scene file formats, PNG
// encoding, or the command line.
package raytrace

import (
	"fmt"

	"github.com/kvelez/raytrace/internal/imageio"
	"github.com/kvelez/raytrace/internal/prim"
	"github.com/kvelez/raytrace/internal/scene"
)

// RenderMode selects what a render pass measures at each pixel.
type RenderMode int

const (
	Depth RenderMode = iota
	Normal
	Full
)

func (m RenderMode) String() string {
	switch m {
	case Depth:
		return "depth"
	case Normal:
		return "normal"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
}

// BadRenderModeError reports an unrecognized render mode.
type BadRenderModeError struct {
	Mode RenderMode
}

func (e *BadRenderModeError) Error() string {
	return fmt.Sprintf("raytrace: bad render mode %v", e.Mode)
}

// RenderOptions controls the recursion budget and which render mode
// a call to Render produces.
type RenderOptions struct {
	TTLDepth int
	Mode     RenderMode
}

// DefaultRenderOptions fills in a zero-valued TTLDepth with the
// documented default of 4; it does not mutate opts.
func DefaultRenderOptions(opts RenderOptions) RenderOptions {
	if opts.TTLDepth == 0 {
		opts.TTLDepth = 4
	}
	return opts
}

// Render is the core's single entry point: given a built scene and
// camera/render options, it produces the output image. Callers supply
// the already-parsed *scene.Scene.
func Render(s *scene.Scene, cameraOptions CameraOptions, renderOptions RenderOptions) (*imageio.Image, error) {
	cameraOptions = DefaultCameraOptions(cameraOptions)
	renderOptions = DefaultRenderOptions(renderOptions)
	caster := NewRayCaster(cameraOptions)

	switch renderOptions.Mode {
	case Depth:
		return renderDepth(s, caster), nil
	case Normal:
		return renderNormal(s, caster), nil
	case Full:
		return renderFull(s, caster, renderOptions.TTLDepth), nil
	default:
		return nil, &BadRenderModeError{Mode: renderOptions.Mode}
	}
}

func renderDepth(s *scene.Scene, caster *RayCaster) *imageio.Image {
	width, height := caster.width, caster.height
	distances := make([][]float64, height)
	hit := make([][]bool, height)
	maxDistance := 0.0

	for j := 0; j < height; j++ {
		distances[j] = make([]float64, width)
		hit[j] = make([]bool, width)
		for i := 0; i < width; i++ {
			ray := caster.Cast(i, j)
			h, _ := ClosestIntersection(s, ray)
			if h == nil {
				continue
			}
			distances[j][i] = h.Distance
			hit[j][i] = true
			if h.Distance > maxDistance {
				maxDistance = h.Distance
			}
		}
	}

	img := imageio.NewImage(width, height)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			dPrime := 1.0
			if hit[j][i] && maxDistance > 0 {
				dPrime = distances[j][i] / maxDistance
			}
			gray := toByte(dPrime)
			img.SetPixel(i, j, gray, gray, gray)
		}
	}
	return img
}

func renderNormal(s *scene.Scene, caster *RayCaster) *imageio.Image {
	width, height := caster.width, caster.height
	img := imageio.NewImage(width, height)

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			ray := caster.Cast(i, j)
			h, _ := ClosestIntersection(s, ray)
			n := prim.Vec3{X: -1, Y: -1, Z: -1}
			if h != nil {
				n = h.Normal
			}
			remapped := prim.Vec3{X: n.X/2 + 0.5, Y: n.Y/2 + 0.5, Z: n.Z/2 + 0.5}
			remapped.ClampI()
			img.SetPixel(i, j, toByte(remapped.X), toByte(remapped.Y), toByte(remapped.Z))
		}
	}
	return img
}

func renderFull(s *scene.Scene, caster *RayCaster, ttlDepth int) *imageio.Image {
	width, height := caster.width, caster.height
	grid := make([][]prim.Vec3, height)
	for j := 0; j < height; j++ {
		grid[j] = make([]prim.Vec3, width)
		for i := 0; i < width; i++ {
			ray := caster.Cast(i, j)
			grid[j][i] = Radiance(s, ray, false, ttlDepth)
		}
	}

	ToneMapAndGamma(grid)

	img := imageio.NewImage(width, height)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			c := grid[j][i]
			img.SetPixel(i, j, toByte(c.X), toByte(c.Y), toByte(c.Z))
		}
	}
	return img
}
