// The raytrace command renders a scene file to a PNG image, either
// once from flags (and optionally a YAML config file) or repeatedly
// from an interactive camera shell.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/kvelez/raytrace"
	"github.com/kvelez/raytrace/internal/config"
	"github.com/kvelez/raytrace/internal/imageio"
	"github.com/kvelez/raytrace/internal/prim"
	"github.com/kvelez/raytrace/internal/scene"
	"github.com/kvelez/raytrace/internal/sceneio"
)

var (
	scenePath = flag.String("scene", "", "path to the scene file (required)")
	outPath   = flag.String("out", "", "path to write the rendered PNG (required unless -interactive)")

	configPath = flag.String("config", "", "optional YAML file bundling camera and render options")

	width  = flag.Int("width", 500, "image width in pixels")
	height = flag.Int("height", 500, "image height in pixels")
	fov    = flag.Float64("fov", 0, "vertical field of view in radians (0 = default)")

	lookFrom = flag.String("look_from", "0,0,0", "camera position as x,y,z")
	lookTo   = flag.String("look_to", "0,0,-1", "camera look target as x,y,z")

	ttlDepth = flag.Int("ttl", 4, "recursion budget for the shading kernel")
	mode     = flag.String("mode", "full", "render mode: full, depth, or normal")

	interactive = flag.Bool("interactive", false, "start an interactive camera shell instead of rendering once")
)

func main() {
	flag.Parse()
	if *scenePath == "" {
		log.Fatal("-scene is required")
	}

	s, err := sceneio.ReadScene(*scenePath)
	if err != nil {
		log.Fatalf("reading scene: %v", err)
	}

	cameraOptions, renderOptions, err := resolveOptions()
	if err != nil {
		log.Fatalf("resolving options: %v", err)
	}

	if *interactive {
		runShell(s, cameraOptions, renderOptions)
		return
	}

	if *outPath == "" {
		log.Fatal("-out is required unless -interactive")
	}
	if err := renderToFile(s, cameraOptions, renderOptions, *outPath); err != nil {
		log.Fatalf("rendering: %v", err)
	}
	fmt.Printf("wrote %s\n", *outPath)
}

func resolveOptions() (raytrace.CameraOptions, raytrace.RenderOptions, error) {
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			return raytrace.CameraOptions{}, raytrace.RenderOptions{}, err
		}
		renderOptions, err := f.RenderOptions()
		if err != nil {
			return raytrace.CameraOptions{}, raytrace.RenderOptions{}, err
		}
		return f.CameraOptions(), renderOptions, nil
	}

	from, err := parseVec3(*lookFrom)
	if err != nil {
		return raytrace.CameraOptions{}, raytrace.RenderOptions{}, fmt.Errorf("-look_from: %w", err)
	}
	to, err := parseVec3(*lookTo)
	if err != nil {
		return raytrace.CameraOptions{}, raytrace.RenderOptions{}, fmt.Errorf("-look_to: %w", err)
	}
	renderMode, err := parseMode(*mode)
	if err != nil {
		return raytrace.CameraOptions{}, raytrace.RenderOptions{}, err
	}

	return raytrace.CameraOptions{
			Width:    *width,
			Height:   *height,
			Fov:      *fov,
			LookFrom: from,
			LookTo:   to,
		}, raytrace.RenderOptions{
			TTLDepth: *ttlDepth,
			Mode:     renderMode,
		}, nil
}

func renderToFile(s *scene.Scene, cameraOptions raytrace.CameraOptions, renderOptions raytrace.RenderOptions, path string) error {
	img, err := raytrace.Render(s, cameraOptions, renderOptions)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return imageio.EncodePNG(f, img)
}

func parseVec3(s string) (prim.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return prim.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return prim.Vec3{}, fmt.Errorf("%q: %w", p, err)
		}
		vals[i] = v
	}
	return prim.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

func parseMode(s string) (raytrace.RenderMode, error) {
	switch s {
	case "full":
		return raytrace.Full, nil
	case "depth":
		return raytrace.Depth, nil
	case "normal":
		return raytrace.Normal, nil
	default:
		return 0, fmt.Errorf("unknown render mode %q", s)
	}
}
