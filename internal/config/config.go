// Package config loads the optional YAML file bundling camera and
// render options so a batch render does not need a wall of flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kvelez/raytrace"
	"github.com/kvelez/raytrace/internal/prim"
)

// File is the on-disk YAML shape for a render configuration.
type File struct {
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	Fov      float64    `yaml:"fov"`
	LookFrom [3]float64 `yaml:"look_from"`
	LookTo   [3]float64 `yaml:"look_to"`

	TTLDepth int    `yaml:"ttl_depth"`
	Mode     string `yaml:"mode"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &f, nil
}

// CameraOptions converts the file's camera fields to raytrace.CameraOptions.
// Zero-valued look_from/look_to/fov fall through to raytrace's own defaults.
func (f *File) CameraOptions() raytrace.CameraOptions {
	return raytrace.CameraOptions{
		Width:    f.Width,
		Height:   f.Height,
		Fov:      f.Fov,
		LookFrom: vec3(f.LookFrom),
		LookTo:   vec3(f.LookTo),
	}
}

// RenderOptions converts the file's render fields to raytrace.RenderOptions.
func (f *File) RenderOptions() (raytrace.RenderOptions, error) {
	mode, err := parseMode(f.Mode)
	if err != nil {
		return raytrace.RenderOptions{}, err
	}
	return raytrace.RenderOptions{
		TTLDepth: f.TTLDepth,
		Mode:     mode,
	}, nil
}

func vec3(v [3]float64) prim.Vec3 {
	return prim.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func parseMode(s string) (raytrace.RenderMode, error) {
	switch s {
	case "", "full":
		return raytrace.Full, nil
	case "depth":
		return raytrace.Depth, nil
	case "normal":
		return raytrace.Normal, nil
	default:
		return 0, fmt.Errorf("config: unknown render mode %q", s)
	}
}
