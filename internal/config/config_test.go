package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kvelez/raytrace"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "render.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadAndConvert(t *testing.T) {
	path := writeTempConfig(t, `
width: 640
height: 480
fov: 1.2
look_from: [0, 1, 2]
look_to: [0, 0, 0]
ttl_depth: 6
mode: depth
`)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cameraOptions := f.CameraOptions()
	if cameraOptions.Width != 640 || cameraOptions.Height != 480 {
		t.Errorf("camera size = %dx%d, want 640x480", cameraOptions.Width, cameraOptions.Height)
	}
	if cameraOptions.LookFrom.Y != 1 || cameraOptions.LookFrom.Z != 2 {
		t.Errorf("LookFrom = %+v, want y=1,z=2", cameraOptions.LookFrom)
	}

	renderOptions, err := f.RenderOptions()
	if err != nil {
		t.Fatalf("RenderOptions: %v", err)
	}
	if renderOptions.TTLDepth != 6 {
		t.Errorf("TTLDepth = %d, want 6", renderOptions.TTLDepth)
	}
	if renderOptions.Mode != raytrace.Depth {
		t.Errorf("Mode = %v, want Depth", renderOptions.Mode)
	}
}

func TestRenderOptionsDefaultsToFullMode(t *testing.T) {
	f := &File{}
	renderOptions, err := f.RenderOptions()
	if err != nil {
		t.Fatalf("RenderOptions: %v", err)
	}
	if renderOptions.Mode != raytrace.Full {
		t.Errorf("Mode = %v, want Full", renderOptions.Mode)
	}
}

func TestRenderOptionsUnknownModeIsError(t *testing.T) {
	f := &File{Mode: "bogus"}
	if _, err := f.RenderOptions(); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}
