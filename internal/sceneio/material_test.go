package sceneio

import (
	"strings"
	"testing"

	"github.com/kvelez/raytrace/internal/material"
	"github.com/kvelez/raytrace/internal/prim"
)

func TestParseMaterialsFieldByFieldDefaults(t *testing.T) {
	text := `
newmtl red
Kd 1 0 0
Ns 32
`
	materials, err := parseMaterials(strings.NewReader(text), "test.mtl")
	if err != nil {
		t.Fatalf("parseMaterials: %v", err)
	}
	red, ok := materials["red"]
	if !ok {
		t.Fatalf("materials = %v, want key %q", materials, "red")
	}
	if red.DiffuseColor != (prim.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("DiffuseColor = %v, want (1,0,0)", red.DiffuseColor)
	}
	if red.AmbientColor != (prim.Vec3{}) {
		t.Errorf("AmbientColor = %v, want zero value (unset Ka)", red.AmbientColor)
	}
	if red.SpecularExponent != 32 {
		t.Errorf("SpecularExponent = %v, want 32", red.SpecularExponent)
	}
	if red.Albedo != material.DefaultAlbedo {
		t.Errorf("Albedo = %v, want default %v (unset al)", red.Albedo, material.DefaultAlbedo)
	}
}

func TestParseMaterialsCommitsTrailingEntryWithoutNewmtl(t *testing.T) {
	text := "Kd 0.5 0.5 0.5\n"
	materials, err := parseMaterials(strings.NewReader(text), "test.mtl")
	if err != nil {
		t.Fatalf("parseMaterials: %v", err)
	}
	m, ok := materials[""]
	if !ok {
		t.Fatalf("expected an empty-named material to be committed, got %v", materials)
	}
	if m.DiffuseColor != (prim.Vec3{X: 0.5, Y: 0.5, Z: 0.5}) {
		t.Errorf("DiffuseColor = %v, want (0.5,0.5,0.5)", m.DiffuseColor)
	}
}

func TestParseMaterialsInvalidNumericToken(t *testing.T) {
	text := "newmtl m\nKd x 0 0\n"
	if _, err := parseMaterials(strings.NewReader(text), "test.mtl"); err == nil {
		t.Error("expected an error for a non-numeric Kd token")
	}
}
