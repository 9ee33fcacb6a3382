// Package scene holds the in-memory scene data model that the
// rendering core consumes: meshes, spheres, lights, and an optional
// skybox, with materials and per-vertex normals owned by the scene
// and referenced by stable pointer for its lifetime.
package scene

import (
	"github.com/kvelez/raytrace/internal/material"
	"github.com/kvelez/raytrace/internal/prim"
)

// MeshObject is a single triangle together with its material and
// optional per-vertex normals. If all three normal slots are non-nil,
// the shading normal at a hit is their barycentric blend; otherwise
// the flat face normal is used. This all-or-nothing rule is load
// bearing and must not be relaxed to "blend whichever are present."
type MeshObject struct {
	Material *material.Material
	Triangle prim.Triangle
	Normals  [3]*prim.Vec3
}

// HasVertexNormals reports whether all three corners carry a normal.
func (m *MeshObject) HasVertexNormals() bool {
	return m.Normals[0] != nil && m.Normals[1] != nil && m.Normals[2] != nil
}

// SphereObject is a sphere together with its material.
type SphereObject struct {
	Material *material.Material
	Sphere   prim.Sphere
}

// Light is a point light source.
type Light struct {
	Position  prim.Vec3
	Intensity prim.Vec3
}

// Skybox samples a miss ray's direction for a background color. It is
// implemented by the root package's cube-map sampler; scene only holds
// a reference so the reader can wire one up without importing the
// rendering core.
type Skybox interface {
	Sample(direction *prim.Vec3) prim.Vec3
}

// Scene is the fully built, read-only input to a render. It is
// produced once by a reader and consumed by the renderer for the
// duration of one render call.
type Scene struct {
	Meshes  []MeshObject
	Spheres []SphereObject
	Lights  []Light

	// Materials owns every material referenced by Meshes and Spheres,
	// keyed by name as declared in the .mtl file.
	Materials map[string]*material.Material

	// Normals owns every per-vertex normal referenced by Meshes.
	Normals []*prim.Vec3

	Skybox Skybox
}
