// Package sceneio implements the scene file reader: the external
// collaborator that turns a Wavefront-OBJ-like text scene (and its
// sibling .mtl material file and skybox image) into the in-memory
// scene.Scene the rendering core consumes. The core imports this
// package only to register its cube-map sampler in SkyboxSampler;
// cmd/raytrace wires reading and rendering together.
package sceneio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kvelez/raytrace/internal/imageio"
	"github.com/kvelez/raytrace/internal/material"
	"github.com/kvelez/raytrace/internal/prim"
	"github.com/kvelez/raytrace/internal/scene"
)

// cubeSkybox adapts a decoded cube-map image to scene.Skybox without
// the sceneio package needing to import the rendering core (which is
// where the cube-map sampling math lives, via the SkyboxSampler hook
// below).
type cubeSkybox struct {
	image  *imageio.Image
	sample func(img *imageio.Image, direction *prim.Vec3) prim.Vec3
}

func (s *cubeSkybox) Sample(direction *prim.Vec3) prim.Vec3 {
	return s.sample(s.image, direction)
}

// SkyboxSampler is supplied by the rendering core (the init function in the
// root package's skybox.go sets it) so sceneio can construct a scene.Skybox without an
// import cycle: sceneio is a leaf consumed by the core, not the reverse.
var SkyboxSampler func(img *imageio.Image, direction *prim.Vec3) prim.Vec3

// ReadScene parses the scene file at path, together with any mtllib and
// Sky resources it references (resolved relative to path's directory),
// into a fully built scene.Scene.
func ReadScene(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InvalidSceneFileError{Path: path, Err: err}
	}
	defer f.Close()

	dir := filepath.Dir(path)
	return parseScene(f, path, dir)
}

type sceneBuilder struct {
	path string
	dir  string

	vertices []prim.Vec3
	normals  []*prim.Vec3

	materials       map[string]*material.Material
	currentMaterial *material.Material

	meshes  []scene.MeshObject
	spheres []scene.SphereObject
	lights  []scene.Light
	skybox  scene.Skybox
}

func parseScene(r io.Reader, path, dir string) (*scene.Scene, error) {
	b := &sceneBuilder{
		path:            path,
		dir:             dir,
		materials:       make(map[string]*material.Material),
		currentMaterial: newDefaultMaterial(),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := b.applyDirective(fields, lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &InvalidSceneFileError{Path: path, Line: lineNo, Err: err}
	}

	return &scene.Scene{
		Meshes:    b.meshes,
		Spheres:   b.spheres,
		Lights:    b.lights,
		Materials: b.materials,
		Normals:   b.normals,
		Skybox:    b.skybox,
	}, nil
}

func (b *sceneBuilder) applyDirective(fields []string, lineNo int) error {
	switch fields[0] {
	case "v":
		v, err := parseVec3(fields, 1, b.path, lineNo)
		if err != nil {
			return err
		}
		b.vertices = append(b.vertices, v)

	case "vn":
		v, err := parseVec3(fields, 1, b.path, lineNo)
		if err != nil {
			return err
		}
		b.normals = append(b.normals, &v)

	case "vt":
		// Texture coordinates are not used by the core and are ignored.

	case "f":
		return b.applyFace(fields, lineNo)

	case "mtllib":
		if len(fields) < 2 {
			return &InvalidSceneFileError{Path: b.path, Line: lineNo, Err: fmt.Errorf("mtllib: missing path")}
		}
		materials, err := ReadMaterialFile(filepath.Join(b.dir, fields[1]))
		if err != nil {
			return err
		}
		b.materials = materials

	case "usemtl":
		if len(fields) < 2 {
			return &InvalidSceneFileError{Path: b.path, Line: lineNo, Err: fmt.Errorf("usemtl: missing name")}
		}
		m, ok := b.materials[fields[1]]
		if !ok {
			return &MissingMaterialError{Path: b.path, Name: fields[1]}
		}
		b.currentMaterial = m

	case "S":
		return b.applySphere(fields, lineNo)

	case "P":
		return b.applyLight(fields, lineNo)

	case "Sky":
		return b.applySky(fields, lineNo)
	}
	return nil
}

func (b *sceneBuilder) resolveVertexIndex(tok string, lineNo int) (int, error) {
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &InvalidSceneFileError{Path: b.path, Line: lineNo, Err: err}
	}
	if i < 0 {
		return len(b.vertices) + i, nil
	}
	return i - 1, nil
}

func (b *sceneBuilder) resolveNormalIndex(i int) int {
	if i < 0 {
		return len(b.normals) + i
	}
	return i - 1
}

// faceCorner is a parsed "v[/t][/n]" face token.
type faceCorner struct {
	vertexIndex int
	normal      *prim.Vec3 // nil if this corner has no normal
}

func (b *sceneBuilder) parseFaceCorner(tok string, lineNo int) (faceCorner, error) {
	parts := strings.Split(tok, "/")
	vi, err := b.resolveVertexIndex(parts[0], lineNo)
	if err != nil {
		return faceCorner{}, err
	}
	if vi < 0 || vi >= len(b.vertices) {
		return faceCorner{}, &InvalidSceneFileError{Path: b.path, Line: lineNo, Err: fmt.Errorf("face vertex index out of range: %s", tok)}
	}

	var normalIdx int
	switch {
	case len(parts) >= 3 && parts[2] != "":
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return faceCorner{}, &InvalidSceneFileError{Path: b.path, Line: lineNo, Err: err}
		}
		normalIdx = n
	default:
		normalIdx = 0
	}

	corner := faceCorner{vertexIndex: vi}
	if normalIdx != 0 {
		ni := b.resolveNormalIndex(normalIdx)
		if ni < 0 || ni >= len(b.normals) {
			return faceCorner{}, &InvalidSceneFileError{Path: b.path, Line: lineNo, Err: fmt.Errorf("face normal index out of range: %s", tok)}
		}
		corner.normal = b.normals[ni]
	}
	return corner, nil
}

// applyFace fan-triangulates "f a b1/c1 b2/c2 ..." into one MeshObject
// per triangle (corner0, corner_i, corner_{i+1}).
func (b *sceneBuilder) applyFace(fields []string, lineNo int) error {
	tokens := fields[1:]
	if len(tokens) < 3 {
		return &InvalidSceneFileError{Path: b.path, Line: lineNo, Err: fmt.Errorf("face needs at least 3 vertices")}
	}
	corners := make([]faceCorner, len(tokens))
	for i, tok := range tokens {
		c, err := b.parseFaceCorner(tok, lineNo)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	for i := 1; i < len(corners)-1; i++ {
		c0, c1, c2 := corners[0], corners[i], corners[i+1]
		b.meshes = append(b.meshes, scene.MeshObject{
			Material: b.currentMaterial,
			Triangle: prim.Triangle{
				V0: b.vertices[c0.vertexIndex],
				V1: b.vertices[c1.vertexIndex],
				V2: b.vertices[c2.vertexIndex],
			},
			Normals: [3]*prim.Vec3{c0.normal, c1.normal, c2.normal},
		})
	}
	return nil
}

func (b *sceneBuilder) applySphere(fields []string, lineNo int) error {
	center, err := parseVec3(fields, 1, b.path, lineNo)
	if err != nil {
		return err
	}
	radius, err := parseFloat(fields, 4, b.path, lineNo)
	if err != nil {
		return err
	}
	b.spheres = append(b.spheres, scene.SphereObject{
		Material: b.currentMaterial,
		Sphere:   prim.Sphere{Center: center, Radius: radius},
	})
	return nil
}

func (b *sceneBuilder) applyLight(fields []string, lineNo int) error {
	position, err := parseVec3(fields, 1, b.path, lineNo)
	if err != nil {
		return err
	}
	intensity, err := parseVec3(fields, 4, b.path, lineNo)
	if err != nil {
		return err
	}
	b.lights = append(b.lights, scene.Light{Position: position, Intensity: intensity})
	return nil
}

func (b *sceneBuilder) applySky(fields []string, lineNo int) error {
	if len(fields) < 4 {
		return &InvalidSceneFileError{Path: b.path, Line: lineNo, Err: fmt.Errorf("Sky: missing path")}
	}
	imgPath := filepath.Join(b.dir, fields[3])
	f, err := os.Open(imgPath)
	if err != nil {
		return &MissingResourceError{Path: imgPath, Err: err}
	}
	defer f.Close()
	img, err := imageio.DecodePNG(f)
	if err != nil {
		return &MissingResourceError{Path: imgPath, Err: err}
	}
	if SkyboxSampler == nil {
		return fmt.Errorf("sceneio: no skybox sampler registered")
	}
	b.skybox = &cubeSkybox{image: img, sample: SkyboxSampler}
	return nil
}
