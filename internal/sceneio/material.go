package sceneio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kvelez/raytrace/internal/material"
	"github.com/kvelez/raytrace/internal/prim"
)

func newDefaultMaterial() *material.Material {
	return &material.Material{Albedo: material.DefaultAlbedo}
}

// ReadMaterialFile parses a Wavefront-MTL-like material file: newmtl opens
// a material, then Ka/Kd/Ks/Ke/Ns/Ni/al set its fields one directive at a
// time. A material whose fields are never set keeps the zero-value colors,
// zero exponent and refraction index, and default albedo (1, 0, 0).
func ReadMaterialFile(path string) (map[string]*material.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MissingResourceError{Path: path, Err: err}
	}
	defer f.Close()
	return parseMaterials(f, path)
}

func parseMaterials(r io.Reader, path string) (map[string]*material.Material, error) {
	materials := make(map[string]*material.Material)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	insideMaterial := false
	current := newDefaultMaterial()

	commit := func() {
		materials[current.Name] = current
	}

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if insideMaterial {
				commit()
			}
			current = newDefaultMaterial()
			insideMaterial = true
			if len(fields) >= 2 {
				current.Name = fields[1]
			}
		case "Ka":
			v, err := parseVec3(fields, 1, path, lineNo)
			if err != nil {
				return nil, err
			}
			current.AmbientColor = v
		case "Kd":
			v, err := parseVec3(fields, 1, path, lineNo)
			if err != nil {
				return nil, err
			}
			current.DiffuseColor = v
		case "Ks":
			v, err := parseVec3(fields, 1, path, lineNo)
			if err != nil {
				return nil, err
			}
			current.SpecularColor = v
		case "Ke":
			v, err := parseVec3(fields, 1, path, lineNo)
			if err != nil {
				return nil, err
			}
			current.EmissionIntensity = v
		case "Ns":
			v, err := parseFloat(fields, 1, path, lineNo)
			if err != nil {
				return nil, err
			}
			current.SpecularExponent = v
		case "Ni":
			v, err := parseFloat(fields, 1, path, lineNo)
			if err != nil {
				return nil, err
			}
			current.RefractionIndex = v
		case "al":
			kd, err := parseFloat(fields, 1, path, lineNo)
			if err != nil {
				return nil, err
			}
			kr, err := parseFloat(fields, 2, path, lineNo)
			if err != nil {
				return nil, err
			}
			kt, err := parseFloat(fields, 3, path, lineNo)
			if err != nil {
				return nil, err
			}
			current.Albedo = material.Albedo{Kd: kd, Kr: kr, Kt: kt}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &InvalidSceneFileError{Path: path, Line: lineNo, Err: err}
	}
	// The reference reader always commits the in-progress material, even
	// when no newmtl directive was ever seen.
	commit()

	return materials, nil
}

func parseFloat(fields []string, idx int, path string, line int) (float64, error) {
	if idx >= len(fields) {
		return 0, &InvalidSceneFileError{Path: path, Line: line, Err: fmt.Errorf("missing numeric token at position %d", idx)}
	}
	v, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return 0, &InvalidSceneFileError{Path: path, Line: line, Err: err}
	}
	return v, nil
}

func parseVec3(fields []string, idx int, path string, line int) (prim.Vec3, error) {
	x, err := parseFloat(fields, idx, path, line)
	if err != nil {
		return prim.Vec3{}, err
	}
	y, err := parseFloat(fields, idx+1, path, line)
	if err != nil {
		return prim.Vec3{}, err
	}
	z, err := parseFloat(fields, idx+2, path, line)
	if err != nil {
		return prim.Vec3{}, err
	}
	return prim.Vec3{X: x, Y: y, Z: z}, nil
}
