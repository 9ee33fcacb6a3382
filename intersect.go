package raytrace

import (
	"math"

	"github.com/kvelez/raytrace/internal/material"
	"github.com/kvelez/raytrace/internal/prim"
	"github.com/kvelez/raytrace/internal/scene"
)

// triangleEpsilon guards the Möller-Trumbore parallelism test. It is
// distinct from rayEpsilon (self-intersection escape / shadow-hit
// equality / tone-map byte offset) and must not be merged with it.
const triangleEpsilon = 1e-7

// rayEpsilon is used for self-intersection escape, shadow-hit position
// equality, and the tone-map byte rounding offset.
const rayEpsilon = 1e-4

// Intersection is a ray-surface hit record.
type Intersection struct {
	Position prim.Vec3
	Normal   prim.Vec3
	Distance float64
}

// IntersectSphere implements the ray-sphere test of the camera/geometry
// spec: two candidate roots of the quadratic, picking the nearer
// positive one, or the far one if the ray origin is inside the sphere.
func IntersectSphere(ray *prim.Ray, sphere *prim.Sphere) *Intersection {
	dHat := ray.Direction.Normalize()
	l := sphere.Center.Sub(ray.Origin)
	tca := l.Dot(dHat)

	d2 := l.Dot(l) - tca*tca
	r2 := sphere.Radius * sphere.Radius
	if d2 > r2 {
		return nil
	}
	thc := math.Sqrt(r2 - d2)
	t1 := tca - thc
	t2 := tca + thc

	var t float64
	switch {
	case tca > 0 && t1 > 0:
		t = t1
	case tca > 0:
		t = t2
	case tca+thc > 0:
		t = t2
	default:
		return nil
	}

	p := ray.Origin.Add(dHat.Scale(t))
	var normal *prim.Vec3
	if l.Length() > sphere.Radius {
		normal = p.Sub(&sphere.Center).Normalize()
	} else {
		normal = sphere.Center.Sub(p).Normalize()
	}

	return &Intersection{
		Position: *p,
		Normal:   *normal,
		Distance: p.Sub(ray.Origin).Length(),
	}
}

// IntersectTriangle implements the Möller-Trumbore ray-triangle test,
// returning a normal that always faces the incoming ray.
func IntersectTriangle(ray *prim.Ray, tri *prim.Triangle) *Intersection {
	e1 := tri.V1.Sub(&tri.V0)
	e2 := tri.V2.Sub(&tri.V0)
	h := ray.Direction.Cross(e2)
	a := e1.Dot(h)
	if math.Abs(a) < triangleEpsilon {
		return nil
	}
	f := 1 / a
	s := ray.Origin.Sub(&tri.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil
	}
	q := s.Cross(e1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil
	}
	t := f * e2.Dot(q)
	if t <= triangleEpsilon {
		return nil
	}

	p := ray.Origin.Add(ray.Direction.Scale(t))
	normal := e1.Cross(e2).Normalize()
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Neg()
	}

	return &Intersection{
		Position: *p,
		Normal:   *normal,
		Distance: p.Sub(ray.Origin).Length(),
	}
}

// shadingNormal returns the barycentric blend of a mesh object's
// per-vertex normals at hit position p when all three are present,
// otherwise the flat face normal already computed by IntersectTriangle.
func shadingNormal(mesh *scene.MeshObject, flatNormal prim.Vec3, p *prim.Vec3) prim.Vec3 {
	if !mesh.HasVertexNormals() {
		return flatNormal
	}
	a0, a1, a2 := mesh.Triangle.BarycentricAreas(p)
	n0, n1, n2 := mesh.Normals[0], mesh.Normals[1], mesh.Normals[2]
	result := n0.Scale(a0)
	result.AddI(n1.Scale(a1))
	result.AddI(n2.Scale(a2))
	return *result
}

// ClosestIntersection iterates every mesh and sphere object in
// insertion order (meshes before spheres) and returns the nearest hit
// and its material, or (nil, nil) on a total miss. Ties are broken by
// first-encountered.
func ClosestIntersection(s *scene.Scene, ray *prim.Ray) (*Intersection, *material.Material) {
	var best *Intersection
	var bestMaterial *material.Material

	for i := range s.Meshes {
		mesh := &s.Meshes[i]
		hit := IntersectTriangle(ray, &mesh.Triangle)
		if hit == nil {
			continue
		}
		hit.Normal = shadingNormal(mesh, hit.Normal, &hit.Position)
		if best == nil || hit.Distance < best.Distance {
			best = hit
			bestMaterial = mesh.Material
		}
	}
	for i := range s.Spheres {
		sph := &s.Spheres[i]
		hit := IntersectSphere(ray, &sph.Sphere)
		if hit == nil {
			continue
		}
		if best == nil || hit.Distance < best.Distance {
			best = hit
			bestMaterial = sph.Material
		}
	}
	return best, bestMaterial
}
