package raytrace

import (
	"math"

	"github.com/kvelez/raytrace/internal/material"
	"github.com/kvelez/raytrace/internal/prim"
	"github.com/kvelez/raytrace/internal/scene"
)

// Reflect mirrors direction d around unit normal n.
func Reflect(d, n *prim.Vec3) *prim.Vec3 {
	return prim.Reflect(d, n)
}

// Refract computes the Snell refraction direction of incident d
// through a surface with unit normal n (facing the incoming ray) and
// relative index of refraction eta = n1/n2. Returns nil on total
// internal reflection.
func Refract(d, n *prim.Vec3, eta float64) *prim.Vec3 {
	dHat := d.Normalize()
	c := -n.Dot(dHat)
	sin2t := eta * eta * (1 - c*c)
	if sin2t > 1 {
		return nil
	}
	cosT := math.Sqrt(1 - sin2t)
	return dHat.Scale(eta).AddI(n.Scale(eta*c - cosT))
}

// LightReach returns the radiance of light arriving at position from
// light, tracing an occlusion ray from the light toward position.
// A fully opaque occluder yields black (shadow); a "reach-through"
// occluder (refraction index 1, nonzero Kt) attenuates by its
// transmission-weighted specular color and recurses past it, treating
// it as a colored filter rather than a shadow caster.
func LightReach(s *scene.Scene, light *scene.Light, position *prim.Vec3, ttl int) prim.Vec3 {
	if ttl < 0 {
		return prim.Vec3{}
	}
	direction := position.Sub(&light.Position).Normalize()
	origin := light.Position
	ray := &prim.Ray{Origin: &origin, Direction: direction}

	hit, mat := ClosestIntersection(s, ray)
	if hit == nil {
		return prim.Vec3{}
	}

	if hit.Position.Sub(position).Length() < rayEpsilon {
		return light.Intensity
	}

	if mat.IsReachThrough() {
		filtered := mat.SpecularColor.Mul(&light.Intensity).Scale(mat.Albedo.Kt)
		// Shift along the occluding ray's direction, not the surface
		// normal at the occlusion point, per the reach-through rule.
		advancedPosition := hit.Position.Add(direction.Scale(rayEpsilon))
		nextLight := &scene.Light{Position: *advancedPosition, Intensity: *filtered}
		return LightReach(s, nextLight, position, ttl-1)
	}
	return prim.Vec3{}
}

// Radiance is the recursive Whitted shading kernel: ambient + emission,
// direct lighting (diffuse + specular, shadow-tested per light),
// mirror reflection, and refractive transmission, each gated by the
// hit material's albedo. inside tracks whether the ray currently
// travels through the interior of a transparent medium, per the
// single-level nesting model described in the shading spec.
func Radiance(s *scene.Scene, ray *prim.Ray, inside bool, ttl int) prim.Vec3 {
	if ttl < 0 {
		return prim.Vec3{}
	}

	hit, mat := ClosestIntersection(s, ray)
	if hit == nil {
		if s.Skybox == nil {
			return prim.Vec3{}
		}
		return s.Skybox.Sample(ray.Direction)
	}

	ambient := mat.AmbientColor.Add(&mat.EmissionIntensity)

	diffuse, specular := directLighting(s, hit, mat, ray, ttl)
	diffuseTerm := mat.DiffuseColor.Mul(diffuse).Scale(mat.Albedo.Kd)
	specularTerm := mat.SpecularColor.Mul(specular).Scale(mat.Albedo.Kd)

	reflected := reflectedTerm(s, hit, mat, ray, inside, ttl)
	refracted := refractedTerm(s, hit, mat, ray, inside, ttl)

	total := ambient.Add(diffuseTerm)
	total.AddI(specularTerm)
	total.AddI(reflected)
	total.AddI(refracted)
	return *total
}

// directLighting sums, over every light, the diffuse and specular
// contributions weighted by that light's shadow-tested reach.
func directLighting(s *scene.Scene, hit *Intersection, mat *material.Material, ray *prim.Ray, ttl int) (*prim.Vec3, *prim.Vec3) {
	diffuseSum := &prim.Vec3{}
	specularSum := &prim.Vec3{}

	for i := range s.Lights {
		light := &s.Lights[i]
		reach := LightReach(s, light, &hit.Position, ttl)
		if reach.IsZero() {
			continue
		}

		lightDir := light.Position.Sub(&hit.Position).Normalize()

		diffuseCos := math.Max(0, lightDir.CosineSimilarity(&hit.Normal))
		diffuseSum.AddI(reach.Scale(diffuseCos))

		negLightDir := lightDir.Neg()
		reflectedLight := Reflect(negLightDir, &hit.Normal).Normalize()
		cosSigma := -reflectedLight.CosineSimilarity(ray.Direction)
		specularSum.AddI(reach.Scale(math.Pow(math.Max(0, cosSigma), mat.SpecularExponent)))
	}
	return diffuseSum, specularSum
}

func reflectedTerm(s *scene.Scene, hit *Intersection, mat *material.Material, ray *prim.Ray, inside bool, ttl int) *prim.Vec3 {
	if mat.Albedo.Kr == 0 || inside {
		return &prim.Vec3{}
	}
	dir := Reflect(ray.Direction, &hit.Normal)
	origin := hit.Position
	reflectedRay := &prim.Ray{Origin: &origin, Direction: dir}
	reflectedRay.Advance(rayEpsilon)

	radiance := Radiance(s, reflectedRay, false, ttl-1)
	return mat.SpecularColor.Mul(&radiance).Scale(mat.Albedo.Kr)
}

func refractedTerm(s *scene.Scene, hit *Intersection, mat *material.Material, ray *prim.Ray, inside bool, ttl int) *prim.Vec3 {
	eta := mat.RefractionIndex
	if !inside {
		eta = 1 / mat.RefractionIndex
	}
	dir := Refract(ray.Direction, &hit.Normal, eta)
	if dir == nil || mat.Albedo.Kt == 0 {
		return &prim.Vec3{}
	}

	origin := hit.Position
	refractedRay := &prim.Ray{Origin: &origin, Direction: dir}
	refractedRay.Advance(rayEpsilon)

	radiance := Radiance(s, refractedRay, !inside, ttl-1)
	term := mat.SpecularColor.Mul(&radiance).Scale(mat.Albedo.Kt)

	if inside {
		term = term.Scale((mat.Albedo.Kt + mat.Albedo.Kr) / mat.Albedo.Kt)
	}
	return term
}
