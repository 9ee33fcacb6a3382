// Package material defines surface appearance and light-interaction
// coefficients shared by the scene and shading packages.
package material

import "github.com/kvelez/raytrace/internal/prim"

// Albedo weights the direct lighting term (Kd), the mirror-reflected
// term (Kr), and the refractive-transmission term (Kt). Each component
// is expected in [0, 1], though the shading kernel does not enforce it.
type Albedo struct {
	Kd, Kr, Kt float64
}

// Material describes a surface's appearance and optical behavior.
// The zero value has black colors, a zero specular exponent, a
// refraction index of 0 and an all-zero albedo. The .mtl reader starts
// each entry from this value with Albedo set to DefaultAlbedo, then
// overwrites fields one directive at a time.
type Material struct {
	Name string

	AmbientColor      prim.Vec3
	DiffuseColor      prim.Vec3
	SpecularColor     prim.Vec3
	EmissionIntensity prim.Vec3

	SpecularExponent float64
	RefractionIndex  float64
	Albedo           Albedo
}

// DefaultAlbedo is the albedo assigned when a .mtl entry never specifies
// an "al" directive: fully diffuse, no reflection, no transmission.
var DefaultAlbedo = Albedo{Kd: 1, Kr: 0, Kt: 0}

// IsReachThrough reports whether this material acts as a colored filter
// rather than an opaque shadow caster: refraction index exactly 1 (no
// bending of light) with nonzero transmission.
func (m *Material) IsReachThrough() bool {
	return m.RefractionIndex == 1 && m.Albedo.Kt != 0
}
