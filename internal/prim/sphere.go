package prim

import "fmt"

// Sphere is a geometric sphere. Radius must be positive.
type Sphere struct {
	Center Vec3
	Radius float64
}

func (s *Sphere) String() string {
	return fmt.Sprintf("Sphere(Center: %v, Radius: %v)", &s.Center, s.Radius)
}

// Contains reports whether p lies strictly inside the sphere.
func (s *Sphere) Contains(p *Vec3) bool {
	return p.Sub(&s.Center).Length() < s.Radius
}
