package prim

// Triangle is a fixed-size sequence of three vertices.
type Triangle struct {
	V0, V1, V2 Vec3
}

// Area returns the triangle's area.
func (t *Triangle) Area() float64 {
	e1 := t.V1.Sub(&t.V0)
	e2 := t.V2.Sub(&t.V0)
	return e1.Cross(e2).Length() / 2
}

// BarycentricAreas returns the unsigned sub-triangle "areas" of (V1,V2,p),
// (V2,V0,p), (V0,V1,p), in that order, each further halved to match the
// reference implementation exactly. These do NOT sum to 1 (that would make
// them true barycentric weights); the shading-normal interpolation uses
// this linear combination directly, unnormalized, per spec §4.2 and the
// open question it preserves.
func (t *Triangle) BarycentricAreas(p *Vec3) (a0, a1, a2 float64) {
	sub := func(a, b, c *Vec3) float64 {
		tri := Triangle{V0: *a, V1: *b, V2: *c}
		return tri.Area() / 2
	}
	a0 = sub(&t.V1, &t.V2, p)
	a1 = sub(&t.V2, &t.V0, p)
	a2 = sub(&t.V0, &t.V1, p)
	return
}
