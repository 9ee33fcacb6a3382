package scene

import (
	"testing"

	"github.com/kvelez/raytrace/internal/prim"
)

func TestHasVertexNormalsRequiresAllThree(t *testing.T) {
	n := &prim.Vec3{X: 0, Y: 1, Z: 0}

	cases := []struct {
		name    string
		normals [3]*prim.Vec3
		want    bool
	}{
		{"all present", [3]*prim.Vec3{n, n, n}, true},
		{"one missing", [3]*prim.Vec3{n, nil, n}, false},
		{"none present", [3]*prim.Vec3{nil, nil, nil}, false},
	}
	for _, c := range cases {
		m := &MeshObject{Normals: c.normals}
		if got := m.HasVertexNormals(); got != c.want {
			t.Errorf("%s: HasVertexNormals() = %v, want %v", c.name, got, c.want)
		}
	}
}
