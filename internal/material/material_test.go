package material

import "testing"

func TestIsReachThrough(t *testing.T) {
	cases := []struct {
		name string
		m    Material
		want bool
	}{
		{"refractive index 1, nonzero kt", Material{RefractionIndex: 1, Albedo: Albedo{Kt: 0.5}}, true},
		{"refractive index 1, zero kt", Material{RefractionIndex: 1, Albedo: Albedo{Kt: 0}}, false},
		{"refractive index 1.5, nonzero kt", Material{RefractionIndex: 1.5, Albedo: Albedo{Kt: 0.5}}, false},
	}
	for _, c := range cases {
		if got := c.m.IsReachThrough(); got != c.want {
			t.Errorf("%s: IsReachThrough() = %v, want %v", c.name, got, c.want)
		}
	}
}
