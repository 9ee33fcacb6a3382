package prim

import (
	"math"
	"math/rand"
	"testing"
)

func randVec(rng *rand.Rand) Vec3 {
	return Vec3{
		X: rng.Float64()*20 - 10,
		Y: rng.Float64()*20 - 10,
		Z: rng.Float64()*20 - 10,
	}
}

func TestNormalizeIsUnitLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		v := randVec(rng)
		if v.Length() <= 1e-6 {
			continue
		}
		n := v.Normalize()
		if math.Abs(n.Length()-1) > 1e-6 {
			t.Fatalf("Normalize(%v) has length %v, want 1", v, n.Length())
		}
	}
}

func TestDotIsCommutative(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		a, b := randVec(rng), randVec(rng)
		if got, want := a.Dot(&b), b.Dot(&a); got != want {
			t.Fatalf("Dot not commutative: %v vs %v", got, want)
		}
	}
}

func TestCrossIsAnticommutativeAndOrthogonal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		a, b := randVec(rng), randVec(rng)
		cab := a.Cross(&b)
		cba := b.Cross(&a)
		if math.Abs(cab.X+cba.X) > 1e-9 || math.Abs(cab.Y+cba.Y) > 1e-9 || math.Abs(cab.Z+cba.Z) > 1e-9 {
			t.Fatalf("Cross not anticommutative: %v vs %v", cab, cba)
		}
		if math.Abs(a.Dot(cab)) > 1e-6 {
			t.Fatalf("a.Dot(a x b) = %v, want 0", a.Dot(cab))
		}
	}
}

func TestReflectIsInvolutionForUnitNormal(t *testing.T) {
	n := Vec3{X: 0, Y: 1, Z: 0}
	d := Vec3{X: 0.6, Y: -0.8, Z: 0}
	r := Reflect(&d, &n)
	r2 := Reflect(r, &n)
	if math.Abs(r2.X-d.X) > 1e-6 || math.Abs(r2.Y-d.Y) > 1e-6 || math.Abs(r2.Z-d.Z) > 1e-6 {
		t.Fatalf("Reflect(Reflect(d)) = %v, want %v", r2, d)
	}
}

func TestCosineSimilarityOfParallelVectorsIsOne(t *testing.T) {
	a := Vec3{X: 2, Y: 0, Z: 0}
	b := Vec3{X: 5, Y: 0, Z: 0}
	if got := a.CosineSimilarity(&b); math.Abs(got-1) > 1e-9 {
		t.Fatalf("CosineSimilarity(parallel) = %v, want 1", got)
	}
}

func TestCosineSimilarityOfPerpendicularVectorsIsZero(t *testing.T) {
	a := Vec3{X: 1, Y: 0, Z: 0}
	b := Vec3{X: 0, Y: 3, Z: 0}
	if got := a.CosineSimilarity(&b); math.Abs(got) > 1e-9 {
		t.Fatalf("CosineSimilarity(perpendicular) = %v, want 0", got)
	}
}

func TestClampIClampsEachComponent(t *testing.T) {
	v := Vec3{X: -1, Y: 0.5, Z: 2}
	got := v.ClampI()
	want := Vec3{X: 0, Y: 0.5, Z: 1}
	if *got != want {
		t.Fatalf("ClampI() = %v, want %v", *got, want)
	}
}

func TestReflectFixture(t *testing.T) {
	d := Vec3{X: 0.707107, Y: -0.707107, Z: 0}
	n := Vec3{X: 0, Y: 1, Z: 0}
	got := Reflect(&d, &n)
	want := Vec3{X: 0.707107, Y: 0.707107, Z: 0}
	const eps = 1e-5
	if math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps || math.Abs(got.Z-want.Z) > eps {
		t.Fatalf("Reflect() = %v, want %v", got, want)
	}
}
