package raytrace

import (
	"math"

	"github.com/kvelez/raytrace/internal/prim"
)

// degenerateAxisEpsilon is the threshold below which the look direction
// is considered aligned with the world-up axis, triggering the
// right/up axis substitution in NewRayCaster.
const degenerateAxisEpsilon = 1e-4

// CameraOptions configures the virtual camera. Fov is the vertical
// field of view in radians.
type CameraOptions struct {
	Width, Height int
	Fov           float64
	LookFrom      prim.Vec3
	LookTo        prim.Vec3
}

// DefaultCameraOptions fills in zero-valued fields of opts with the
// documented defaults (fov = pi/2, look_from = origin, look_to =
// (0,0,-1)) and returns the result; it does not mutate opts.
func DefaultCameraOptions(opts CameraOptions) CameraOptions {
	if opts.Fov == 0 {
		opts.Fov = math.Pi / 2
	}
	if opts.LookTo == (prim.Vec3{}) {
		opts.LookTo = prim.Vec3{X: 0, Y: 0, Z: -1}
	}
	return opts
}

// RayCaster maps a pixel coordinate to a world-space primary ray,
// given an orthonormal camera frame built once at construction time.
type RayCaster struct {
	width, height int

	origin   prim.Vec3
	backward prim.Vec3
	right    prim.Vec3 // pre-scaled by pixel pitch
	up       prim.Vec3 // pre-scaled by pixel pitch
}

// NewRayCaster builds the camera frame described in the camera model:
// a backward axis from look_to to look_from, a right/up pair completing
// an orthonormal frame (substituting world axes when the view is
// parallel to world-up), scaled by the per-pixel angular pitch implied
// by fov and the image height.
func NewRayCaster(opts CameraOptions) *RayCaster {
	backward := opts.LookFrom.Sub(&opts.LookTo).Normalize()

	worldUp := prim.Vec3{X: 0, Y: 1, Z: 0}
	rightRaw := worldUp.Cross(backward)

	var right, up *prim.Vec3
	if rightRaw.Length() < degenerateAxisEpsilon {
		right = &prim.Vec3{X: 1, Y: 0, Z: 0}
		up = &prim.Vec3{X: 0, Y: 0, Z: 1}
	} else {
		right = rightRaw.Normalize()
		up = right.Cross(backward).Normalize()
	}

	pitch := 2 * math.Tan(opts.Fov/2) / float64(opts.Height)

	return &RayCaster{
		width:    opts.Width,
		height:   opts.Height,
		origin:   opts.LookFrom,
		backward: *backward,
		right:    *right.Scale(pitch),
		up:       *up.Scale(pitch),
	}
}

// Cast returns the primary ray through pixel (i, j), with i horizontal
// in [0, width) and j vertical in [0, height). Row j=0 is the top of
// the image as viewed from look_from toward look_to.
func (c *RayCaster) Cast(i, j int) *prim.Ray {
	horiz := (float64(2*i-c.width+1) / 2)
	vert := (float64(2*j-c.height+1) / 2)

	direction := c.right.Scale(horiz).
		AddI(c.up.Scale(vert)).
		Sub(&c.backward).
		Normalize()

	origin := c.origin
	return &prim.Ray{Origin: &origin, Direction: direction}
}
