package layout

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func sphere(n int, opts *Options) TargetSet {
	out := make(TargetSet, n)
	for i := range n {
		phi, theta := sphereAngles(i, n)
		pos := spherical(opts.SphereRadius, phi, theta)
		target := pos.Mul(2)
		out[i] = Transform{Position: pos, LookAt: &target}
	}
	return out
}

// sphereAngles returns the polar and azimuthal angle of record i of n.
// A single record sits at the pole.
func sphereAngles(i, n int) (phi, theta float64) {
	if n <= 1 {
		return 0, 0
	}
	phi = math.Acos(-1 + 2*float64(i)/float64(n))
	theta = math.Sqrt(float64(n)*math.Pi) * phi
	return phi, theta
}

// spherical converts spherical coordinates to Cartesian with Y as the
// polar axis: phi is measured from +Y, theta around Y starting at +Z.
func spherical(r, phi, theta float64) mgl64.Vec3 {
	sinPhi := math.Sin(phi)
	return mgl64.Vec3{
		r * sinPhi * math.Sin(theta),
		r * math.Cos(phi),
		r * sinPhi * math.Cos(theta),
	}
}
