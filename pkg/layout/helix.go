package layout

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// helix places even records on one strand and odd records on the other,
// half a turn apart. Cards face away from the vertical axis at their own
// height.
func helix(n int, opts *Options) TargetSet {
	out := make(TargetSet, n)
	for i := range n {
		strand, k := i%2, i/2
		theta := float64(k)*opts.HelixAngleStep + float64(strand)*math.Pi
		pos := mgl64.Vec3{
			opts.HelixRadius * math.Cos(theta),
			-float64(k)*opts.HelixStep + opts.HelixTop,
			opts.HelixRadius * math.Sin(theta),
		}
		target := mgl64.Vec3{pos.X() * 2, pos.Y(), pos.Z() * 2}
		out[i] = Transform{Position: pos, LookAt: &target}
	}
	return out
}
