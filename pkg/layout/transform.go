package layout

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is the resting state a layout assigns to one card.
//
// Orientation is optional. When LookAt is set the card turns its front (+Z)
// toward that point; otherwise Rotation, when set, is applied directly.
// With neither, the card keeps the identity orientation and lies flat
// facing the viewer.
type Transform struct {
	Position mgl64.Vec3  `json:"position"`
	LookAt   *mgl64.Vec3 `json:"look_at,omitempty"`
	Rotation *Euler      `json:"rotation,omitempty"`
}

// Orientation resolves the transform's orientation to a quaternion.
func (t Transform) Orientation() mgl64.Quat {
	switch {
	case t.LookAt != nil:
		return LookAtQuat(t.Position, *t.LookAt)
	case t.Rotation != nil:
		return t.Rotation.Quat()
	default:
		return mgl64.QuatIdent()
	}
}

// Euler is an explicit rotation in radians.
// Roll turns about Z, pitch about X and yaw about Y.
type Euler struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Quat returns the rotation as a quaternion, applying roll first, then
// pitch, then yaw.
func (e Euler) Quat() mgl64.Quat {
	yaw := mgl64.QuatRotate(e.Yaw, mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(e.Pitch, mgl64.Vec3{1, 0, 0})
	roll := mgl64.QuatRotate(e.Roll, mgl64.Vec3{0, 0, 1})
	return yaw.Mul(pitch).Mul(roll).Normalize()
}

var up = mgl64.Vec3{0, 1, 0}

// LookAtQuat returns the orientation that points an object's +Z axis from
// pos toward target, keeping +Y as close to world up as possible.
//
// When the direction is parallel to world up the Z axis is nudged slightly
// so the basis stays well defined; a zero-length direction yields +Z.
func LookAtQuat(pos, target mgl64.Vec3) mgl64.Quat {
	z := target.Sub(pos)
	if z.LenSqr() == 0 {
		z = mgl64.Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LenSqr() == 0 {
		if math.Abs(up.Z()) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(x, y, z).Mat4()).Normalize()
}
