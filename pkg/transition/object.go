package transition

import "github.com/go-gl/mathgl/mgl64"

// Object is a card whose live transform the controller animates.
// Implementations are owned by a scene host; the controller only reads and
// writes position and rotation.
type Object interface {
	ID() string
	Position() mgl64.Vec3
	SetPosition(mgl64.Vec3)
	Rotation() mgl64.Quat
	SetRotation(mgl64.Quat)
}

// RenderFunc redraws the scene. It is called once per animation step while
// a transition runs. Errors it returns are logged and otherwise ignored.
type RenderFunc func() error

// RandSource yields uniform floats in [0, 1). *rand.Rand from math/rand/v2
// satisfies it.
type RandSource interface {
	Float64() float64
}
