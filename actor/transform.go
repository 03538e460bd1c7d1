package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position and orientation in 3D space
type Transform struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	InverseRotation mgl64.Quat
}

// NewTransform creates a transform at the given position and rotation.
// A zero rotation is treated as identity.
func NewTransform(position mgl64.Vec3, rotation mgl64.Quat) Transform {
	if rotation == (mgl64.Quat{}) {
		rotation = mgl64.QuatIdent()
	}
	rotation = rotation.Normalize()

	return Transform{
		Position:        position,
		Rotation:        rotation,
		InverseRotation: rotation.Inverse(),
	}
}

// ToWorld maps a local-space point to world space
func (t Transform) ToWorld(point mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(point).Add(t.Position)
}

// DirectionToLocal rotates a world-space direction into local space.
// Translation does not apply to directions.
func (t Transform) DirectionToLocal(direction mgl64.Vec3) mgl64.Vec3 {
	return t.InverseRotation.Rotate(direction)
}
