package constraint

import (
	"errors"

	"github.com/akmonengine/p3/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidPlane is returned for a plane without a usable normal.
var ErrInvalidPlane = errors.New("constraint: plane normal must be non-zero and finite")

// Constraint is solved once per substep: positions first, then velocities
// once every position constraint has been applied.
type Constraint interface {
	SolvePosition(dt float64)
	SolveVelocity(dt float64)
}

// reflect removes the component of velocity going into normal and bounces it
// back scaled by restitution. Velocities leaving the surface are untouched.
func reflect(velocity, normal mgl64.Vec3, restitution float64) mgl64.Vec3 {
	normalSpeed := velocity.Dot(normal)
	if normalSpeed >= 0 {
		return velocity
	}

	return velocity.Sub(normal.Mul(normalSpeed * (1 + restitution)))
}

func clampSmallVelocities(rb *actor.RigidBody) {
	const velocityThreshold = 1e-5

	velocity := rb.Velocity
	if velocity.Len() < velocityThreshold {
		velocity = mgl64.Vec3{0, 0, 0}
	}
	rb.SetVelocity(velocity)
}
