package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by gravity and constraints
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable and have infinite mass
	BodyTypeStatic
)

// RigidBody represents a rigid body in the sandbox. Its collider is expressed
// in local space; the body itself is a Collider in world space.
type RigidBody struct {
	ID uuid.UUID

	Transform Transform

	Velocity mgl64.Vec3 // Linear velocity (m/s)
	Momentum mgl64.Vec3

	Mass        float64
	InverseMass float64
	BodyType    BodyType

	Collider Collider
}

// NewRigidBody creates a new rigid body with a fresh identifier.
// mass is ignored for static bodies.
func NewRigidBody(transform Transform, collider Collider, bodyType BodyType, mass float64) *RigidBody {
	rb := &RigidBody{
		ID:        uuid.New(),
		Transform: NewTransform(transform.Position, transform.Rotation),
		BodyType:  bodyType,
		Collider:  collider,
	}

	if bodyType == BodyTypeStatic || mass <= 0 {
		rb.Mass = math.Inf(1)
		rb.InverseMass = 0
	} else {
		rb.Mass = mass
		rb.InverseMass = 1.0 / mass
	}

	return rb
}

// Integrate advances the body with semi-implicit Euler: velocity first, then
// position from the updated velocity.
func (rb *RigidBody) Integrate(dt float64, gravity mgl64.Vec3) {
	if rb.BodyType == BodyTypeStatic {
		return
	}

	rb.SetVelocity(rb.Velocity.Add(gravity.Mul(dt)))
	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))
}

// SetVelocity sets the linear velocity and the matching momentum. A body
// without finite mass carries no momentum.
func (rb *RigidBody) SetVelocity(velocity mgl64.Vec3) {
	rb.Velocity = velocity
	if rb.InverseMass == 0 {
		rb.Momentum = mgl64.Vec3{}
		return
	}
	rb.Momentum = velocity.Mul(rb.Mass)
}

// ValidateMass reports ErrInvalidMass for a dynamic body whose mass is not
// positive and finite. Static bodies always pass.
func (rb *RigidBody) ValidateMass() error {
	if rb.BodyType == BodyTypeStatic {
		return nil
	}
	finite := rb.Mass > 0 && !math.IsInf(rb.Mass, 1) &&
		rb.InverseMass > 0 && !math.IsInf(rb.InverseMass, 1)
	if !finite {
		return fmt.Errorf("mass %v: %w", rb.Mass, ErrInvalidMass)
	}
	return nil
}

// FindFarthestPoint is the world-space support mapping of the body's collider
func (rb *RigidBody) FindFarthestPoint(direction mgl64.Vec3) mgl64.Vec3 {
	// 1. direction into local space
	localDirection := rb.Transform.DirectionToLocal(direction)

	// 2. local support
	localSupport := rb.Collider.FindFarthestPoint(localDirection)

	// 3. back to world space
	return rb.Transform.ToWorld(localSupport)
}

// AABB returns the world-space bounds of the body
func (rb *RigidBody) AABB() AABB {
	return ComputeAABB(rb)
}
