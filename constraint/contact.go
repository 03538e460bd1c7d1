package constraint

import (
	"github.com/akmonengine/p3/actor"
)

// PositionIterations bounds the projection loop of a plane contact.
const PositionIterations = 4

// BounceThreshold is the approach speed (m/s) below which restitution is
// ignored, so resting bodies settle instead of jittering.
const BounceThreshold = 0.5

var _ Constraint = (*PlaneContact)(nil)

// PlaneContact keeps one dynamic body above a ground plane.
type PlaneContact struct {
	Plane       *Plane
	Body        *actor.RigidBody
	Penetration float64
}

// SolvePosition projects the body back onto the plane along its normal.
// The lowest support point is recomputed each iteration, rounding can leave
// a residual after the first projection.
func (c *PlaneContact) SolvePosition(dt float64) {
	body := c.Body
	if body.BodyType == actor.BodyTypeStatic {
		return
	}

	for range PositionIterations {
		penetration := c.Plane.Penetration(body)
		if penetration <= 0 {
			break
		}
		body.Transform.Position = body.Transform.Position.Add(c.Plane.Normal.Mul(penetration))
	}
	c.Penetration = max(0, c.Plane.Penetration(body))
}

// SolveVelocity cancels the velocity going into the plane, bouncing it back
// with the plane restitution.
func (c *PlaneContact) SolveVelocity(dt float64) {
	body := c.Body
	if body.BodyType == actor.BodyTypeStatic {
		return
	}

	restitution := c.Plane.Restitution
	if -body.Velocity.Dot(c.Plane.Normal) < BounceThreshold {
		restitution = 0
	}

	body.Velocity = reflect(body.Velocity, c.Plane.Normal, restitution)
	clampSmallVelocities(body)
}
