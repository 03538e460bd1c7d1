package gjk

import (
	"github.com/akmonengine/p3/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// SupportPoint is a vertex of the Minkowski difference A - B.
//
// A and B are the contributing points on each collider. The boolean test
// only needs Point, the contributors are kept for contact generation.
type SupportPoint struct {
	Point mgl64.Vec3
	A     mgl64.Vec3
	B     mgl64.Vec3
}

// NewSupportPoint computes furthestPoint(A, direction) - furthestPoint(B, -direction).
//
// This is the fundamental query that makes GJK work for any convex shape: colliders
// only need a support mapping, never their full geometry.
func NewSupportPoint(a, b actor.Collider, direction mgl64.Vec3) SupportPoint {
	supportA := a.FindFarthestPoint(direction)
	supportB := b.FindFarthestPoint(direction.Mul(-1))

	return SupportPoint{
		Point: supportA.Sub(supportB),
		A:     supportA,
		B:     supportB,
	}
}
