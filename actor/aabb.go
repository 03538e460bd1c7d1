package actor

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ComputeAABB derives the bounds of a convex collider from six support queries
func ComputeAABB(c Collider) AABB {
	var aabb AABB
	for axis := 0; axis < 3; axis++ {
		var direction mgl64.Vec3
		direction[axis] = 1
		aabb.Max[axis] = c.FindFarthestPoint(direction)[axis]

		direction[axis] = -1
		aabb.Min[axis] = c.FindFarthestPoint(direction)[axis]
	}

	return aabb
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}
