package constraint

import (
	"fmt"
	"math"

	"github.com/akmonengine/p3/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Plane is an infinite static ground: the points x with dot(Normal, x) == Offset.
// Bodies are kept on the side Normal points to.
type Plane struct {
	Normal      mgl64.Vec3
	Offset      float64
	Restitution float64
}

// NewPlane builds the plane through point, normal is normalized.
func NewPlane(normal, point mgl64.Vec3, restitution float64) (*Plane, error) {
	length := normal.Len()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("normal %v: %w", normal, ErrInvalidPlane)
	}
	normal = normal.Mul(1 / length)

	return &Plane{
		Normal:      normal,
		Offset:      normal.Dot(point),
		Restitution: max(0, min(restitution, 1)),
	}, nil
}

// Penetration returns how deep the body goes below the plane, negative when
// the body is entirely above it.
func (p *Plane) Penetration(body *actor.RigidBody) float64 {
	lowest := body.FindFarthestPoint(p.Normal.Mul(-1))
	return p.Offset - p.Normal.Dot(lowest)
}

// Contact returns the constraint keeping body above the plane, if the body
// touches or penetrates it.
func (p *Plane) Contact(body *actor.RigidBody) (*PlaneContact, bool) {
	if body.BodyType == actor.BodyTypeStatic {
		return nil, false
	}

	penetration := p.Penetration(body)
	if penetration < 0 {
		return nil, false
	}

	return &PlaneContact{Plane: p, Body: body, Penetration: penetration}, true
}
