package scene

import (
	"fmt"

	"github.com/akmonengine/p3"
	"github.com/akmonengine/p3/actor"
	"github.com/akmonengine/p3/constraint"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Build creates the world described by c. World.Bodies[i] is built from
// c.Bodies[i], its ID derived from the scene and body names so replays of a
// scene hash identically.
func Build(c *Config, logger *zap.Logger) (*p3.World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	world := p3.NewWorld(logger)
	if c.Gravity != nil {
		world.Gravity = *c.Gravity
	}
	if c.Substeps > 0 {
		world.Substeps = c.Substeps
	}
	if c.Workers > 0 {
		world.Workers = c.Workers
	}
	if c.MaxIterations > 0 {
		world.Solver.MaxIterations = c.MaxIterations
	}

	if c.Ground != nil {
		ground, err := constraint.NewPlane(c.Ground.Normal, c.Ground.Point, c.Ground.Restitution)
		if err != nil {
			return nil, fmt.Errorf("%w: ground: %w", ErrInvalidScene, err)
		}
		world.Ground = ground
	}

	for i, b := range c.Bodies {
		body, err := b.build(world.Workers)
		if err != nil {
			return nil, fmt.Errorf("body %d %q: %w", i, b.Name, err)
		}
		body.ID = uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "%s/%d/%s", c.Name, i, b.Name))

		if err := world.AddBody(body); err != nil {
			return nil, err
		}
	}

	world.Logger.Debug("scene built",
		zap.String("scene", c.Name),
		zap.Int("bodies", len(world.Bodies)),
		zap.Bool("ground", world.Ground != nil),
	)

	return world, nil
}

// build creates the body of b. Mesh colliders scan their vertices with up to
// workers goroutines.
func (b BodyConfig) build(workers int) (*actor.RigidBody, error) {
	var collider actor.Collider
	switch b.Shape {
	case ShapeBox:
		collider = &actor.BoxCollider{HalfExtents: b.HalfExtents}
	case ShapeSphere:
		collider = &actor.SphereCollider{Radius: b.Radius}
	case ShapeMesh:
		mesh, err := actor.NewMeshCollider(b.Vertices)
		if err != nil {
			return nil, err
		}
		collider = mesh.WithWorkers(workers)
	default:
		return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidScene, b.Shape)
	}

	rotation := mgl64.QuatIdent()
	if b.RotationAxis.LenSqr() > 0 {
		rotation = mgl64.QuatRotate(mgl64.DegToRad(b.RotationAngle), b.RotationAxis.Normalize())
	}

	bodyType := actor.BodyTypeDynamic
	if b.Static {
		bodyType = actor.BodyTypeStatic
	}

	body := actor.NewRigidBody(actor.NewTransform(b.Position, rotation), collider, bodyType, b.Mass)
	if bodyType == actor.BodyTypeDynamic {
		body.SetVelocity(b.Velocity)
	}

	return body, nil
}
