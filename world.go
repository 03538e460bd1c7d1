package p3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/p3/actor"
	"github.com/akmonengine/p3/constraint"
	"github.com/akmonengine/p3/gjk"
	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

// DefaultGravity is the gravity of NewWorld, in m/s²
var DefaultGravity = mgl64.Vec3{0, -9.81, 0}

// ErrNilBody is returned by AddBody for a nil body
var ErrNilBody = errors.New("p3: nil body")

type World struct {
	// List of all rigid bodies in the world
	Bodies []*actor.RigidBody
	// Gravity acceleration (m/s², or N/kg)
	Gravity mgl64.Vec3
	// Ground keeps dynamic bodies above it, nil disables it
	Ground   *constraint.Plane
	Substeps int
	Workers  int

	Solver *gjk.Solver
	Logger *zap.Logger

	Events Events
}

// NewWorld returns an empty world with earth gravity, one substep and one
// worker. A nil logger discards diagnostics.
func NewWorld(logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &World{
		Gravity:  DefaultGravity,
		Substeps: 1,
		Workers:  DEFAULT_WORKERS,
		Solver:   gjk.NewSolver(logger.Named("gjk")),
		Logger:   logger,
		Events:   NewEvents(),
	}
}

// AddBody adds a rigid body to the world. Bodies with an invalid collider or
// a dynamic body without a positive finite mass are rejected.
func (w *World) AddBody(body *actor.RigidBody) error {
	if body == nil {
		return ErrNilBody
	}
	if err := actor.Validate(body); err != nil {
		return fmt.Errorf("body %s: %w", body.ID, err)
	}
	if err := body.ValidateMass(); err != nil {
		return fmt.Errorf("body %s: %w", body.ID, err)
	}

	w.Bodies = append(w.Bodies, body)
	return nil
}

// RemoveBody removes a rigid body from the world. Its active pairs are
// dropped without emitting CollisionExit events.
func (w *World) RemoveBody(body *actor.RigidBody) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Events.forget(body)
}

// Step advances the simulation by dt, split in Substeps.
// Listeners subscribed to Events are called once, at the end of the step.
func (w *World) Step(dt float64) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	w.Substeps = max(1, w.Substeps)
	h := dt / float64(w.Substeps)

	for range w.Substeps {
		// Phase 1: gravity and semi-implicit Euler
		w.integrate(h)

		// Phase 2: ground constraint
		constraints := w.groundContacts()
		w.solvePosition(h, constraints)
		w.solveVelocity(h, constraints)

		// Phase 3: collision pair finding
		w.Events.recordCollisions(w.DetectCollisions())
	}

	w.Events.flush()
}

// DetectCollisions returns every pair of intersecting bodies, ordered by the
// position of BodyA then BodyB in Bodies.
func (w *World) DetectCollisions() []Contact {
	workers := max(DEFAULT_WORKERS, w.Workers)
	return NarrowPhase(w.solver(), BroadPhase(w.Bodies, workers), workers, w.logger())
}

// StateHash digests the identity, position and velocity of every body in
// order. Two worlds replaying the same steps from the same state share it.
func (w *World) StateHash() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 16+6*8)

	for _, body := range w.Bodies {
		buf = append(buf[:0], body.ID[:]...)
		for _, v := range [2]mgl64.Vec3{body.Transform.Position, body.Velocity} {
			for _, c := range v {
				buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(c))
			}
		}
		_, _ = d.Write(buf)
	}

	return d.Sum64()
}

func (w *World) integrate(h float64) {
	task(w.Workers, w.Bodies, func(body *actor.RigidBody) {
		body.Integrate(h, w.Gravity)
	})
}

func (w *World) groundContacts() []constraint.Constraint {
	if w.Ground == nil {
		return nil
	}

	var constraints []constraint.Constraint
	for _, body := range w.Bodies {
		if actor.Validate(body) != nil {
			continue
		}
		if contact, ok := w.Ground.Contact(body); ok {
			constraints = append(constraints, contact)
		}
	}
	return constraints
}

func (w *World) solvePosition(h float64, constraints []constraint.Constraint) {
	task(w.Workers, constraints, func(c constraint.Constraint) {
		c.SolvePosition(h)
	})
}

func (w *World) solveVelocity(h float64, constraints []constraint.Constraint) {
	task(w.Workers, constraints, func(c constraint.Constraint) {
		c.SolveVelocity(h)
	})
}

func (w *World) solver() *gjk.Solver {
	if w.Solver == nil {
		w.Solver = gjk.NewSolver(w.logger().Named("gjk"))
	}
	return w.Solver
}

func (w *World) logger() *zap.Logger {
	if w.Logger == nil {
		w.Logger = zap.NewNop()
	}
	return w.Logger
}
