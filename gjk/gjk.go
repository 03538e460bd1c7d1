// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for collision detection.
//
// GJK detects whether two convex shapes overlap by testing if their Minkowski difference
// contains the origin. The algorithm builds a simplex incrementally, converging toward
// the origin in typically 3-6 iterations.
//
// The answer is boolean: no contact points, normal or penetration depth are computed.
// Comparisons against zero are strict and carry no epsilon. Shapes in exact contact,
// where the origin lies on the boundary of the Minkowski difference, are usually caught
// by the separation test and reported apart, but may be reported intersecting, and
// GJK(a, b) may then differ from GJK(b, a). Symmetry and completeness only hold away
// from exact contact. The result is still deterministic for a given input.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"fmt"
	"math"

	"github.com/akmonengine/p3/actor"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// DefaultMaxIterations bounds a query. Convergence takes a handful of
// iterations on well-formed input, hitting the bound means floating point
// cycling.
const DefaultMaxIterations = 64

// Verdict is the outcome of a query.
type Verdict int

const (
	Separated Verdict = iota
	Enclosed
	Inconclusive
)

func (v Verdict) String() string {
	switch v {
	case Separated:
		return "separated"
	case Enclosed:
		return "enclosed"
	case Inconclusive:
		return "inconclusive"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// Result describes how a query terminated. Simplex and Direction are the
// final working state; Reason is set for Inconclusive verdicts.
type Result struct {
	Verdict    Verdict
	Iterations int
	Simplex    Simplex
	Direction  mgl64.Vec3
	Reason     error
}

// Colliding reports whether the shapes intersect.
func (r Result) Colliding() bool {
	return r.Verdict == Enclosed
}

// Solver runs GJK queries. A Solver holds configuration only, it is safe for
// concurrent use.
type Solver struct {
	// MaxIterations bounds the search loop, DefaultMaxIterations when <= 0.
	MaxIterations int
	// InitialDirection is the first search direction, the X axis when zero.
	InitialDirection mgl64.Vec3
	Logger           *zap.Logger
}

// NewSolver returns a solver with default settings. A nil logger discards diagnostics.
func NewSolver(logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Solver{
		MaxIterations:    DefaultMaxIterations,
		InitialDirection: mgl64.Vec3{1, 0, 0},
		Logger:           logger,
	}
}

var defaultSolver = NewSolver(nil)

// GJK reports whether two convex colliders intersect, using the default solver.
// Inconclusive queries report no intersection.
//
// It panics if a collider fails actor.Validate: an empty collider is a
// configuration bug, not a runtime condition.
func GJK(a, b actor.Collider) bool {
	result, err := defaultSolver.Query(a, b)
	if err != nil {
		panic(err)
	}
	return result.Colliding()
}

// Query performs collision detection between two convex colliders.
//
// Algorithm overview:
//  1. Get the support point along the initial direction
//  2. Search back toward the origin from it
//  3. Each new support point must pass the origin, otherwise the shapes are separated
//  4. Push it in the simplex and reduce the simplex to the feature closest to the origin
//  5. Stop once the simplex encloses the origin
//
// The error is non-nil only when a collider fails actor.Validate. Numerical
// trouble yields an Inconclusive result, logged as a warning.
func (s *Solver) Query(a, b actor.Collider) (Result, error) {
	if err := actor.Validate(a); err != nil {
		return Result{Verdict: Inconclusive, Reason: err}, fmt.Errorf("collider a: %w", err)
	}
	if err := actor.Validate(b); err != nil {
		return Result{Verdict: Inconclusive, Reason: err}, fmt.Errorf("collider b: %w", err)
	}

	direction := s.InitialDirection
	if direction == (mgl64.Vec3{}) {
		direction = mgl64.Vec3{1, 0, 0}
	}

	var simplex Simplex
	support := NewSupportPoint(a, b, direction)
	simplex.PushFront(support)

	// New direction towards the origin from this first point
	direction = support.Point.Mul(-1)

	// The first support point is the origin itself: the shapes touch
	if direction == (mgl64.Vec3{}) {
		return Result{Verdict: Enclosed, Simplex: simplex}, nil
	}

	maxIterations := s.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	for i := 1; i <= maxIterations; i++ {
		if !isUsable(direction) {
			return s.inconclusive(Result{Iterations: i - 1, Simplex: simplex, Direction: direction}, ErrDegenerateDirection), nil
		}

		support = NewSupportPoint(a, b, direction)

		// The farthest point along direction does not pass the origin, so
		// no point of the Minkowski difference can enclose it.
		if support.Point.Dot(direction) <= 0 {
			return Result{Verdict: Separated, Iterations: i, Simplex: simplex, Direction: direction}, nil
		}

		simplex.PushFront(support)

		step := NextSimplex(simplex)
		simplex, direction = step.Simplex, step.Direction
		if step.Enclosed {
			return Result{Verdict: Enclosed, Iterations: i, Simplex: simplex, Direction: direction}, nil
		}
	}

	return s.inconclusive(Result{Iterations: maxIterations, Simplex: simplex, Direction: direction}, ErrIterationLimit), nil
}

func (s *Solver) inconclusive(result Result, reason error) Result {
	result.Verdict = Inconclusive
	result.Reason = reason

	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Warn("gjk query inconclusive",
		zap.Error(reason),
		zap.Int("iterations", result.Iterations),
		zap.Int("simplex_size", result.Simplex.Size()),
		zap.Float64s("direction", result.Direction[:]),
	)

	return result
}

func isUsable(direction mgl64.Vec3) bool {
	for _, c := range direction {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return direction.LenSqr() > 0
}
