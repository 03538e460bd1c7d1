package gjk

import "errors"

var (
	// ErrIterationLimit marks a query stopped by Solver.MaxIterations.
	ErrIterationLimit = errors.New("gjk: iteration limit reached")
	// ErrDegenerateDirection marks a query whose search direction became zero
	// or non-finite.
	ErrDegenerateDirection = errors.New("gjk: degenerate search direction")
	// ErrSimplexSize is the panic value of NextSimplex on a simplex that is
	// not a line, triangle or tetrahedron.
	ErrSimplexSize = errors.New("gjk: simplex size out of range")
)
