package gjk

import "fmt"

// Simplex holds 0 to 4 support points, newest first: index 0 is always the
// most recently added point.
//
// Simplex is a value type, copying it takes a snapshot. Size progression:
// 1 point → 2 points (line) → 3 points (triangle) → 4 points (tetrahedron)
type Simplex struct {
	points [4]SupportPoint
	size   int
}

// NewSimplex builds a simplex from points given newest first.
func NewSimplex(points ...SupportPoint) Simplex {
	if len(points) > len(Simplex{}.points) {
		panic(fmt.Errorf("%w: %d", ErrSimplexSize, len(points)))
	}

	var s Simplex
	s.size = copy(s.points[:], points)
	return s
}

// PushFront prepends p. The oldest point falls off once the simplex holds 4.
func (s *Simplex) PushFront(p SupportPoint) {
	s.points = [4]SupportPoint{p, s.points[0], s.points[1], s.points[2]}
	s.size = min(s.size+1, len(s.points))
}

func (s *Simplex) Reset() {
	*s = Simplex{}
}

func (s Simplex) Size() int {
	return s.size
}

// At returns the i-th newest point.
func (s Simplex) At(i int) SupportPoint {
	if i < 0 || i >= s.size {
		panic(fmt.Sprintf("gjk: simplex index %d out of range [0,%d)", i, s.size))
	}
	return s.points[i]
}

// Points returns a copy of the points, newest first.
func (s Simplex) Points() []SupportPoint {
	out := make([]SupportPoint, s.size)
	copy(out, s.points[:s.size])
	return out
}
