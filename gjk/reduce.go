package gjk

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Step is the outcome of one simplex reduction: the simplex kept for the next
// iteration, the next search direction, and whether the origin is enclosed.
type Step struct {
	Simplex   Simplex
	Direction mgl64.Vec3
	Enclosed  bool
}

func sameDirection(a, b mgl64.Vec3) bool {
	return a.Dot(b) > 0
}

// NextSimplex reduces s toward the origin.
//
// Behavior by simplex dimension:
//   - 2 points (line): keep the segment or drop back to its newest point
//   - 3 points (triangle): keep an edge or the face, oriented toward the origin
//   - 4 points (tetrahedron): enclose the origin, or keep the face it lies beyond
//
// Any other size is a driver bug, and NextSimplex panics
// with ErrSimplexSize.
func NextSimplex(s Simplex) Step {
	switch s.Size() {
	case 2:
		return Line(s)
	case 3:
		return Triangle(s)
	case 4:
		return Tetrahedron(s)
	}
	panic(fmt.Errorf("%w: %d", ErrSimplexSize, s.Size()))
}

// Line handles the segment [a, b], a being the newest point.
//
// Tests which Voronoi region contains the origin:
//   - Region AB: the origin is beyond a toward b, keep both and search
//     perpendicular to ab, toward the origin
//   - Region A: keep a alone and search toward the origin
//
// A segment cannot enclose a 3D origin, except when the origin lies exactly on
// it: shapes are then touching and the step reports Enclosed.
func Line(s Simplex) Step {
	a := s.At(0)
	b := s.At(1)

	ab := b.Point.Sub(a.Point)
	ao := a.Point.Mul(-1)

	if sameDirection(ab, ao) {
		perpendicular := ab.Cross(ao).Cross(ab)
		return Step{
			Simplex:   NewSimplex(a, b),
			Direction: perpendicular,
			Enclosed:  perpendicular == mgl64.Vec3{},
		}
	}

	return Step{
		Simplex:   NewSimplex(a),
		Direction: ao,
		Enclosed:  ao == mgl64.Vec3{},
	}
}

// Triangle handles the triangle [a, b, c], a being the newest point.
//
// The origin is classified against the edges adjacent to a, then against the
// face. Edge bc is never tested: a was found beyond it.
//
// Collinear points have no normal, the triangle is then treated as the line [a, b].
// An origin lying exactly on the face is reported Enclosed.
func Triangle(s Simplex) Step {
	a := s.At(0)
	b := s.At(1)
	c := s.At(2)

	ab := b.Point.Sub(a.Point)
	ac := c.Point.Sub(a.Point)
	ao := a.Point.Mul(-1)

	abc := ab.Cross(ac) // Triangle normal
	if abc == (mgl64.Vec3{}) {
		return Line(NewSimplex(a, b))
	}

	// Outside edge ac
	if sameDirection(abc.Cross(ac), ao) {
		if sameDirection(ac, ao) {
			// Region AC, the line case keeps [a, c] with a direction
			// perpendicular to ac, toward the origin
			return Line(NewSimplex(a, c))
		}
		return Line(NewSimplex(a, b))
	}

	// Outside edge ab
	if sameDirection(ab.Cross(abc), ao) {
		return Line(NewSimplex(a, b))
	}

	// Inside both edges: above, on, or below the face
	switch side := abc.Dot(ao); {
	case side > 0:
		return Step{Simplex: NewSimplex(a, b, c), Direction: abc}
	case side == 0:
		return Step{Simplex: NewSimplex(a, b, c), Direction: abc, Enclosed: true}
	default:
		// Below, swap b and c so the normal faces the origin
		return Step{Simplex: NewSimplex(a, c, b), Direction: abc.Mul(-1)}
	}
}

// Tetrahedron handles the tetrahedron [a, b, c, d], a being the newest point.
//
// Only the three faces sharing a are tested, the origin is known to lie on a's
// side of bcd. If the origin is beyond one of them the simplex drops to that
// face, otherwise it is enclosed.
//
// Face normals must point away from the opposite vertex. All three share the
// sign of the triple product, so a single test orients them. A flat
// tetrahedron is reduced to its newest face.
func Tetrahedron(s Simplex) Step {
	a := s.At(0)
	b := s.At(1)
	c := s.At(2)
	d := s.At(3)

	ab := b.Point.Sub(a.Point)
	ac := c.Point.Sub(a.Point)
	ad := d.Point.Sub(a.Point)
	ao := a.Point.Mul(-1)

	abc := ab.Cross(ac)
	acd := ac.Cross(ad)
	adb := ad.Cross(ab)

	volume := ab.Dot(acd)
	if volume == 0 {
		return Triangle(NewSimplex(a, b, c))
	}
	if volume > 0 {
		abc = abc.Mul(-1)
		acd = acd.Mul(-1)
		adb = adb.Mul(-1)
	}

	if sameDirection(abc, ao) {
		return Triangle(NewSimplex(a, b, c))
	}
	if sameDirection(acd, ao) {
		return Triangle(NewSimplex(a, c, d))
	}
	if sameDirection(adb, ao) {
		return Triangle(NewSimplex(a, d, b))
	}

	return Step{Simplex: s, Enclosed: true}
}
