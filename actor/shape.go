package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// Collider is the support mapping of a convex shape.
//
// FindFarthestPoint returns the point of the shape maximizing the dot product
// with direction. The direction does not need to be normalized. Implementations
// must be deterministic and free of side effects: colliders are queried, never
// mutated, while a collision test runs.
//
// Convexity is a caller contract. A MeshCollider is interpreted as the convex
// hull of its vertices, any concavity of the source mesh is silently filled.
type Collider interface {
	FindFarthestPoint(direction mgl64.Vec3) mgl64.Vec3
}

// ParallelScanThreshold is the vertex count from which a MeshCollider built
// with more than one worker scans its vertices in parallel. Below it the
// goroutine overhead outweighs the scan.
const ParallelScanThreshold = 4096

// MeshCollider is a convex point cloud, typically the vertex buffer of a
// loaded mesh. The buffer is copied at construction and never modified.
type MeshCollider struct {
	vertices []mgl64.Vec3
	workers  int
}

// NewMeshCollider copies the vertices into a new collider.
func NewMeshCollider(vertices []mgl64.Vec3) (*MeshCollider, error) {
	if len(vertices) == 0 {
		return nil, ErrEmptyCollider
	}

	buffer := make([]mgl64.Vec3, len(vertices))
	for i, v := range vertices {
		if !isFinite(v) {
			return nil, fmt.Errorf("vertex %d %v: %w", i, v, ErrInvalidVertex)
		}
		buffer[i] = v
	}

	return &MeshCollider{vertices: buffer}, nil
}

// NewMeshColliderHomogeneous builds a collider from homogeneous points, as
// uploaded by mesh loaders. Points with w == 0 are directions, not positions,
// and are rejected.
func NewMeshColliderHomogeneous(vertices []mgl64.Vec4) (*MeshCollider, error) {
	points := make([]mgl64.Vec3, len(vertices))
	for i, v := range vertices {
		w := v.W()
		if w == 0 {
			return nil, fmt.Errorf("vertex %d %v has w=0: %w", i, v, ErrInvalidVertex)
		}
		points[i] = v.Vec3()
		if w != 1 {
			points[i] = points[i].Mul(1 / w)
		}
	}

	return NewMeshCollider(points)
}

// NewBoxMeshCollider builds the 8-vertex mesh of an axis-aligned box.
func NewBoxMeshCollider(center, halfExtents mgl64.Vec3) (*MeshCollider, error) {
	corners := BoxVertices(halfExtents)
	for i := range corners {
		corners[i] = corners[i].Add(center)
	}

	return NewMeshCollider(corners[:])
}

// Len returns the number of vertices.
func (m *MeshCollider) Len() int {
	if m == nil {
		return 0
	}
	return len(m.vertices)
}

// WithWorkers returns a collider sharing m's vertex buffer whose
// FindFarthestPoint uses the parallel scan on large buffers. workers <= 1
// keeps the sequential scan.
func (m *MeshCollider) WithWorkers(workers int) *MeshCollider {
	return &MeshCollider{vertices: m.vertices, workers: max(1, workers)}
}

// Workers returns the worker count used by FindFarthestPoint.
func (m *MeshCollider) Workers() int {
	if m == nil {
		return 1
	}
	return max(1, m.workers)
}

// Vertices returns a copy of the vertex buffer.
func (m *MeshCollider) Vertices() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, m.Len())
	copy(out, m.vertices)
	return out
}

// FindFarthestPoint scans every vertex. Ties keep the first vertex in storage
// order. Panics with ErrEmptyCollider on a collider without vertices.
func (m *MeshCollider) FindFarthestPoint(direction mgl64.Vec3) mgl64.Vec3 {
	if m.Len() == 0 {
		panic(ErrEmptyCollider)
	}
	if m.workers > 1 && len(m.vertices) >= ParallelScanThreshold {
		return m.FindFarthestPointParallel(direction, m.workers)
	}

	index, _ := farthestIn(m.vertices, direction)
	return m.vertices[index]
}

// FindFarthestPointParallel is the chunked equivalent of FindFarthestPoint.
// Each worker reduces its own chunk, chunk winners are then merged in chunk
// order so the result is identical to the sequential scan.
func (m *MeshCollider) FindFarthestPointParallel(direction mgl64.Vec3, workers int) mgl64.Vec3 {
	if m.Len() == 0 {
		panic(ErrEmptyCollider)
	}
	workers = max(1, min(workers, len(m.vertices)))
	if workers == 1 {
		index, _ := farthestIn(m.vertices, direction)
		return m.vertices[index]
	}

	type candidate struct {
		index int
		dot   float64
	}

	chunkSize := (len(m.vertices) + workers - 1) / workers
	candidates := make([]candidate, workers)

	var g errgroup.Group
	for w := range workers {
		start := w * chunkSize
		end := min(start+chunkSize, len(m.vertices))
		candidates[w] = candidate{index: -1}
		if start >= end {
			continue
		}

		g.Go(func() error {
			index, dot := farthestIn(m.vertices[start:end], direction)
			candidates[w] = candidate{index: start + index, dot: dot}
			return nil
		})
	}
	_ = g.Wait()

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.index >= 0 && c.dot > best.dot {
			best = c
		}
	}

	return m.vertices[best.index]
}

// farthestIn returns the index of the first vertex with the maximal
// projection on direction, and that projection.
func farthestIn(vertices []mgl64.Vec3, direction mgl64.Vec3) (int, float64) {
	maxIndex := 0
	maxProjected := -math.MaxFloat64

	for i, v := range vertices {
		projected := v.Dot(direction)
		if projected > maxProjected {
			maxProjected = projected
			maxIndex = i
		}
	}

	return maxIndex, maxProjected
}

// BoxVertices returns the 8 corners of a box centered at the origin.
func BoxVertices(halfExtents mgl64.Vec3) [8]mgl64.Vec3 {
	hx, hy, hz := halfExtents.X(), halfExtents.Y(), halfExtents.Z()

	return [8]mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}
}

// BoxCollider is an analytic box centered at the origin.
// The box is defined by its half-extents (half-width, half-height, half-depth)
type BoxCollider struct {
	HalfExtents mgl64.Vec3
}

func (b *BoxCollider) FindFarthestPoint(direction mgl64.Vec3) mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	if direction.X() < 0 {
		hx = -hx
	}
	if direction.Y() < 0 {
		hy = -hy
	}
	if direction.Z() < 0 {
		hz = -hz
	}

	return mgl64.Vec3{hx, hy, hz}
}

// SphereCollider is an analytic sphere centered at the origin.
type SphereCollider struct {
	Radius float64
}

// FindFarthestPoint returns the center for a zero direction, every point of
// the sphere being equally far along it.
func (s *SphereCollider) FindFarthestPoint(direction mgl64.Vec3) mgl64.Vec3 {
	if direction.LenSqr() == 0 {
		return mgl64.Vec3{}
	}
	return direction.Normalize().Mul(s.Radius)
}

// Validate checks the preconditions of a support query on c.
func Validate(c Collider) error {
	switch shape := c.(type) {
	case nil:
		return ErrEmptyCollider
	case *MeshCollider:
		if shape.Len() == 0 {
			return ErrEmptyCollider
		}
	case *BoxCollider:
		if shape == nil {
			return ErrEmptyCollider
		}
		if !isFinite(shape.HalfExtents) || shape.HalfExtents.X() < 0 || shape.HalfExtents.Y() < 0 || shape.HalfExtents.Z() < 0 {
			return fmt.Errorf("box half extents %v: %w", shape.HalfExtents, ErrInvalidShape)
		}
	case *SphereCollider:
		if shape == nil {
			return ErrEmptyCollider
		}
		if !(shape.Radius >= 0) || math.IsInf(shape.Radius, 1) {
			return fmt.Errorf("sphere radius %v: %w", shape.Radius, ErrInvalidShape)
		}
	case *RigidBody:
		if shape == nil {
			return ErrEmptyCollider
		}
		return Validate(shape.Collider)
	}

	return nil
}

func isFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
