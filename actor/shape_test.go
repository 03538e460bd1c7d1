package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func unitCube(t *testing.T, center mgl64.Vec3) *MeshCollider {
	t.Helper()
	cube, err := NewBoxMeshCollider(center, mgl64.Vec3{0.5, 0.5, 0.5})
	require.NoError(t, err)
	return cube
}

func TestNewMeshCollider(t *testing.T) {
	t.Run("copies the buffer", func(t *testing.T) {
		vertices := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}
		mesh, err := NewMeshCollider(vertices)
		require.NoError(t, err)

		vertices[1] = mgl64.Vec3{100, 0, 0}
		assert.Equal(t, mgl64.Vec3{1, 0, 0}, mesh.FindFarthestPoint(mgl64.Vec3{1, 0, 0}))
		assert.Equal(t, 2, mesh.Len())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewMeshCollider(nil)
		assert.ErrorIs(t, err, ErrEmptyCollider)
	})

	t.Run("non finite vertex", func(t *testing.T) {
		_, err := NewMeshCollider([]mgl64.Vec3{{0, math.NaN(), 0}})
		assert.ErrorIs(t, err, ErrInvalidVertex)

		_, err = NewMeshCollider([]mgl64.Vec3{{math.Inf(1), 0, 0}})
		assert.ErrorIs(t, err, ErrInvalidVertex)
	})
}

func TestNewMeshColliderHomogeneous(t *testing.T) {
	mesh, err := NewMeshColliderHomogeneous([]mgl64.Vec4{
		{1, 2, 3, 1},
		{2, 4, 6, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []mgl64.Vec3{{1, 2, 3}, {1, 2, 3}}, mesh.Vertices())

	_, err = NewMeshColliderHomogeneous([]mgl64.Vec4{{1, 0, 0, 0}})
	assert.ErrorIs(t, err, ErrInvalidVertex)

	_, err = NewMeshColliderHomogeneous(nil)
	assert.ErrorIs(t, err, ErrEmptyCollider)
}

func TestMeshCollider_FindFarthestPoint(t *testing.T) {
	cube := unitCube(t, mgl64.Vec3{})

	tests := []struct {
		name      string
		direction mgl64.Vec3
		axis      int
		want      float64
	}{
		{"+x", mgl64.Vec3{1, 0, 0}, 0, 0.5},
		{"-x", mgl64.Vec3{-1, 0, 0}, 0, -0.5},
		{"+y", mgl64.Vec3{0, 1, 0}, 1, 0.5},
		{"-y", mgl64.Vec3{0, -1, 0}, 1, -0.5},
		{"+z non unit", mgl64.Vec3{0, 0, 7}, 2, 0.5},
		{"-z non unit", mgl64.Vec3{0, 0, -0.01}, 2, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cube.FindFarthestPoint(tt.direction)
			assert.Equal(t, tt.want, got[tt.axis])
		})
	}

	t.Run("diagonal picks the unique corner", func(t *testing.T) {
		assert.Equal(t, mgl64.Vec3{0.5, 0.5, 0.5}, cube.FindFarthestPoint(mgl64.Vec3{1, 1, 1}))
		assert.Equal(t, mgl64.Vec3{-0.5, 0.5, -0.5}, cube.FindFarthestPoint(mgl64.Vec3{-1, 2, -3}))
	})

	t.Run("ties keep storage order", func(t *testing.T) {
		// (+,-,-) is the first corner with x = +0.5
		assert.Equal(t, mgl64.Vec3{0.5, -0.5, -0.5}, cube.FindFarthestPoint(mgl64.Vec3{1, 0, 0}))
	})

	t.Run("very negative projections still return a vertex", func(t *testing.T) {
		far, err := NewMeshCollider([]mgl64.Vec3{{-1e300, 0, 0}, {-2e300, 0, 0}})
		require.NoError(t, err)
		assert.Equal(t, mgl64.Vec3{-1e300, 0, 0}, far.FindFarthestPoint(mgl64.Vec3{1e10, 0, 0}))
	})

	t.Run("empty collider fails fast", func(t *testing.T) {
		assert.PanicsWithValue(t, ErrEmptyCollider, func() {
			(&MeshCollider{}).FindFarthestPoint(mgl64.Vec3{1, 0, 0})
		})
	})
}

func TestMeshCollider_FindFarthestPointParallel(t *testing.T) {
	// A ring of points with many exact ties along +y
	vertices := make([]mgl64.Vec3, 0, 1000)
	for i := range 1000 {
		angle := float64(i) * 2 * math.Pi / 1000
		vertices = append(vertices, mgl64.Vec3{math.Cos(angle), math.Sin(angle), float64(i%7) - 3})
	}
	mesh, err := NewMeshCollider(vertices)
	require.NoError(t, err)

	directions := []mgl64.Vec3{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, 0, -1}, {0.3, -0.7, 0.2}, {0, 0, 0},
	}
	for _, workers := range []int{0, 1, 2, 3, 8, 1000, 5000} {
		for _, d := range directions {
			assert.Equal(t, mesh.FindFarthestPoint(d), mesh.FindFarthestPointParallel(d, workers),
				"workers=%d direction=%v", workers, d)
		}
	}
}

func TestMeshCollider_WithWorkers(t *testing.T) {
	vertices := make([]mgl64.Vec3, ParallelScanThreshold+17)
	for i := range vertices {
		angle := float64(i) * 2 * math.Pi / float64(len(vertices))
		vertices[i] = mgl64.Vec3{math.Cos(angle), math.Sin(angle), float64(i%5) - 2}
	}
	mesh, err := NewMeshCollider(vertices)
	require.NoError(t, err)

	parallel := mesh.WithWorkers(4)
	assert.Equal(t, 4, parallel.Workers())
	assert.Equal(t, 1, mesh.Workers())
	assert.Equal(t, 1, mesh.WithWorkers(0).Workers())
	assert.Equal(t, mesh.Len(), parallel.Len())

	for _, d := range []mgl64.Vec3{{1, 0, 0}, {0, -1, 0}, {0, 0, 1}, {0.3, -0.7, 0.2}, {0, 0, 0}} {
		assert.Equal(t, mesh.FindFarthestPoint(d), parallel.FindFarthestPoint(d), "direction=%v", d)
	}
}

func TestBoxCollider_FindFarthestPoint(t *testing.T) {
	box := &BoxCollider{HalfExtents: mgl64.Vec3{1, 2, 3}}

	assert.Equal(t, mgl64.Vec3{1, 2, 3}, box.FindFarthestPoint(mgl64.Vec3{1, 1, 1}))
	assert.Equal(t, mgl64.Vec3{-1, 2, -3}, box.FindFarthestPoint(mgl64.Vec3{-1, 0.1, -5}))

	// matches the mesh of the same box on every direction without ties
	mesh, err := NewBoxMeshCollider(mgl64.Vec3{}, box.HalfExtents)
	require.NoError(t, err)
	for _, d := range []mgl64.Vec3{{1, 1, 1}, {-1, 1, 1}, {0.2, -3, 1}, {-1, -1, -1}} {
		assert.Equal(t, mesh.FindFarthestPoint(d), box.FindFarthestPoint(d))
	}
}

func TestSphereCollider_FindFarthestPoint(t *testing.T) {
	sphere := &SphereCollider{Radius: 2}

	assert.True(t, vec3Equal(mgl64.Vec3{2, 0, 0}, sphere.FindFarthestPoint(mgl64.Vec3{10, 0, 0}), 1e-12))
	assert.True(t, vec3Equal(mgl64.Vec3{0, -2, 0}, sphere.FindFarthestPoint(mgl64.Vec3{0, -0.1, 0}), 1e-12))

	diagonal := sphere.FindFarthestPoint(mgl64.Vec3{1, 1, 1})
	assert.InDelta(t, 2.0, diagonal.Len(), 1e-12)

	assert.Equal(t, mgl64.Vec3{}, sphere.FindFarthestPoint(mgl64.Vec3{}))
}

func TestValidate(t *testing.T) {
	cube := unitCube(t, mgl64.Vec3{})

	tests := []struct {
		name     string
		collider Collider
		want     error
	}{
		{"nil", nil, ErrEmptyCollider},
		{"zero mesh", &MeshCollider{}, ErrEmptyCollider},
		{"nil mesh", (*MeshCollider)(nil), ErrEmptyCollider},
		{"mesh", cube, nil},
		{"box", &BoxCollider{HalfExtents: mgl64.Vec3{1, 1, 1}}, nil},
		{"negative box", &BoxCollider{HalfExtents: mgl64.Vec3{1, -1, 1}}, ErrInvalidShape},
		{"sphere", &SphereCollider{Radius: 1}, nil},
		{"negative sphere", &SphereCollider{Radius: -1}, ErrInvalidShape},
		{"NaN sphere", &SphereCollider{Radius: math.NaN()}, ErrInvalidShape},
		{"infinite sphere", &SphereCollider{Radius: math.Inf(1)}, ErrInvalidShape},
		{"NaN box", &BoxCollider{HalfExtents: mgl64.Vec3{1, math.NaN(), 1}}, ErrInvalidShape},
		{"infinite box", &BoxCollider{HalfExtents: mgl64.Vec3{math.Inf(1), 1, 1}}, ErrInvalidShape},
		{"body", NewRigidBody(NewTransform(mgl64.Vec3{}, mgl64.QuatIdent()), cube, BodyTypeDynamic, 1), nil},
		{"body without collider", NewRigidBody(Transform{}, nil, BodyTypeDynamic, 1), ErrEmptyCollider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.collider)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
