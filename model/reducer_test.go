package model

import (
	"math"
	"testing"

	"github.com/notargets/tetmodel/mesh"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestReduceCoarseToSparse(t *testing.T) {
	coarse := []r3.Vec{
		{X: 1}, {Y: 1}, {X: 1}, {Z: 1}, {Y: 1}, {X: 1},
	}
	rd := ReduceCoarseToSparse(coarse)
	assert.Equal(t, []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}, rd.Physics)
	assert.Equal(t, []int{0, 1, 0, 2, 1, 0}, rd.CoarseToPhysics)
	assert.Equal(t, 3, rd.Connectivity.NumVertices())
	for v := 0; v < 3; v++ {
		assert.Equal(t, 0, rd.Connectivity.Degree(v))
	}
}

func TestReduceExactEquality(t *testing.T) {
	// No tolerance: a one ulp difference is a different physics vertex
	a := r3.Vec{X: 0.1, Y: 0.2, Z: 0.3}
	b := a
	b.X = math.Nextafter(a.X, 1)
	rd := ReduceCoarseToSparse([]r3.Vec{a, b, a})
	assert.Len(t, rd.Physics, 2)
	assert.Equal(t, []int{0, 1, 0}, rd.CoarseToPhysics)
}

func TestReduceSeamedSurface(t *testing.T) {
	sc := mesh.GetStandardTestSurfaces().SeamedCube
	rd := ReduceCoarseToSparse(sc.Vertices)
	assert.Len(t, rd.Physics, 8)
	assert.Len(t, rd.CoarseToPhysics, len(sc.Vertices))
	// Same position, same physics vertex and vice versa
	for i := range sc.Vertices {
		for j := range sc.Vertices {
			same := sc.Vertices[i] == sc.Vertices[j]
			assert.Equal(t, same, rd.CoarseToPhysics[i] == rd.CoarseToPhysics[j])
		}
	}
	assert.Empty(t, ReduceCoarseToSparse(nil).Physics)
}
