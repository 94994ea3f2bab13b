package tetrahedralize

import (
	"errors"
	"testing"

	"github.com/notargets/tetmodel/mesh"
	"github.com/notargets/tetmodel/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func inputFrom(m mesh.InputMesh, nparams int) *Input {
	in := &Input{Points: m.Vertices}
	for i := range m.Vertices {
		params := make([]float64, nparams)
		for j := range params {
			params[j] = float64(i)
		}
		in.PointParams = append(in.PointParams, params)
	}
	for _, t := range m.Triangles() {
		in.Facets = append(in.Facets, NewTriangleFacet(t, 1))
	}
	return in
}

func requireFailure(t *testing.T, err error, code int) {
	var f Failure
	require.True(t, errors.As(err, &f), "expected a Failure, got %v", err)
	assert.Equal(t, code, f.Code)
}

// checkOutput verifies the structural contract of an Output
func checkOutput(t *testing.T, out *Output, nInput int) {
	require.NotNil(t, out)
	require.GreaterOrEqual(t, len(out.Points), nInput)
	require.Equal(t, len(out.Points), len(out.PointParams))
	require.Len(t, out.TetFaces, len(out.Tetrahedra))
	require.Len(t, out.Neighbors, len(out.Tetrahedra))
	faceUse := make([]int, len(out.TriFaces))
	for ti, tet := range out.Tetrahedra {
		a, b, c, d := out.Points[tet[0]], out.Points[tet[1]], out.Points[tet[2]], out.Points[tet[3]]
		assert.Greater(t, mesh.SignedVolume(a, b, c, d), 0., "tet %d inverted", ti)
		for lf, f := range mesh.TetFaces(tet) {
			fid := out.TetFaces[ti][lf]
			assert.Equal(t, f.Key(), out.TriFaces[fid].Key())
			faceUse[fid]++
			if nb := out.Neighbors[ti][lf]; nb >= 0 {
				// Reciprocal connectivity
				assert.Contains(t, out.Neighbors[nb], ti)
			}
		}
	}
	for fid, n := range faceUse {
		assert.True(t, n == 1 || n == 2, "face %d used %d times", fid, n)
	}
	edges := make(map[types.EdgeKey]bool)
	for _, e := range out.Edges {
		assert.False(t, edges[e.Key()], "duplicate edge %v", e)
		edges[e.Key()] = true
	}
}

func TestKernelEngineConvexSurfaces(t *testing.T) {
	ts := mesh.GetStandardTestSurfaces()
	surfaces := map[string]mesh.InputMesh{
		"tetrahedron": ts.Tetrahedron,
		"cube":        ts.Cube,
		"octahedron":  ts.Octahedron,
		"bipyramid":   mesh.Bipyramid(16),
	}
	for name, m := range surfaces {
		t.Run(name, func(t *testing.T) {
			eng := NewKernelEngine()
			out, err := eng.Tetrahedralize(DefaultBehavior(), inputFrom(m, 3))
			require.NoError(t, err)
			checkOutput(t, out, len(m.Vertices))
			// One tetrahedron per boundary facet around the centroid
			assert.Len(t, out.Tetrahedra, m.NumTriangles())
			assert.Equal(t, 1, out.NumSteinerPoints(len(m.Vertices)))
			assert.Equal(t, m.Vertices, out.Points[:len(m.Vertices)])
			// Input parameters carried through, Steiner point zeroed
			assert.Equal(t, []float64{2, 2, 2}, out.PointParams[2])
			assert.Equal(t, []float64{0, 0, 0}, out.PointParams[len(m.Vertices)])
			// Total volume is conserved
			var vol float64
			for _, tet := range out.Tetrahedra {
				vol += mesh.SignedVolume(out.Points[tet[0]], out.Points[tet[1]], out.Points[tet[2]], out.Points[tet[3]])
			}
			if name == "cube" {
				assert.InDelta(t, 1., vol, 1e-12)
			}
			assert.Equal(t, 1, out.Order)
		})
	}
}

func TestKernelEngineWithoutSteinerPoints(t *testing.T) {
	b := DefaultBehavior()
	b.SteinerLeft = 0
	ts := mesh.GetStandardTestSurfaces()

	out, err := NewKernelEngine().Tetrahedralize(b, inputFrom(ts.Tetrahedron, 0))
	require.NoError(t, err)
	checkOutput(t, out, 4)
	require.Len(t, out.Tetrahedra, 1)
	assert.Len(t, out.TriFaces, 4)
	assert.Len(t, out.Edges, 6)
	assert.Equal(t, 0, out.NumSteinerPoints(4))

	out, err = NewKernelEngine().Tetrahedralize(b, inputFrom(ts.Cube, 0))
	require.NoError(t, err)
	checkOutput(t, out, 8)
	assert.Len(t, out.Tetrahedra, 6)
	assert.Len(t, out.Points, 8)
}

func TestKernelEngineWeldsCoincidentPoints(t *testing.T) {
	sc := mesh.GetStandardTestSurfaces().SeamedCube
	out, err := NewKernelEngine().Tetrahedralize(DefaultBehavior(), inputFrom(sc, 1))
	require.NoError(t, err)
	checkOutput(t, out, len(sc.Vertices))
	// All 24 duplicated points survive, plus the kernel
	assert.Len(t, out.Points, 25)
	// Faces only use the first point at each of the 8 corner positions, plus the kernel
	used := make(map[int]bool)
	for _, f := range out.TriFaces {
		for _, v := range f {
			used[v] = true
		}
	}
	assert.Len(t, used, 9)
}

func TestKernelEngineVolumeRefinement(t *testing.T) {
	cube := mesh.GetStandardTestSurfaces().Cube
	b := DefaultBehavior()
	b.SteinerLeft = -1
	b.SetMaxVolume(0.01)
	out, err := NewKernelEngine().Tetrahedralize(b, inputFrom(cube, 0))
	require.NoError(t, err)
	checkOutput(t, out, 8)
	for _, tet := range out.Tetrahedra {
		assert.LessOrEqual(t, mesh.SignedVolume(out.Points[tet[0]], out.Points[tet[1]], out.Points[tet[2]], out.Points[tet[3]]), 0.01)
	}

	// The budget bounds the refinement: one kernel point plus three splits
	b.SteinerLeft = 4
	out, err = NewKernelEngine().Tetrahedralize(b, inputFrom(cube, 0))
	require.NoError(t, err)
	checkOutput(t, out, 8)
	assert.Equal(t, 4, out.NumSteinerPoints(8))
	assert.Len(t, out.Tetrahedra, 12+3*3)
}

func TestKernelEngineOutputSelection(t *testing.T) {
	b := DefaultBehavior()
	b.FacesOut, b.EdgesOut, b.NeighborsOut = false, false, false
	out, err := NewKernelEngine().Tetrahedralize(b, inputFrom(mesh.GetStandardTestSurfaces().Cube, 0))
	require.NoError(t, err)
	assert.NotEmpty(t, out.Tetrahedra)
	assert.Empty(t, out.TriFaces)
	assert.Empty(t, out.TetFaces)
	assert.Empty(t, out.Edges)
	assert.Empty(t, out.Neighbors)
}

func TestKernelEngineOneBasedIndexing(t *testing.T) {
	tet := mesh.GetStandardTestSurfaces().Tetrahedron
	in := inputFrom(tet, 0)
	for i := range in.Facets {
		for j := range in.Facets[i].Polygons[0].Vertices {
			in.Facets[i].Polygons[0].Vertices[j]++
		}
	}
	b := DefaultBehavior()
	b.ZeroIndex = false
	out, err := NewKernelEngine().Tetrahedralize(b, in)
	require.NoError(t, err)
	for _, tt := range out.Tetrahedra {
		for _, v := range tt {
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, len(out.Points))
		}
	}
	for _, nb := range out.Neighbors {
		for _, n := range nb {
			assert.True(t, n == -1 || n >= 1)
		}
	}
}

func TestKernelEngineFailures(t *testing.T) {
	ts := mesh.GetStandardTestSurfaces()
	eng := NewKernelEngine()
	{ // Too little input
		_, err := eng.Tetrahedralize(DefaultBehavior(), &Input{Points: ts.Tetrahedron.Vertices})
		requireFailure(t, err, FailInvalidInput)
	}
	{ // Index out of range
		in := inputFrom(ts.Tetrahedron, 0)
		in.Facets[0].Polygons[0].Vertices[0] = 9
		_, err := eng.Tetrahedralize(DefaultBehavior(), in)
		requireFailure(t, err, FailInvalidInput)
	}
	{ // Facet with a hole
		in := inputFrom(ts.Tetrahedron, 0)
		in.Facets[1].Holes = []r3.Vec{{}}
		_, err := eng.Tetrahedralize(DefaultBehavior(), in)
		requireFailure(t, err, FailInvalidInput)
	}
	{ // Open boundary
		in := inputFrom(ts.Cube, 0)
		in.Facets = in.Facets[1:]
		_, err := eng.Tetrahedralize(DefaultBehavior(), in)
		requireFailure(t, err, FailOpenBoundary)
	}
	{ // Collapsed triangle
		m := ts.Tetrahedron
		m.Vertices = append([]r3.Vec(nil), m.Vertices...)
		m.Vertices[3] = r3.Vec{X: 0.5, Y: 0.5}
		_, err := eng.Tetrahedralize(DefaultBehavior(), inputFrom(m, 0))
		requireFailure(t, err, FailSmallFeature)
	}
	{ // Duplicate facet
		in := inputFrom(ts.Cube, 0)
		in.Facets[1] = in.Facets[0]
		_, err := eng.Tetrahedralize(DefaultBehavior(), in)
		requireFailure(t, err, FailCloseFacets)
	}
	{ // Inside out boundary is not seen from the kernel
		m := ts.Cube
		m.Indices = append([]int(nil), m.Indices...)
		for i := 0; i < len(m.Indices); i += 3 {
			m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
		}
		_, err := eng.Tetrahedralize(DefaultBehavior(), inputFrom(m, 0))
		requireFailure(t, err, FailSelfIntersection)
	}
	{ // A coplanar facet away from the kernel vertex cannot be recovered without Steiner points
		b := DefaultBehavior()
		b.SteinerLeft = 0
		in := inputFrom(ts.Cube, 0)
		// Vertex 4 becomes the kernel, the front side diagonal 0-5 does not pass through it
		in.Facets[0], in.Facets[2] = in.Facets[2], in.Facets[0]
		_, err := eng.Tetrahedralize(b, in)
		requireFailure(t, err, FailNeedsSteiner)
	}
}

func TestBehaviorString(t *testing.T) {
	b := DefaultBehavior()
	assert.Equal(t, "pzq1.5/10fennYMJS4", b.String())
	b.SetMaxVolume(7500)
	assert.True(t, b.VolumeCapped())
	assert.Equal(t, "pzq1.5/10a7500fennYMJS4", b.String())
	b.SetMaxVolume(0)
	assert.False(t, b.VolumeCapped())
	assert.Equal(t, "tetrahedralize: failure 3 (self-intersecting boundary)", Failure{3}.Error())
	assert.Equal(t, "tetrahedralize: failure 77", Failure{77}.Error())
}

func TestEngineFunc(t *testing.T) {
	var called bool
	eng := EngineFunc(func(b *Behavior, in *Input) (*Output, error) {
		called = true
		return &Output{}, nil
	})
	_, err := eng.Tetrahedralize(DefaultBehavior(), &Input{})
	require.NoError(t, err)
	assert.True(t, called)
}
