package mesh

import (
	"fmt"
	"math"
	"testing"

	"github.com/notargets/tetmodel/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestStandardSurfacesAreClosedAndOutward(t *testing.T) {
	ts := GetStandardTestSurfaces()
	surfaces := map[string]InputMesh{
		"tetrahedron": ts.Tetrahedron,
		"cube":        ts.Cube,
		"octahedron":  ts.Octahedron,
		"seamed cube": ts.SeamedCube,
		"bipyramid":   Bipyramid(12),
	}
	for name, m := range surfaces {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, m.Validate())
			// Every edge, welded by position, is used exactly twice
			edgeUse := make(map[[2]r3.Vec]int)
			for _, tri := range m.Triangles() {
				for j := 0; j < 3; j++ {
					a, b := m.Vertices[tri[j]], m.Vertices[tri[(j+1)%3]]
					if a.X > b.X || (a.X == b.X && (a.Y > b.Y || (a.Y == b.Y && a.Z > b.Z))) {
						a, b = b, a
					}
					edgeUse[[2]r3.Vec{a, b}]++
				}
			}
			for e, n := range edgeUse {
				assert.Equal(t, 2, n, "edge %v", e)
			}
			// Outward winding puts the centroid behind every face
			ctr := Centroid(m.Vertices...)
			for _, tri := range m.Triangles() {
				a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
				assert.Less(t, SignedVolume(a, b, c, ctr), 0.)
			}
		})
	}
}

func TestInputMeshValidate(t *testing.T) {
	m := GetStandardTestSurfaces().Tetrahedron
	assert.NoError(t, m.Validate())
	assert.Equal(t, 4, m.NumTriangles())
	assert.Equal(t, types.Triangle{1, 2, 3}, m.Triangle(2))
	assert.False(t, m.IsEmpty())
	assert.Equal(t, 0, m.NumTexCoords())
	assert.False(t, m.HasTangents())

	bad := m
	bad.Indices = append([]int{}, m.Indices...)
	bad.Indices[4] = 7
	err := bad.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "index 7 at position 4 is out of range [0,4)")
	// Errors carry the stack of the failed check
	assert.Contains(t, fmt.Sprintf("%+v", err), "mesh.(*InputMesh).Validate")

	bad.Indices = m.Indices[:5]
	assert.Error(t, bad.Validate())

	bad = m
	bad.Tangents = make([]Tangent, 2)
	assert.Error(t, bad.Validate())

	bad = m
	bad.Vertices = append([]r3.Vec{}, m.Vertices...)
	bad.Vertices[0].X = math.NaN()
	assert.Error(t, bad.Validate())

	sc := GetStandardTestSurfaces().SeamedCube
	assert.Equal(t, 2, sc.NumTexCoords())
	assert.True(t, sc.HasTangents())
	assert.True(t, (&InputMesh{}).IsEmpty())
}

func TestTetGeometry(t *testing.T) {
	var (
		o = r3.Vec{}
		x = r3.Vec{X: 1}
		y = r3.Vec{Y: 1}
		z = r3.Vec{Z: 1}
	)
	assert.InDelta(t, 1./6., SignedVolume(o, x, y, z), 1e-15)
	assert.InDelta(t, -1./6., SignedVolume(o, y, x, z), 1e-15)
	assert.InDelta(t, 0.5, TriangleArea(o, x, y), 1e-15)
	assert.Equal(t, r3.Vec{Z: 1}, TriangleNormal(o, x, y))
	assert.Equal(t, r3.Vec{}, TriangleNormal(o, x, x))

	// Faces of a positive tet point away from its centroid
	pts := []r3.Vec{o, x, y, z}
	tet := types.Tetra{0, 1, 2, 3}
	ctr := Centroid(pts...)
	for _, f := range TetFaces(tet) {
		assert.Less(t, SignedVolume(pts[f[0]], pts[f[1]], pts[f[2]], ctr), 0.)
	}
	edges := make(map[types.EdgeKey]bool)
	for _, e := range TetEdges(tet) {
		edges[e.Key()] = true
	}
	assert.Len(t, edges, 6)
}

func TestBoundingBox(t *testing.T) {
	bb := GetStandardTestSurfaces().Octahedron.BoundingBox()
	assert.Equal(t, r3.Vec{X: -1, Y: -1, Z: -1}, bb.Min)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, bb.Max)
	assert.InDelta(t, 2*math.Sqrt(3), Diagonal(bb), 1e-12)

	bb = BoundingBox([]r3.Vec{{X: 1}}, []r3.Vec{{Y: -2}})
	assert.Equal(t, r3.Vec{X: 0, Y: -2}, bb.Min)
	assert.Equal(t, r3.Vec{X: 1, Y: 0}, bb.Max)
	assert.Equal(t, r3.Box{}, BoundingBox())
}
