package tetrahedralize

import (
	"github.com/notargets/tetmodel/types"
	"gonum.org/v1/gonum/spatial/r3"
)

// Polygon is a simple polygon given by point indices
type Polygon struct {
	Vertices []int
}

// Facet is a planar boundary constraint made of polygons, with optional holes
type Facet struct {
	Polygons []Polygon
	Holes    []r3.Vec
	Marker   int
}

// NewTriangleFacet builds a single polygon, hole free facet
func NewTriangleFacet(t types.Triangle, marker int) Facet {
	return Facet{
		Polygons: []Polygon{{Vertices: []int{t[0], t[1], t[2]}}},
		Marker:   marker,
	}
}

// Input is the point set and boundary handed to an Engine
type Input struct {
	Points      []r3.Vec
	PointParams [][]float64 // Opaque per-point slots, carried through to the output unchanged
	Facets      []Facet
}

// NumParams returns the number of per-point parameter slots
func (in *Input) NumParams() int {
	if len(in.PointParams) == 0 {
		return 0
	}
	return len(in.PointParams[0])
}

/*
Output is the result of an Engine run.

The first len(Input.Points) points are the input points in input order, including points that
share a position. Steiner points follow. TetFaces and Neighbors are parallel to Tetrahedra and
list, per local face, the index into TriFaces and the adjacent tetrahedron (-1 on the boundary).
Local faces follow mesh.TetFaces. Any list whose output was not requested is empty.
*/
type Output struct {
	Points      []r3.Vec
	PointParams [][]float64
	Tetrahedra  []types.Tetra
	TetFaces    []types.Tetra
	TriFaces    []types.Triangle
	Edges       []types.Edge
	Neighbors   []types.Tetra
	Order       int
}

// NumSteinerPoints returns how many points were added beyond the n input points
func (out *Output) NumSteinerPoints(n int) int {
	if len(out.Points) < n {
		return 0
	}
	return len(out.Points) - n
}
