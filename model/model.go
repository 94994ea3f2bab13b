package model

import (
	"github.com/notargets/tetmodel/mesh"
	"github.com/notargets/tetmodel/types"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// VertexAttributes are the render attributes of one render vertex
type VertexAttributes struct {
	TexCoords [mesh.MaxTexCoords]r2.Vec
	Tangent   mesh.Tangent
	Surface   bool // Position is one of the input surface positions
}

/*
Model is a tetrahedral soft-body model.

Render vertices may repeat a position so that attributes can differ across a seam, physics
vertices are the distinct positions. Vertex indices in SurfaceIndices and TetrahedronVertexIndices
are render indices, TetrahedronFaceIndices index SurfaceIndices and Connectivity is indexed by
physics vertex. A model that is not Valid carries no usable data.
*/
type Model struct {
	Version                  uint32
	RenderVertices           []r3.Vec
	PhysicsVertices          []r3.Vec
	CoarseToPhysicsMap       []int
	SurfaceIndices           []types.Triangle
	TetrahedronVertexIndices []types.Tetra
	TetrahedronFaceIndices   []types.Tetra
	Connectivity             *Connectivity
	Attributes               []VertexAttributes
	NumTexCoords             int
	Valid                    bool
}

// Stats summarizes a model for diagnostics
type Stats struct {
	RenderVertices, PhysicsVertices   int
	SurfaceVertices, InteriorVertices int
	Tetrahedra, Faces                 int
	MaxDegree, Overflows              int
	AsymmetricPairs                   int
}

func (m *Model) Stats() (st Stats) {
	st.RenderVertices = len(m.RenderVertices)
	st.PhysicsVertices = len(m.PhysicsVertices)
	for _, a := range m.Attributes {
		if a.Surface {
			st.SurfaceVertices++
		} else {
			st.InteriorVertices++
		}
	}
	st.Tetrahedra = len(m.TetrahedronVertexIndices)
	st.Faces = len(m.SurfaceIndices)
	if m.Connectivity != nil {
		st.MaxDegree = m.Connectivity.MaxDegree
		st.Overflows = m.Connectivity.Overflows
		st.AsymmetricPairs = m.Connectivity.AsymmetricPairs()
	}
	return
}

// Check verifies the structural invariants of a valid model
func (m *Model) Check() error {
	var (
		nr = len(m.RenderVertices)
		np = len(m.PhysicsVertices)
	)
	if !m.Valid {
		return errors.New("model is not valid")
	}
	if len(m.Attributes) != nr || len(m.CoarseToPhysicsMap) != nr {
		return errors.Errorf("render arrays differ in length: vertices %d, attributes %d, map %d",
			nr, len(m.Attributes), len(m.CoarseToPhysicsMap))
	}
	if m.Connectivity == nil || m.Connectivity.NumVertices() != np {
		return errors.Errorf("connectivity does not match %d physics vertices", np)
	}
	for i, p := range m.CoarseToPhysicsMap {
		if p < 0 || p >= np {
			return errors.Errorf("render vertex %d maps to physics vertex %d of %d", i, p, np)
		}
	}
	for v, ns := range m.Connectivity.Neighbors {
		seen := make(map[int]bool)
		end := false
		for _, n := range ns {
			switch {
			case n == Unset:
				end = true
			case end:
				return errors.Errorf("physics vertex %d has a neighbor after an unset slot", v)
			case n < 0 || n >= np:
				return errors.Errorf("physics vertex %d has neighbor %d of %d", v, n, np)
			case seen[n]:
				return errors.Errorf("physics vertex %d lists neighbor %d twice", v, n)
			}
			seen[n] = true
		}
	}
	// Only an overflow may drop one direction of an edge
	if m.Connectivity.Overflows == 0 {
		if n := m.Connectivity.AsymmetricPairs(); n != 0 {
			return errors.Errorf("connectivity has %d one sided neighbors without overflow", n)
		}
	}
	for k, tet := range m.TetrahedronVertexIndices {
		for _, v := range tet {
			if v < 0 || v >= nr {
				return errors.Errorf("tetrahedron %d references render vertex %d of %d", k, v, nr)
			}
		}
	}
	if len(m.TetrahedronFaceIndices) != len(m.TetrahedronVertexIndices) {
		return errors.Errorf("%d tetrahedra but %d face quadruples",
			len(m.TetrahedronVertexIndices), len(m.TetrahedronFaceIndices))
	}
	for k, tf := range m.TetrahedronFaceIndices {
		for _, f := range tf {
			if f < 0 || f >= len(m.SurfaceIndices) {
				return errors.Errorf("tetrahedron %d references face %d of %d", k, f, len(m.SurfaceIndices))
			}
		}
	}
	for i, t := range m.SurfaceIndices {
		for _, v := range t {
			if v < 0 || v >= nr {
				return errors.Errorf("face %d references render vertex %d of %d", i, v, nr)
			}
		}
	}
	return nil
}

/*
BoundaryFaces returns the faces on the outside of the tetrahedral mesh, as stored in
SurfaceIndices. Faces are compared through their physics vertices, so a face counts as
interior when both of its sides are present, whatever render vertices each side uses.
*/
func (m *Model) BoundaryFaces() (faces []types.Triangle) {
	var (
		key = func(f int) types.FaceKey {
			t := m.SurfaceIndices[f]
			return types.Triangle{
				m.CoarseToPhysicsMap[t[0]], m.CoarseToPhysicsMap[t[1]], m.CoarseToPhysicsMap[t[2]],
			}.Key()
		}
		count = make(map[types.FaceKey]int)
	)
	for _, tf := range m.TetrahedronFaceIndices {
		for _, f := range tf {
			count[key(f)]++
		}
	}
	for _, tf := range m.TetrahedronFaceIndices {
		for _, f := range tf {
			if count[key(f)] == 1 {
				faces = append(faces, m.SurfaceIndices[f])
			}
		}
	}
	return
}
