package mesh

import (
	"math"

	"github.com/notargets/tetmodel/types"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxTexCoords is the fixed number of texture coordinate channels carried per vertex
const MaxTexCoords = 4

// Tangent holds the X and Z axes of a vertex tangent frame
type Tangent struct {
	X r3.Vec
	Z r3.Vec
}

// InputMesh is a closed triangulated surface with optional render attributes
type InputMesh struct {
	Vertices  []r3.Vec               // Vertex positions
	Indices   []int                  // Triangle vertex indices, 3 per triangle
	TexCoords [MaxTexCoords][]r2.Vec // Optional UV channels, empty or parallel to Vertices
	Tangents  []Tangent              // Optional tangent frames, empty or parallel to Vertices
}

// NewInputMesh creates a surface mesh without render attributes
func NewInputMesh(vertices []r3.Vec, indices []int) *InputMesh {
	return &InputMesh{
		Vertices: vertices,
		Indices:  indices,
	}
}

// IsEmpty is true when there is nothing to tetrahedralize
func (m *InputMesh) IsEmpty() bool {
	return m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0
}

func (m *InputMesh) NumTriangles() int { return len(m.Indices) / 3 }

// Triangle returns the i-th triangle's vertex indices
func (m *InputMesh) Triangle(i int) types.Triangle {
	return types.Triangle{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}

func (m *InputMesh) Triangles() (tris []types.Triangle) {
	tris = make([]types.Triangle, m.NumTriangles())
	for i := range tris {
		tris[i] = m.Triangle(i)
	}
	return
}

// NumTexCoords returns the number of populated texture coordinate channels
func (m *InputMesh) NumTexCoords() (n int) {
	for c := 0; c < MaxTexCoords; c++ {
		if len(m.TexCoords[c]) > 0 {
			n = c + 1
		}
	}
	return
}

// HasTangents is true when a tangent frame is supplied for every vertex
func (m *InputMesh) HasTangents() bool {
	return len(m.Tangents) > 0
}

// Validate checks the index and attribute invariants of the mesh
func (m *InputMesh) Validate() error {
	nv := len(m.Vertices)
	if len(m.Indices)%3 != 0 {
		return errors.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= nv {
			return errors.Errorf("index %d at position %d is out of range [0,%d)", idx, i, nv)
		}
	}
	for c, uv := range m.TexCoords {
		if len(uv) != 0 && len(uv) != nv {
			return errors.Errorf("texture coordinate channel %d has %d entries, expected %d", c, len(uv), nv)
		}
	}
	if len(m.Tangents) != 0 && len(m.Tangents) != nv {
		return errors.Errorf("tangent count %d does not match vertex count %d", len(m.Tangents), nv)
	}
	for i, v := range m.Vertices {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) ||
			math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0) {
			return errors.Errorf("vertex %d has a non finite coordinate %v", i, v)
		}
	}
	return nil
}

// BoundingBox returns the extent of the mesh vertices
func (m *InputMesh) BoundingBox() r3.Box {
	return BoundingBox(m.Vertices)
}

// BoundingBox returns the smallest box containing all points of all sets
func BoundingBox(sets ...[]r3.Vec) (bb r3.Box) {
	bb.Min = r3.Vec{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	bb.Max = r3.Vec{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}
	var n int
	for _, pts := range sets {
		for _, p := range pts {
			bb.Min.X, bb.Max.X = math.Min(bb.Min.X, p.X), math.Max(bb.Max.X, p.X)
			bb.Min.Y, bb.Max.Y = math.Min(bb.Min.Y, p.Y), math.Max(bb.Max.Y, p.Y)
			bb.Min.Z, bb.Max.Z = math.Min(bb.Min.Z, p.Z), math.Max(bb.Max.Z, p.Z)
			n++
		}
	}
	if n == 0 {
		bb = r3.Box{}
	}
	return
}
