package readers

import (
	"github.com/hschendel/stl"
	"github.com/notargets/tetmodel/mesh"
	"github.com/notargets/tetmodel/model"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadSTL reads an ASCII or binary STL file. Triangle corners at the same position are
// welded into a single vertex, so the result is an indexed closed surface.
func ReadSTL(filename string) (*mesh.InputMesh, error) {
	solid, err := stl.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading STL %s", filename)
	}
	var (
		m     = &mesh.InputMesh{}
		index = make(map[r3.Vec]int)
	)
	for _, tri := range solid.Triangles {
		for _, v := range tri.Vertices {
			p := r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
			idx, ok := index[p]
			if !ok {
				idx = len(m.Vertices)
				index[p] = idx
				m.Vertices = append(m.Vertices, p)
			}
			m.Indices = append(m.Indices, idx)
		}
	}
	return m, nil
}

// WriteSTL writes the boundary faces of a model as a binary STL file
func WriteSTL(filename string, m *model.Model) error {
	if m == nil || !m.Valid {
		return errors.New("cannot write an invalid model")
	}
	var (
		boundary = m.BoundaryFaces()
		solid    = &stl.Solid{
			Name:         "tetmodel",
			BinaryHeader: []byte("tetmodel boundary"),
			Triangles:    make([]stl.Triangle, len(boundary)),
		}
		vec = func(p r3.Vec) stl.Vec3 {
			return stl.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
		}
	)
	for i, f := range boundary {
		a, b, c := m.RenderVertices[f[0]], m.RenderVertices[f[1]], m.RenderVertices[f[2]]
		solid.Triangles[i] = stl.Triangle{
			Normal:   vec(mesh.TriangleNormal(a, b, c)),
			Vertices: [3]stl.Vec3{vec(a), vec(b), vec(c)},
		}
	}
	if err := solid.WriteFile(filename); err != nil {
		return errors.Wrapf(err, "writing STL %s", filename)
	}
	return nil
}
