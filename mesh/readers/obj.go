package readers

import (
	"github.com/fogleman/fauxgl"
	"github.com/notargets/tetmodel/mesh"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadOBJ reads a Wavefront OBJ file. Polygons are fanned into triangles. Corners are welded
// when both the position and the texture coordinate agree, so UV seams keep their own vertices.
// The first texture channel is filled when any corner has a texture coordinate.
func ReadOBJ(filename string) (*mesh.InputMesh, error) {
	obj, err := fauxgl.LoadOBJ(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading OBJ %s", filename)
	}
	type corner struct {
		p  r3.Vec
		uv r2.Vec
	}
	var (
		m     = &mesh.InputMesh{}
		uvs   []r2.Vec
		hasUV bool
		index = make(map[corner]int)
	)
	for _, tri := range obj.Triangles {
		for _, v := range [3]fauxgl.Vertex{tri.V1, tri.V2, tri.V3} {
			c := corner{
				p:  r3.Vec{X: v.Position.X, Y: v.Position.Y, Z: v.Position.Z},
				uv: r2.Vec{X: v.Texture.X, Y: v.Texture.Y},
			}
			idx, ok := index[c]
			if !ok {
				idx = len(m.Vertices)
				index[c] = idx
				m.Vertices = append(m.Vertices, c.p)
				uvs = append(uvs, c.uv)
				hasUV = hasUV || c.uv != (r2.Vec{})
			}
			m.Indices = append(m.Indices, idx)
		}
	}
	if hasUV {
		m.TexCoords[0] = uvs
	}
	return m, nil
}
