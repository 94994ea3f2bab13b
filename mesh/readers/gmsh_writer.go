package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/notargets/tetmodel/model"
	"github.com/notargets/tetmodel/types"
	"github.com/pkg/errors"
)

// Physical tags written for a model
const (
	VolumeTag  = 1
	SurfaceTag = 2
)

// WriteGmsh22 writes the render vertices, tetrahedra and boundary faces of a model as Gmsh 2.2 ASCII
func WriteGmsh22(w io.Writer, m *model.Model) error {
	if m == nil || !m.Valid {
		return errors.New("cannot write an invalid model")
	}
	bw := bufio.NewWriter(w)
	boundary := m.BoundaryFaces()

	fmt.Fprintln(bw, "$MeshFormat")
	fmt.Fprintln(bw, "2.2 0 8")
	fmt.Fprintln(bw, "$EndMeshFormat")

	fmt.Fprintln(bw, "$PhysicalNames")
	fmt.Fprintln(bw, "2")
	fmt.Fprintf(bw, "3 %d \"volume\"\n", VolumeTag)
	fmt.Fprintf(bw, "2 %d \"surface\"\n", SurfaceTag)
	fmt.Fprintln(bw, "$EndPhysicalNames")

	fmt.Fprintln(bw, "$Nodes")
	fmt.Fprintln(bw, len(m.RenderVertices))
	for i, p := range m.RenderVertices {
		fmt.Fprintf(bw, "%d %.17g %.17g %.17g\n", i+1, p.X, p.Y, p.Z)
	}
	fmt.Fprintln(bw, "$EndNodes")

	fmt.Fprintln(bw, "$Elements")
	fmt.Fprintln(bw, len(m.TetrahedronVertexIndices)+len(boundary))
	elemID := 1
	tets := types.FlattenTetras(m.TetrahedronVertexIndices)
	for k := 0; k < len(tets); k += 4 {
		fmt.Fprintf(bw, "%d %d 2 %d %d %d %d %d %d\n", elemID, gmshTet, VolumeTag, VolumeTag,
			tets[k]+1, tets[k+1]+1, tets[k+2]+1, tets[k+3]+1)
		elemID++
	}
	for _, f := range boundary {
		fmt.Fprintf(bw, "%d %d 2 %d %d %d %d %d\n", elemID, gmshTriangle, SurfaceTag, SurfaceTag,
			f[0]+1, f[1]+1, f[2]+1)
		elemID++
	}
	fmt.Fprintln(bw, "$EndElements")

	return bw.Flush()
}

// WriteGmsh22File writes a model to the named file
func WriteGmsh22File(filename string, m *model.Model) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %s", filename)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteGmsh22(file, m)
}
