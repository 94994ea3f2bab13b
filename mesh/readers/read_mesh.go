package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/notargets/tetmodel/mesh"
)

// ReadSurfaceFile reads a closed triangle surface based on the file extension
func ReadSurfaceFile(filename string) (*mesh.InputMesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".stl":
		return ReadSTL(filename)
	case ".obj":
		return ReadOBJ(filename)
	case ".msh":
		gm, err := ReadGmshAuto(filename)
		if err != nil {
			return nil, err
		}
		return gm.Surface(), nil
	default:
		return nil, fmt.Errorf("unsupported surface format: %s", ext)
	}
}
