package readers

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/notargets/tetmodel/mesh"
	"github.com/notargets/tetmodel/types"
	"gonum.org/v1/gonum/spatial/r3"
)

// GmshMesh holds the linear triangles and tetrahedra of a Gmsh file, with zero based node indices
type GmshMesh struct {
	FormatVersion string
	IsBinary      bool
	DataSize      int
	Vertices      []r3.Vec
	Triangles     []types.Triangle
	Tetrahedra    []types.Tetra
	TriangleTags  []int // Physical tag per triangle, 0 when untagged
	PhysicalNames map[int]string
	Skipped       int // Elements of other types
	nodeIndex     map[int]int
}

func NewGmshMesh() *GmshMesh {
	return &GmshMesh{
		PhysicalNames: make(map[int]string),
		nodeIndex:     make(map[int]int),
	}
}

// AddNode registers a node by its file ID
func (gm *GmshMesh) AddNode(nodeID int, p r3.Vec) {
	gm.nodeIndex[nodeID] = len(gm.Vertices)
	gm.Vertices = append(gm.Vertices, p)
}

// GetNodeIndex returns the array index for a node ID
func (gm *GmshMesh) GetNodeIndex(nodeID int) (int, bool) {
	idx, ok := gm.nodeIndex[nodeID]
	return idx, ok
}

// Surface returns the triangles as an input mesh sharing the vertex list
func (gm *GmshMesh) Surface() *mesh.InputMesh {
	return mesh.NewInputMesh(gm.Vertices, types.FlattenTriangles(gm.Triangles))
}

// ReadGmshAuto detects the Gmsh format version and reads the file
func ReadGmshAuto(filename string) (*GmshMesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var version string

	// Look for $MeshFormat section to determine version
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "$MeshFormat" {
			if scanner.Scan() {
				parts := strings.Fields(scanner.Text())
				if len(parts) > 0 {
					version = parts[0]
					break
				}
			}
		}
	}

	switch {
	case strings.HasPrefix(version, "2."):
		return ReadGmsh22(filename)
	case version == "":
		return nil, fmt.Errorf("could not find $MeshFormat section")
	default:
		return nil, fmt.Errorf("unsupported Gmsh format version: %s", version)
	}
}
