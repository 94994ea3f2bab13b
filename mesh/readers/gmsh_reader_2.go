package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/tetmodel/types"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Gmsh 2.2 element type numbers of the linear elements that are kept
const (
	gmshTriangle = 2
	gmshTet      = 4
)

// ReadGmsh22 reads a Gmsh MSH file format version 2.2 (ASCII)
func ReadGmsh22(filename string) (*GmshMesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", filename)
	}
	defer file.Close()
	return ParseGmsh22(file)
}

// ParseGmsh22 reads Gmsh 2.2 ASCII content
func ParseGmsh22(r io.Reader) (*GmshMesh, error) {
	scanner := bufio.NewScanner(r)
	gm := NewGmshMesh()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := readMeshFormat22(scanner, gm); err != nil {
				return nil, err
			}

		case "$PhysicalNames":
			if err := readPhysicalNames(scanner, gm); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err := readNodes22(scanner, gm); err != nil {
				return nil, err
			}

		case "$Elements":
			if err := readElements22(scanner, gm); err != nil {
				return nil, err
			}

		case "$Periodic", "$NodeData", "$ElementData", "$ElementNodeData":
			// Skip sections without surface data
			endMarker := "$End" + line[1:]
			for scanner.Scan() {
				if strings.TrimSpace(scanner.Text()) == endMarker {
					break
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	return gm, nil
}

// readMeshFormat22 reads the MeshFormat section
func readMeshFormat22(scanner *bufio.Scanner, gm *GmshMesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}

	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}

	gm.FormatVersion = parts[0]
	fileType, _ := strconv.Atoi(parts[1])
	gm.IsBinary = fileType == 1
	gm.DataSize, _ = strconv.Atoi(parts[2])
	if gm.IsBinary {
		return fmt.Errorf("binary Gmsh files are not supported")
	}

	// Skip to end
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndMeshFormat" {
			break
		}
	}
	return nil
}

// readPhysicalNames reads physical group names
func readPhysicalNames(scanner *bufio.Scanner, gm *GmshMesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in PhysicalNames")
	}

	numNames, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))

	for i := 0; i < numNames; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading physical names")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) >= 3 {
			tag, _ := strconv.Atoi(parts[1])
			name := strings.Trim(parts[2], "\"")

			// Join remaining parts if name contains spaces
			for j := 3; j < len(parts); j++ {
				name += " " + strings.Trim(parts[j], "\"")
			}
			gm.PhysicalNames[tag] = name
		}
	}

	// Skip to end
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndPhysicalNames" {
			break
		}
	}
	return nil
}

// readNodes22 reads nodes in v2.2 format
func readNodes22(scanner *bufio.Scanner, gm *GmshMesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}

	numNodes, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	gm.Vertices = make([]r3.Vec, 0, numNodes)

	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}

		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid node id in line: %s", scanner.Text())
		}
		var xyz [3]float64
		for j := range xyz {
			if xyz[j], err = strconv.ParseFloat(parts[1+j], 64); err != nil {
				return fmt.Errorf("invalid coordinate in node line: %s", scanner.Text())
			}
		}
		gm.AddNode(nodeID, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}

	// Skip to end
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndNodes" {
			break
		}
	}
	return nil
}

// readElements22 reads the linear triangles and tetrahedra, other element types are counted and skipped
func readElements22(scanner *bufio.Scanner, gm *GmshMesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}

	numElements, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))

	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 5 {
			return fmt.Errorf("invalid element line")
		}

		elemID, _ := strconv.Atoi(parts[0])
		elemType, _ := strconv.Atoi(parts[1])
		numTags, _ := strconv.Atoi(parts[2])

		if len(parts) < 3+numTags {
			return fmt.Errorf("invalid element tags")
		}

		var physicalTag int
		if numTags > 0 {
			physicalTag, _ = strconv.Atoi(parts[3])
		}

		var expectedNodes int
		switch elemType {
		case gmshTriangle:
			expectedNodes = 3
		case gmshTet:
			expectedNodes = 4
		default:
			gm.Skipped++
			continue
		}

		nodeStart := 3 + numTags
		if len(parts) < nodeStart+expectedNodes {
			return fmt.Errorf("element %d: expected %d nodes, got %d",
				elemID, expectedNodes, len(parts)-nodeStart)
		}

		var nodes [4]int
		for j := 0; j < expectedNodes; j++ {
			nodeID, _ := strconv.Atoi(parts[nodeStart+j])
			idx, ok := gm.GetNodeIndex(nodeID)
			if !ok {
				return fmt.Errorf("element %d references unknown node %d", elemID, nodeID)
			}
			nodes[j] = idx
		}

		if elemType == gmshTriangle {
			gm.Triangles = append(gm.Triangles, types.Triangle{nodes[0], nodes[1], nodes[2]})
			gm.TriangleTags = append(gm.TriangleTags, physicalTag)
		} else {
			gm.Tetrahedra = append(gm.Tetrahedra, types.Tetra(nodes))
		}
	}

	// Skip to end
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndElements" {
			break
		}
	}
	return nil
}
