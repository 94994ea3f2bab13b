package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/tetmodel/InputParameters"
	"github.com/notargets/tetmodel/mesh/readers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubeOBJ = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
f 1 4 3 2
f 5 6 7 8
f 1 2 6 5
f 4 8 7 3
f 1 5 8 4
f 2 3 7 6
`

func TestRunBuild(t *testing.T) {
	var (
		dir = t.TempDir()
		br  = &BuildRun{
			SurfaceFile: filepath.Join(dir, "cube.obj"),
			OutFile:     filepath.Join(dir, "cube.msh"),
			STLFile:     filepath.Join(dir, "boundary.stl"),
			Silent:      true,
		}
		bp = InputParameters.NewBuildParameters()
	)
	require.NoError(t, os.WriteFile(br.SurfaceFile, []byte(cubeOBJ), 0644))
	require.NoError(t, bp.Parse([]byte(`
Title: Unit Cube
FaceMatch: exact
`)))
	bp.Print()

	var out bytes.Buffer
	m, err := RunBuild(br, bp, &out)
	require.NoError(t, err)
	st := m.Stats()
	assert.Equal(t, 9, st.RenderVertices)
	assert.Equal(t, 12, st.Tetrahedra)
	assert.Contains(t, out.String(), "Unit Cube")
	assert.Contains(t, out.String(), "[12]\t\t\t\t= Tetrahedra")
	assert.Contains(t, out.String(), "[0]\t\t\t\t= One Sided Neighbors")
	assert.Equal(t, 0, st.AsymmetricPairs)

	gm, err := readers.ReadGmsh22(br.OutFile)
	require.NoError(t, err)
	assert.Len(t, gm.Tetrahedra, 12)
	assert.Len(t, gm.Triangles, 12)

	surf, err := readers.ReadSTL(br.STLFile)
	require.NoError(t, err)
	assert.Len(t, surf.Vertices, 8)

	out.Reset()
	require.NoError(t, Inspect(br.OutFile, &out))
	assert.Contains(t, out.String(), "[12]\t\t\t\t= Tetrahedra")
	assert.Contains(t, out.String(), "PhysicalNames[2] = surface")

	out.Reset()
	require.NoError(t, Inspect(br.SurfaceFile, &out))
	assert.Contains(t, out.String(), "[8]\t\t\t\t= Vertices")
}

func TestRunBuildFailures(t *testing.T) {
	dir := t.TempDir()
	bp := InputParameters.NewBuildParameters()

	// Unreadable surface
	_, err := RunBuild(&BuildRun{SurfaceFile: filepath.Join(dir, "missing.stl")}, bp, &bytes.Buffer{})
	assert.Error(t, err)

	// Empty surface gives no model
	empty := filepath.Join(dir, "empty.obj")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0644))
	m, err := RunBuild(&BuildRun{SurfaceFile: empty, Silent: true}, bp, &bytes.Buffer{})
	assert.ErrorContains(t, err, "empty.obj is empty")
	assert.False(t, m.Valid)

	// An open surface fails in the tetrahedralizer
	open := filepath.Join(dir, "open.obj")
	require.NoError(t, os.WriteFile(open, []byte(cubeOBJ[:len(cubeOBJ)-len("f 2 3 7 6\n")]), 0644))
	_, err = RunBuild(&BuildRun{SurfaceFile: open, Silent: true}, bp, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestMeasureInstructions(t *testing.T) {
	var calls int
	require.NoError(t, measureInstructions(func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
}
