package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// TestSurfaces provides a collection of standard closed surfaces that can be used
// across the readers, the tetrahedralizer and the model builder tests
type TestSurfaces struct {
	Tetrahedron InputMesh // Single positively oriented tetrahedron
	Cube        InputMesh // Unit cube, 8 shared vertices
	Octahedron  InputMesh // Regular octahedron, 6 vertices
	SeamedCube  InputMesh // Unit cube with 4 vertices per side carrying UVs and tangents
}

// GetStandardTestSurfaces returns a set of standard test surfaces
func GetStandardTestSurfaces() *TestSurfaces {
	return &TestSurfaces{
		Tetrahedron: createTetrahedron(),
		Cube:        createCube(),
		Octahedron:  createOctahedron(),
		SeamedCube:  createSeamedCube(),
	}
}

// Surface creators

func createTetrahedron() InputMesh {
	return InputMesh{
		Vertices: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		Indices: []int{
			0, 2, 1,
			0, 1, 3,
			1, 2, 3,
			0, 3, 2,
		},
	}
}

var cubeCorners = []r3.Vec{
	{X: 0, Y: 0, Z: 0}, // 0: origin
	{X: 1, Y: 0, Z: 0}, // 1: x
	{X: 1, Y: 1, Z: 0}, // 2: xy
	{X: 0, Y: 1, Z: 0}, // 3: y
	{X: 0, Y: 0, Z: 1}, // 4: z
	{X: 1, Y: 0, Z: 1}, // 5: xz
	{X: 1, Y: 1, Z: 1}, // 6: xyz
	{X: 0, Y: 1, Z: 1}, // 7: yz
}

// Cube sides as quads, counter clockwise seen from outside
var cubeSides = [6][4]int{
	{0, 3, 2, 1}, // bottom
	{4, 5, 6, 7}, // top
	{0, 1, 5, 4}, // front
	{3, 7, 6, 2}, // back
	{0, 4, 7, 3}, // left
	{1, 2, 6, 5}, // right
}

func createCube() InputMesh {
	m := InputMesh{
		Vertices: append([]r3.Vec(nil), cubeCorners...),
	}
	for _, q := range cubeSides {
		m.Indices = append(m.Indices,
			q[0], q[1], q[2],
			q[0], q[2], q[3],
		)
	}
	return m
}

func createOctahedron() InputMesh {
	return InputMesh{
		Vertices: []r3.Vec{
			{X: 0, Y: 0, Z: 1},  // 0: top
			{X: 1, Y: 0, Z: 0},  // 1
			{X: 0, Y: 1, Z: 0},  // 2
			{X: -1, Y: 0, Z: 0}, // 3
			{X: 0, Y: -1, Z: 0}, // 4
			{X: 0, Y: 0, Z: -1}, // 5: bottom
		},
		Indices: []int{
			0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 4, 1,
			5, 2, 1, 5, 3, 2, 5, 4, 3, 5, 1, 4,
		},
	}
}

func createSeamedCube() InputMesh {
	var (
		m   InputMesh
		uvs = [4]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	)
	for _, q := range cubeSides {
		base := len(m.Vertices)
		a, b, c := cubeCorners[q[0]], cubeCorners[q[1]], cubeCorners[q[2]]
		frame := Tangent{
			X: r3.Unit(r3.Sub(b, a)),
			Z: TriangleNormal(a, b, c),
		}
		for j, corner := range q {
			m.Vertices = append(m.Vertices, cubeCorners[corner])
			m.TexCoords[0] = append(m.TexCoords[0], uvs[j])
			m.TexCoords[1] = append(m.TexCoords[1], r2.Scale(0.5, uvs[j]))
			m.Tangents = append(m.Tangents, frame)
		}
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return m
}

// Bipyramid returns a double cone over an n sided regular polygon. The two apex vertices
// have n+1 neighbors once the interior is meshed, which makes it useful for degree limits.
func Bipyramid(n int) InputMesh {
	m := InputMesh{
		Vertices: []r3.Vec{
			{X: 0, Y: 0, Z: 1},  // 0: top apex
			{X: 0, Y: 0, Z: -1}, // 1: bottom apex
		},
	}
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		m.Vertices = append(m.Vertices, r3.Vec{X: math.Cos(theta), Y: math.Sin(theta)})
	}
	for i := 0; i < n; i++ {
		a, b := 2+i, 2+(i+1)%n
		m.Indices = append(m.Indices,
			0, a, b,
			1, b, a,
		)
	}
	return m
}
