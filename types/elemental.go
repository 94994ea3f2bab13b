package types

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// Edge is a pair of vertex indices
type Edge [2]int

func (e Edge) Key() EdgeKey { return NewEdgeKey(e) }

// Triangle is a vertex index triple, in winding order
type Triangle [3]int

// Key returns the orientation independent identity of the triangle
func (t Triangle) Key() FaceKey {
	k := FaceKey(t)
	sort.Ints(k[:])
	return k
}

// Offset returns the triangle with every index shifted by n
func (t Triangle) Offset(n int) Triangle {
	return Triangle{t[0] + n, t[1] + n, t[2] + n}
}

// Tetra is a vertex (or face) index quadruple for a first-order tetrahedron
type Tetra [4]int

// FaceKey is a triangle's vertex indices in ascending order, usable as a map key
type FaceKey [3]int

// FlattenTriangles converts to the flat index buffer layout used by renderers
func FlattenTriangles(tris []Triangle) (indices []int) {
	indices = make([]int, 0, 3*len(tris))
	for _, t := range tris {
		indices = append(indices, t[0], t[1], t[2])
	}
	return
}

// UnflattenTriangles converts a flat index buffer into triangles, the buffer length must be a multiple of 3
func UnflattenTriangles(indices []int) (tris []Triangle, err error) {
	if len(indices)%3 != 0 {
		err = errors.Errorf("index buffer length %d is not a multiple of 3", len(indices))
		return
	}
	tris = make([]Triangle, len(indices)/3)
	for i := range tris {
		tris[i] = Triangle{indices[3*i], indices[3*i+1], indices[3*i+2]}
	}
	return
}

// FlattenTetras converts to a flat buffer of 4 indices per tetrahedron
func FlattenTetras(tets []Tetra) (indices []int) {
	indices = make([]int, 0, 4*len(tets))
	for _, t := range tets {
		indices = append(indices, t[0], t[1], t[2], t[3])
	}
	return
}
