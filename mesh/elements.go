package mesh

import (
	"math"

	"github.com/notargets/tetmodel/types"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// TetFaces returns the four faces of a tetrahedron, wound outward for a positively oriented element
func TetFaces(t types.Tetra) [4]types.Triangle {
	return [4]types.Triangle{
		{t[0], t[2], t[1]}, // Face 0
		{t[0], t[1], t[3]}, // Face 1
		{t[1], t[2], t[3]}, // Face 2
		{t[0], t[3], t[2]}, // Face 3
	}
}

// TetEdges returns the six edges of a tetrahedron
func TetEdges(t types.Tetra) [6]types.Edge {
	return [6]types.Edge{
		{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]},
		{t[0], t[3]}, {t[1], t[3]}, {t[2], t[3]},
	}
}

// SignedVolume returns the oriented volume of the tetrahedron abcd, positive when d lies
// on the side of triangle abc that its right handed normal points to
func SignedVolume(a, b, c, d r3.Vec) float64 {
	ab, ac, ad := r3.Sub(b, a), r3.Sub(c, a), r3.Sub(d, a)
	J := mat.NewDense(3, 3, []float64{
		ab.X, ab.Y, ab.Z,
		ac.X, ac.Y, ac.Z,
		ad.X, ad.Y, ad.Z,
	})
	return mat.Det(J) / 6.
}

// TriangleArea returns the area of triangle abc
func TriangleArea(a, b, c r3.Vec) float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
}

// TriangleNormal returns the unit normal of triangle abc, zero for a degenerate triangle
func TriangleNormal(a, b, c r3.Vec) r3.Vec {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	l := r3.Norm(n)
	if l == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}

// Centroid returns the arithmetic mean of the points
func Centroid(pts ...r3.Vec) (c r3.Vec) {
	if len(pts) == 0 {
		return
	}
	for _, p := range pts {
		c = r3.Add(c, p)
	}
	return r3.Scale(1/float64(len(pts)), c)
}

// Diagonal returns the length of the bounding box diagonal
func Diagonal(bb r3.Box) float64 {
	d := r3.Sub(bb.Max, bb.Min)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}
