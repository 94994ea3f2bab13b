package model

import "gonum.org/v1/gonum/spatial/r3"

// Reduction is the physics vertex set derived from the render vertices
type Reduction struct {
	Physics         []r3.Vec // One entry per distinct position, in first occurrence order
	CoarseToPhysics []int    // Parallel to the render vertices
	Connectivity    *Connectivity
}

/*
ReduceCoarseToSparse removes duplicate positions from the render (coarse) vertices.

Positions are compared for exact equality, there is no tolerance: two render vertices that
differ in the last bit of a coordinate become two physics vertices. Every new physics vertex
gets an empty neighbor set in the returned Connectivity.
*/
func ReduceCoarseToSparse(coarse []r3.Vec) (rd Reduction) {
	var (
		index = make(map[r3.Vec]int, len(coarse))
	)
	rd.CoarseToPhysics = make([]int, len(coarse))
	rd.Connectivity = NewConnectivity()
	for i, p := range coarse {
		sparseID, ok := index[p]
		if !ok {
			sparseID = rd.Connectivity.AddVertex()
			index[p] = sparseID
			rd.Physics = append(rd.Physics, p)
		}
		rd.CoarseToPhysics[i] = sparseID
	}
	return
}
