package model

import (
	"github.com/james-bowman/sparse"
	"github.com/pkg/errors"
)

// MaxNeighbors is the fixed neighbor capacity of every physics vertex
const MaxNeighbors = 52

// Unset marks an empty neighbor slot
const Unset = -1

// ErrNeighborOverflow is returned by AddNeighbor when a vertex has no free slot left
var ErrNeighborOverflow = errors.New("neighbor overflow")

// NeighborSet is a bounded list of neighbor indices, filled from the front, terminated by Unset
type NeighborSet [MaxNeighbors]int

func NewNeighborSet() (ns NeighborSet) {
	for i := range ns {
		ns[i] = Unset
	}
	return
}

/*
Connectivity is the per vertex adjacency of the physics vertices.

Edges are directed at this level: an undirected edge is registered by calling AddNeighbor in
both directions. A vertex that is full keeps its first MaxNeighbors neighbors and drops the rest.
*/
type Connectivity struct {
	Neighbors []NeighborSet
	MaxDegree int // Largest degree observed so far
	Overflows int // Number of AddNeighbor calls rejected for lack of capacity
}

func NewConnectivity() *Connectivity {
	return &Connectivity{}
}

// AddVertex appends an empty neighbor set and returns its index
func (c *Connectivity) AddVertex() (idx int) {
	idx = len(c.Neighbors)
	c.Neighbors = append(c.Neighbors, NewNeighborSet())
	return
}

func (c *Connectivity) NumVertices() int { return len(c.Neighbors) }

// AddNeighbor records dst as adjacent to src. Adding a present neighbor is a no-op.
func (c *Connectivity) AddNeighbor(src, dst int) error {
	if src < 0 || src >= len(c.Neighbors) || dst < 0 || dst >= len(c.Neighbors) {
		return errors.Errorf("neighbor %d -> %d is outside of [0,%d)", src, dst, len(c.Neighbors))
	}
	ns := &c.Neighbors[src]
	for i, n := range ns {
		switch n {
		case dst:
			return nil
		case Unset:
			ns[i] = dst
			if i+1 > c.MaxDegree {
				c.MaxDegree = i + 1
			}
			return nil
		}
	}
	c.Overflows++
	return ErrNeighborOverflow
}

// Degree returns the number of neighbors stored for v
func (c *Connectivity) Degree(v int) (deg int) {
	for _, n := range c.Neighbors[v] {
		if n == Unset {
			break
		}
		deg++
	}
	return
}

// NeighborsOf returns the stored neighbors of v in insertion order
func (c *Connectivity) NeighborsOf(v int) (nbrs []int) {
	deg := c.Degree(v)
	nbrs = make([]int, deg)
	copy(nbrs, c.Neighbors[v][:deg])
	return
}

// HasNeighbor is true when dst is stored in the neighbor set of src
func (c *Connectivity) HasNeighbor(src, dst int) bool {
	for _, n := range c.Neighbors[src] {
		switch n {
		case dst:
			return true
		case Unset:
			return false
		}
	}
	return false
}

/*
Adjacency exports the graph as a square sparse matrix with a 1 at (i,j) for every stored
neighbor j of vertex i. The matrix is symmetric unless an overflow dropped one direction.
*/
func (c *Connectivity) Adjacency() *sparse.CSR {
	nv := len(c.Neighbors)
	A := sparse.NewDOK(nv, nv)
	for i := range c.Neighbors {
		for _, j := range c.NeighborsOf(i) {
			A.Set(i, j, 1)
		}
	}
	return A.ToCSR()
}

// AsymmetricPairs counts stored neighbors j of i for which i is not stored as a neighbor of j
func (c *Connectivity) AsymmetricPairs() (n int) {
	A := c.Adjacency()
	A.DoNonZero(func(i, j int, v float64) {
		if A.At(j, i) == 0 {
			n++
		}
	})
	return
}
