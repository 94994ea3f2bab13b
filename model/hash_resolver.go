package model

import (
	"github.com/notargets/tetmodel/mesh"
	"github.com/notargets/tetmodel/types"
	"gonum.org/v1/gonum/spatial/r3"
)

// HashResolution is the number of grid cells per axis of the face hash
const HashResolution = 1 << 16

/*
HashResolver finds original triangles through a spatial hash of their three positions.

Positions are quantized to a HashResolution^3 grid spanning the bounding box of all points,
and the per axis cell coordinates of the three vertices are summed into one 64 bit key, which
makes the key independent of vertex order. Keys collide, so every candidate is confirmed by
comparing positions before it is used. When several original triangles confirm, the last one
in input order is used.
*/
type HashResolver struct{}

type hashCandidate struct {
	pos [3]r3.Vec
	tri types.Triangle
}

type spatialHash struct {
	min, scale r3.Vec
}

func newSpatialHash(bb r3.Box) (h spatialHash) {
	h.min = bb.Min
	ext := r3.Sub(bb.Max, bb.Min)
	axis := func(e float64) float64 {
		if e <= 0 {
			return 0
		}
		return float64(HashResolution-1) / e
	}
	h.scale = r3.Vec{X: axis(ext.X), Y: axis(ext.Y), Z: axis(ext.Z)}
	return
}

// cell packs the grid coordinates of p into 16 bit fields
func (h spatialHash) cell(p r3.Vec) uint64 {
	var (
		qx = uint64((p.X - h.min.X) * h.scale.X)
		qy = uint64((p.Y - h.min.Y) * h.scale.Y)
		qz = uint64((p.Z - h.min.Z) * h.scale.Z)
	)
	return qx + qy<<16 + qz<<32
}

func (h spatialHash) key(pos [3]r3.Vec) (k uint64) {
	for _, p := range pos {
		k += h.cell(p)
	}
	return
}

func (HashResolver) Restore(faces []types.Triangle, points []r3.Vec,
	original []types.Triangle, originalPoints []r3.Vec) (restored int) {
	if len(faces) == 0 || len(original) == 0 {
		return
	}
	var (
		h          = newSpatialHash(mesh.BoundingBox(points, originalPoints))
		candidates = make(map[uint64][]hashCandidate, len(original))
	)
	for _, t := range original {
		pos := trianglePositions(t, originalPoints)
		k := h.key(pos)
		candidates[k] = append(candidates[k], hashCandidate{pos: pos, tri: t})
	}
	for i, f := range faces {
		pos := trianglePositions(f, points)
		var (
			match types.Triangle
			found bool
		)
		for _, c := range candidates[h.key(pos)] {
			if samePositions(pos, c.pos) {
				match, found = c.tri, true
			}
		}
		if found {
			faces[i] = match
			restored++
		}
	}
	return
}
