package model

import (
	"github.com/notargets/tetmodel/types"
	"gonum.org/v1/gonum/spatial/r3"
)

// FaceSet is a face list in which every tetrahedron corner references its own face
type FaceSet struct {
	Faces      []types.Triangle
	TetFaces   []types.Tetra
	Duplicated int // Number of faces appended beyond the input face list
}

/*
MakeFacesUnique gives every (tetrahedron, local face) pair its own entry in the face list.

A use counter is kept per face. When a tetrahedron references a face whose counter is already
positive, the face is copied to the end of the list and the copy is referenced instead. Copies
are appended in tetrahedron order. The inputs are not modified.
*/
func MakeFacesUnique(faces []types.Triangle, tetFaces []types.Tetra) (fs FaceSet) {
	var (
		used = make([]int, len(faces), len(faces)+len(tetFaces))
	)
	fs.Faces = make([]types.Triangle, len(faces), len(faces)+len(tetFaces))
	copy(fs.Faces, faces)
	fs.TetFaces = make([]types.Tetra, len(tetFaces))
	for k, tf := range tetFaces {
		for lf, faceID := range tf {
			if used[faceID] > 0 {
				fs.Faces = append(fs.Faces, fs.Faces[faceID])
				used = append(used, 0)
				faceID = len(fs.Faces) - 1
				fs.Duplicated++
			}
			used[faceID]++
			fs.TetFaces[k][lf] = faceID
		}
	}
	return
}

// IdentityResolver restores the vertex indices of regenerated faces from the original triangles
type IdentityResolver interface {
	// Restore replaces, in place, every face whose three positions match an original triangle
	// with that triangle's indices, and returns the number of replaced faces
	Restore(faces []types.Triangle, points []r3.Vec, original []types.Triangle, originalPoints []r3.Vec) (restored int)
}

func trianglePositions(t types.Triangle, pts []r3.Vec) [3]r3.Vec {
	return [3]r3.Vec{pts[t[0]], pts[t[1]], pts[t[2]]}
}

// samePositions compares two position triples regardless of vertex order
func samePositions(a, b [3]r3.Vec) bool {
	var taken [3]bool
	for _, p := range a {
		found := false
		for j, q := range b {
			if !taken[j] && p == q {
				taken[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ExactResolver compares every face with every original triangle
type ExactResolver struct{}

func (ExactResolver) Restore(faces []types.Triangle, points []r3.Vec,
	original []types.Triangle, originalPoints []r3.Vec) (restored int) {
	orig := make([][3]r3.Vec, len(original))
	for j, t := range original {
		orig[j] = trianglePositions(t, originalPoints)
	}
	for i, f := range faces {
		var (
			pos   = trianglePositions(f, points)
			match = -1
		)
		for j := range original {
			if samePositions(pos, orig[j]) {
				// Last match wins, same as the hashed search
				match = j
			}
		}
		if match >= 0 {
			faces[i] = original[match]
			restored++
		}
	}
	return
}
