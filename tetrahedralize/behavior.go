package tetrahedralize

import (
	"fmt"
	"strings"
)

// Behavior is the parameter block handed to an Engine. The field set follows the
// switches of a constrained Delaunay tetrahedralizer; an Engine ignores what it cannot honor.
type Behavior struct {
	ZeroIndex    bool // Indices in the input and output start at zero
	PLC          bool // Input is a piecewise linear complex (points plus boundary facets)
	Quality      bool // Refine the mesh to meet MinRatio and MinDihedral
	FacesOut     bool // Output the triangle faces and the tetrahedron to face list
	EdgesOut     bool // Output the mesh edges
	NeighborsOut bool // Output the tetrahedron neighbors

	// Boundary preservation: Steiner points go to the interior only
	NoBisect bool

	// Duplicate handling: keep coincident points and facets instead of merging them away
	NoMergeVertex bool
	NoMergeFacet  bool
	NoJettison    bool

	Order       int     // Element order, 1 for linear tetrahedra
	SteinerLeft int     // Number of Steiner points that may be added, negative for unlimited
	MinRatio    float64 // Radius edge ratio bound
	MinDihedral float64 // Minimum dihedral angle bound in degrees
	FixedVolume bool    // Apply MaxVolume to every tetrahedron
	MaxVolume   float64 // Maximum tetrahedron volume, zero disables the cap
}

// DefaultBehavior returns the parameter block used for soft-body model generation
func DefaultBehavior() *Behavior {
	return &Behavior{
		ZeroIndex:     true,
		PLC:           true,
		Quality:       true,
		FacesOut:      true,
		EdgesOut:      true,
		NeighborsOut:  true,
		NoBisect:      true,
		NoMergeVertex: true,
		NoMergeFacet:  true,
		NoJettison:    true,
		Order:         1,
		SteinerLeft:   4,
		MinRatio:      1.5,
		MinDihedral:   10.,
	}
}

// SetMaxVolume enables the volume cap for positive values and disables it otherwise
func (b *Behavior) SetMaxVolume(v float64) {
	if v > 0 {
		b.FixedVolume = true
		b.MaxVolume = v
		return
	}
	b.FixedVolume = false
	b.MaxVolume = 0
}

// VolumeCapped is true when a maximum tetrahedron volume applies
func (b *Behavior) VolumeCapped() bool {
	return b.FixedVolume && b.MaxVolume > 0
}

// String renders the block as a compact command line style switch string, e.g. "pzq1.5/10a7500fennYMJS4"
func (b *Behavior) String() string {
	var sb strings.Builder
	if b.PLC {
		sb.WriteString("p")
	}
	if b.ZeroIndex {
		sb.WriteString("z")
	}
	if b.Quality {
		fmt.Fprintf(&sb, "q%g/%g", b.MinRatio, b.MinDihedral)
	}
	if b.VolumeCapped() {
		fmt.Fprintf(&sb, "a%g", b.MaxVolume)
	}
	if b.FacesOut {
		sb.WriteString("f")
	}
	if b.EdgesOut {
		sb.WriteString("e")
	}
	if b.NeighborsOut {
		sb.WriteString("nn")
	}
	if b.NoBisect {
		sb.WriteString("Y")
	}
	if b.NoMergeVertex || b.NoMergeFacet {
		sb.WriteString("M")
	}
	if b.NoJettison {
		sb.WriteString("J")
	}
	if b.Order == 2 {
		sb.WriteString("o2")
	}
	if b.SteinerLeft >= 0 {
		fmt.Fprintf(&sb, "S%d", b.SteinerLeft)
	}
	return sb.String()
}
