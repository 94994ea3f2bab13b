// Package tetrahedralize defines the boundary to a volumetric tetrahedral mesh generator.
//
// An Engine takes a point set carrying opaque per-point parameters and a set of boundary
// facets, and returns points, tetrahedra, faces, edges and neighbors. Any engine honoring
// the Output contract can be substituted; KernelEngine is a small reference implementation.
package tetrahedralize

// Engine is a volumetric tetrahedralization operation. It is called once per build,
// blocks until done and is not required to be reentrant.
type Engine interface {
	Tetrahedralize(b *Behavior, in *Input) (*Output, error)
}

// EngineFunc adapts a function to the Engine interface
type EngineFunc func(b *Behavior, in *Input) (*Output, error)

func (f EngineFunc) Tetrahedralize(b *Behavior, in *Input) (*Output, error) {
	return f(b, in)
}
