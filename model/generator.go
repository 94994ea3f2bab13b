// Package model builds tetrahedral soft-body models from closed triangle surfaces.
//
// A Generator hands the surface to a tetrahedralize.Engine and reconciles the result with the
// input: faces are made unique per tetrahedron and matched back to the input triangles, render
// attributes are carried over, duplicate positions are reduced to physics vertices and the
// mesh edges become a bounded neighbor graph.
package model

import (
	"github.com/notargets/tetmodel/logger"
	"github.com/notargets/tetmodel/mesh"
	"github.com/notargets/tetmodel/tetrahedralize"
	"github.com/notargets/tetmodel/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// ModelGeneratorVersion identifies the layout of Model for consumers
const ModelGeneratorVersion uint32 = 0x00000001

// DefaultMaxTetraVolume is the default volume cap of a tetrahedron, in model units cubed
const DefaultMaxTetraVolume = 7500.

// Face matching strategies
const (
	FaceMatchHash  = "hash"
	FaceMatchExact = "exact"
)

// Options are the user adjustable parts of the engine parameter block
type Options struct {
	MaxTetraVolume float64 // Zero disables the cap
	MinRatio       float64
	MinDihedral    float64
	SteinerBudget  int    // Negative for unlimited
	FaceMatch      string // FaceMatchHash or FaceMatchExact
}

func DefaultOptions() Options {
	return Options{
		MaxTetraVolume: DefaultMaxTetraVolume,
		MinRatio:       1.5,
		MinDihedral:    10,
		SteinerBudget:  4,
		FaceMatch:      FaceMatchHash,
	}
}

// Behavior returns the engine parameter block: zero based, boundary preserving, first order,
// duplicates retained, faces, edges and neighbors output
func (o Options) Behavior() *tetrahedralize.Behavior {
	b := tetrahedralize.DefaultBehavior()
	b.MinRatio = o.MinRatio
	b.MinDihedral = o.MinDihedral
	b.SteinerLeft = o.SteinerBudget
	b.SetMaxVolume(o.MaxTetraVolume)
	return b
}

func (o Options) Resolver() IdentityResolver {
	if o.FaceMatch == FaceMatchExact {
		return ExactResolver{}
	}
	return HashResolver{}
}

// Generator builds models, one at a time. Only the last error message outlives a build.
type Generator struct {
	Engine    tetrahedralize.Engine
	Options   Options
	Reporter  Reporter
	Log       *zap.Logger
	lastError string
}

// NewGenerator returns a generator using engine, or a KernelEngine when engine is nil
func NewGenerator(engine tetrahedralize.Engine, opts Options) *Generator {
	if engine == nil {
		engine = tetrahedralize.NewKernelEngine()
	}
	return &Generator{
		Engine:   engine,
		Options:  opts,
		Reporter: NopReporter{},
		Log:      logger.Named("model"),
	}
}

// LastError returns the message of the most recent failed build. It is kept across builds
// with empty input and cleared by a successful build.
func (g *Generator) LastError() string { return g.lastError }

/*
Build tetrahedralizes the closed surface in and assembles the model.

Empty input returns an empty, not valid model without calling the engine. On failure the
returned model is not valid, the error is a *BuildError unless the input itself is malformed,
and LastError holds its message. Unless silent, the build is bracketed by the Reporter.
*/
func (g *Generator) Build(in *mesh.InputMesh, silent bool) (m *Model, err error) {
	m = &Model{Version: ModelGeneratorVersion}
	if in.IsEmpty() {
		return
	}
	if !silent {
		g.Reporter.BeginTask("Building tetrahedral model")
		defer g.Reporter.EndTask()
	}
	if err = in.Validate(); err != nil {
		err = errors.Wrap(err, "invalid input mesh")
		g.fail(err)
		return
	}
	var out *tetrahedralize.Output
	if out, err = g.tetrahedralize(in); err != nil {
		g.fail(err)
		return
	}
	g.assemble(in, out, m)
	g.lastError = ""
	return
}

func (g *Generator) fail(err error) {
	g.Log.Error(err.Error())
	g.lastError = err.Error()
}

// prepareInput converts the surface into engine points, parameter slots and facets
func prepareInput(in *mesh.InputMesh) (ti *tetrahedralize.Input) {
	ti = &tetrahedralize.Input{
		Points:      append([]r3.Vec(nil), in.Vertices...),
		PointParams: make([][]float64, len(in.Vertices)),
		Facets:      make([]tetrahedralize.Facet, in.NumTriangles()),
	}
	for i := range in.Vertices {
		ti.PointParams[i] = encodeParams(in, i)
	}
	for i := range ti.Facets {
		ti.Facets[i] = tetrahedralize.NewTriangleFacet(in.Triangle(i), 1)
	}
	return
}

func (g *Generator) tetrahedralize(in *mesh.InputMesh) (out *tetrahedralize.Output, err error) {
	var (
		ti = prepareInput(in)
		b  = g.Options.Behavior()
	)
	g.Log.Info("Tetrahedralizing mesh",
		zap.Int("vertices", len(ti.Points)),
		zap.Int("triangles", len(ti.Facets)),
		zap.Stringer("behavior", b))

	out, err = g.Engine.Tetrahedralize(b, ti)
	if err != nil {
		var f tetrahedralize.Failure
		if errors.As(err, &f) {
			return nil, NewBuildError(f.Code, err)
		}
		return nil, NewBuildError(tetrahedralize.FailInternal, err)
	}
	if out == nil {
		return nil, NewBuildError(tetrahedralize.FailInternal, errors.New("engine returned no output"))
	}
	g.Log.Info("Output mesh done",
		zap.Int("points", len(out.Points)),
		zap.Int("tetras", len(out.Tetrahedra)),
		zap.Int("triangles", len(out.TriFaces)),
		zap.Int("edges", len(out.Edges)))

	switch {
	case len(out.Points) == 0:
		return nil, NewBuildError(CodeEmptyPoints, nil)
	case len(out.Tetrahedra) == 0:
		return nil, NewBuildError(CodeEmptyTetrahedra, nil)
	case len(out.TriFaces) == 0:
		return nil, NewBuildError(CodeEmptyTriangles, nil)
	case len(out.Edges) == 0:
		return nil, NewBuildError(CodeEmptyEdges, nil)
	case out.Order == 2:
		return nil, NewBuildError(CodeSecondOrderTetra, nil)
	}
	if err = checkOutput(out, len(ti.Points)); err != nil {
		return nil, NewBuildError(tetrahedralize.FailInternal, err)
	}
	return
}

// checkOutput rejects engine output that breaks the Output contract
func checkOutput(out *tetrahedralize.Output, nInput int) error {
	var (
		np = len(out.Points)
		nf = len(out.TriFaces)
	)
	inRange := func(v, n int) bool { return v >= 0 && v < n }
	if np < nInput {
		return errors.Errorf("engine returned %d points for %d input points", np, nInput)
	}
	if len(out.TetFaces) != len(out.Tetrahedra) {
		return errors.Errorf("engine returned %d face quadruples for %d tetrahedra",
			len(out.TetFaces), len(out.Tetrahedra))
	}
	for k := range out.Tetrahedra {
		for j := 0; j < 4; j++ {
			if !inRange(out.Tetrahedra[k][j], np) || !inRange(out.TetFaces[k][j], nf) {
				return errors.Errorf("tetrahedron %d has an index out of range", k)
			}
		}
	}
	for i, f := range out.TriFaces {
		if !inRange(f[0], np) || !inRange(f[1], np) || !inRange(f[2], np) {
			return errors.Errorf("face %d has a vertex out of range", i)
		}
	}
	for i, e := range out.Edges {
		if !inRange(e[0], np) || !inRange(e[1], np) {
			return errors.Errorf("edge %d has a vertex out of range", i)
		}
	}
	return nil
}

// assemble reconciles the engine output with the input surface
func (g *Generator) assemble(in *mesh.InputMesh, out *tetrahedralize.Output, m *Model) {
	fs := MakeFacesUnique(out.TriFaces, out.TetFaces)
	restored := g.Options.Resolver().Restore(fs.Faces, out.Points, in.Triangles(), in.Vertices)
	g.Log.Debug("Faces resolved",
		zap.Int("faces", len(fs.Faces)),
		zap.Int("duplicated", fs.Duplicated),
		zap.Int("restored", restored))

	var (
		surface  = make(map[r3.Vec]bool, len(in.Vertices))
		nSurface int
	)
	for _, p := range in.Vertices {
		surface[p] = true
	}
	m.RenderVertices = append([]r3.Vec(nil), out.Points...)
	m.Attributes = make([]VertexAttributes, len(out.Points))
	for i, p := range out.Points {
		if i < len(out.PointParams) {
			m.Attributes[i] = decodeParams(out.PointParams[i])
		}
		if surface[p] {
			m.Attributes[i].Surface = true
			nSurface++
		}
	}
	m.NumTexCoords = in.NumTexCoords()
	m.SurfaceIndices = fs.Faces
	m.TetrahedronFaceIndices = fs.TetFaces
	m.TetrahedronVertexIndices = append([]types.Tetra(nil), out.Tetrahedra...)

	rd := ReduceCoarseToSparse(m.RenderVertices)
	m.PhysicsVertices, m.CoarseToPhysicsMap, m.Connectivity = rd.Physics, rd.CoarseToPhysics, rd.Connectivity

	g.Log.Info("Input",
		zap.Int("indices", len(in.Indices)),
		zap.Int("vertices", len(in.Vertices)))
	g.Log.Info("Output",
		zap.Int("indices", 3*len(m.SurfaceIndices)),
		zap.Int("surface", nSurface),
		zap.Int("internal", len(m.RenderVertices)-nSurface),
		zap.Int("physics", len(m.PhysicsVertices)))

	for _, e := range out.Edges {
		a, b := m.CoarseToPhysicsMap[e[0]], m.CoarseToPhysicsMap[e[1]]
		if a == b {
			// Both ends share a position
			continue
		}
		g.addEdge(m.Connectivity, a, b)
		g.addEdge(m.Connectivity, b, a)
	}
	g.Log.Info("Maximum neighbors in model", zap.Int("degree", m.Connectivity.MaxDegree))
	if m.Connectivity.Overflows > 0 {
		g.Log.Warn("Neighbors dropped", zap.Int("count", m.Connectivity.Overflows),
			zap.Int("capacity", MaxNeighbors))
	}
	m.Valid = true
}

func (g *Generator) addEdge(c *Connectivity, src, dst int) {
	if err := c.AddNeighbor(src, dst); err != nil {
		g.Log.Info("Neighbor overflow", zap.Int("vertex", src), zap.Int("neighbor", dst))
	}
}
