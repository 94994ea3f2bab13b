package tetrahedralize

import (
	"math"

	"github.com/notargets/tetmodel/mesh"
	"github.com/notargets/tetmodel/types"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultTolerance is the size tolerance relative to the bounding box diagonal
const DefaultTolerance = 1e-10

/*
KernelEngine fills a closed boundary with a fan of tetrahedra around a kernel point.

With a Steiner budget the kernel is a new point at the centroid of the boundary vertices, which
meshes any boundary that is star shaped about its centroid. Without a budget the kernel is the
first boundary vertex, facets through it are skipped and the boundary must be convex. When
a volume cap is requested, tetrahedra are split at their centroids while budget remains.

Points sharing a position are retained in the point list, but the topology uses the first point
at each position, so faces and edges reference that point.
Quality bounds are accepted and not enforced.
*/
type KernelEngine struct {
	Tolerance float64 // Relative size tolerance, DefaultTolerance when zero
}

func NewKernelEngine() *KernelEngine {
	return &KernelEngine{Tolerance: DefaultTolerance}
}

type kernelRun struct {
	b       *Behavior
	points  []r3.Vec
	params  [][]float64
	nparams int
	budget  int
	tets    []types.Tetra
}

func (e *KernelEngine) Tetrahedralize(b *Behavior, in *Input) (out *Output, err error) {
	var (
		base = 1
		tol  = e.Tolerance
	)
	if b.ZeroIndex {
		base = 0
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if len(in.Points) < 4 || len(in.Facets) < 4 {
		return nil, Failure{FailInvalidInput}
	}
	if len(in.PointParams) != 0 && len(in.PointParams) != len(in.Points) {
		return nil, Failure{FailInvalidInput}
	}
	tris, err := facetTriangles(in, base)
	if err != nil {
		return nil, err
	}

	run := &kernelRun{
		b:       b,
		points:  append([]r3.Vec(nil), in.Points...),
		nparams: in.NumParams(),
		budget:  b.SteinerLeft,
	}
	run.params = make([][]float64, len(in.Points))
	for i := range run.params {
		run.params[i] = make([]float64, run.nparams)
		if len(in.PointParams) != 0 {
			copy(run.params[i], in.PointParams[i])
		}
	}

	diag := mesh.Diagonal(mesh.BoundingBox(in.Points))
	boundary, err := weldBoundary(in.Points, tris, tol*diag*diag)
	if err != nil {
		return nil, err
	}
	if err = run.fan(boundary, tol*diag*diag*diag); err != nil {
		return nil, err
	}
	if b.VolumeCapped() {
		run.refine()
	}

	out = &Output{
		Points:      run.points,
		PointParams: run.params,
		Tetrahedra:  run.tets,
		Order:       b.Order,
	}
	faces, tetFaces, neighbors, err := buildFaces(run.tets)
	if err != nil {
		return nil, err
	}
	if b.FacesOut {
		out.TriFaces, out.TetFaces = faces, tetFaces
	}
	if b.NeighborsOut {
		out.Neighbors = neighbors
	}
	if b.EdgesOut {
		out.Edges = buildEdges(run.tets)
	}
	if base != 0 {
		out.offset(base)
	}
	return
}

// facetTriangles converts single triangle facets to zero based triangles
func facetTriangles(in *Input, base int) (tris []types.Triangle, err error) {
	tris = make([]types.Triangle, len(in.Facets))
	for i, f := range in.Facets {
		if len(f.Polygons) != 1 || len(f.Holes) != 0 || len(f.Polygons[0].Vertices) != 3 {
			return nil, Failure{FailInvalidInput}
		}
		for j, v := range f.Polygons[0].Vertices {
			v -= base
			if v < 0 || v >= len(in.Points) {
				return nil, Failure{FailInvalidInput}
			}
			tris[i][j] = v
		}
	}
	return
}

// weldBoundary maps facets onto the first point at each position and checks that the
// result is a closed, non degenerate surface
func weldBoundary(points []r3.Vec, tris []types.Triangle, areaTol float64) (boundary []types.Triangle, err error) {
	var (
		first = make(map[r3.Vec]int, len(points))
		weld  = make([]int, len(points))
	)
	for i, p := range points {
		if j, ok := first[p]; ok {
			weld[i] = j
			continue
		}
		first[p] = i
		weld[i] = i
	}
	var (
		edgeUse = make(map[types.EdgeKey]int)
		faceUse = make(map[types.FaceKey]bool)
	)
	boundary = make([]types.Triangle, len(tris))
	for i, t := range tris {
		w := types.Triangle{weld[t[0]], weld[t[1]], weld[t[2]]}
		if w[0] == w[1] || w[1] == w[2] || w[2] == w[0] ||
			mesh.TriangleArea(points[w[0]], points[w[1]], points[w[2]]) <= areaTol {
			return nil, Failure{FailSmallFeature}
		}
		key := w.Key()
		if faceUse[key] {
			return nil, Failure{FailCloseFacets}
		}
		faceUse[key] = true
		for j := 0; j < 3; j++ {
			edgeUse[types.NewEdgeKey([2]int{w[j], w[(j+1)%3]})]++
		}
		boundary[i] = w
	}
	for _, n := range edgeUse {
		if n != 2 {
			return nil, Failure{FailOpenBoundary}
		}
	}
	return
}

// fan connects every boundary facet to the kernel point
func (run *kernelRun) fan(boundary []types.Triangle, volTol float64) error {
	var (
		kernel  int
		steiner = run.budget != 0
	)
	if steiner {
		seen := make(map[int]bool)
		var verts []r3.Vec
		for _, t := range boundary {
			for _, v := range t {
				if !seen[v] {
					seen[v] = true
					verts = append(verts, run.points[v])
				}
			}
		}
		kernel = run.addPoint(mesh.Centroid(verts...))
	} else {
		kernel = boundary[0][0]
	}
	run.tets = make([]types.Tetra, 0, len(boundary))
	for _, t := range boundary {
		if !steiner && (t[0] == kernel || t[1] == kernel || t[2] == kernel) {
			continue
		}
		vol := mesh.SignedVolume(run.points[t[0]], run.points[t[1]], run.points[t[2]], run.points[kernel])
		switch {
		case math.Abs(vol) <= volTol && !steiner:
			return Failure{FailNeedsSteiner}
		case math.Abs(vol) <= volTol, vol > 0:
			// The kernel does not see this facet from inside
			return Failure{FailSelfIntersection}
		}
		// Swapping two facet vertices makes the tetrahedron positively oriented
		run.tets = append(run.tets, types.Tetra{t[0], t[2], t[1], kernel})
	}
	if len(run.tets) == 0 {
		return Failure{FailNeedsSteiner}
	}
	return nil
}

// refine splits tetrahedra above the volume cap at their centroids, one sweep at a time
func (run *kernelRun) refine() {
	for run.budget != 0 {
		var split bool
		n := len(run.tets)
		for i := 0; i < n && run.budget != 0; i++ {
			t := run.tets[i]
			a, b, c, d := run.points[t[0]], run.points[t[1]], run.points[t[2]], run.points[t[3]]
			if mesh.SignedVolume(a, b, c, d) <= run.b.MaxVolume {
				continue
			}
			m := run.addPoint(mesh.Centroid(a, b, c, d))
			run.tets[i] = types.Tetra{m, t[1], t[2], t[3]}
			run.tets = append(run.tets,
				types.Tetra{t[0], m, t[2], t[3]},
				types.Tetra{t[0], t[1], m, t[3]},
				types.Tetra{t[0], t[1], t[2], m},
			)
			split = true
		}
		if !split {
			return
		}
	}
}

func (run *kernelRun) addPoint(p r3.Vec) (idx int) {
	idx = len(run.points)
	run.points = append(run.points, p)
	run.params = append(run.params, make([]float64, run.nparams))
	if run.budget > 0 {
		run.budget--
	}
	return
}

// buildFaces assigns each distinct face an index and records the face and neighbor per local face
func buildFaces(tets []types.Tetra) (faces []types.Triangle, tetFaces, neighbors []types.Tetra, err error) {
	type owner struct{ tet, local int }
	var (
		faceMap = make(map[types.FaceKey]int)
		owners  []owner
	)
	tetFaces = make([]types.Tetra, len(tets))
	neighbors = make([]types.Tetra, len(tets))
	for elemID, tet := range tets {
		neighbors[elemID] = types.Tetra{-1, -1, -1, -1}
		for localFaceID, f := range mesh.TetFaces(tet) {
			key := f.Key()
			if faceID, exists := faceMap[key]; exists {
				// Face already exists - this is an interior face
				o := owners[faceID]
				if neighbors[o.tet][o.local] != -1 {
					// A third tetrahedron on one face
					return nil, nil, nil, Failure{FailSelfIntersection}
				}
				neighbors[elemID][localFaceID] = o.tet
				neighbors[o.tet][o.local] = elemID
				tetFaces[elemID][localFaceID] = faceID
				continue
			}
			faceID := len(faces)
			faces = append(faces, f)
			owners = append(owners, owner{elemID, localFaceID})
			faceMap[key] = faceID
			tetFaces[elemID][localFaceID] = faceID
		}
	}
	return
}

// buildEdges lists the distinct tetrahedron edges in first encounter order
func buildEdges(tets []types.Tetra) (edges []types.Edge) {
	seen := make(map[types.EdgeKey]bool)
	for _, tet := range tets {
		for _, e := range mesh.TetEdges(tet) {
			key := e.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, key.GetVertices(false))
		}
	}
	return
}

// offset shifts vertex and face indices to a one based numbering, neighbors keep -1 on the boundary
func (out *Output) offset(base int) {
	for i := range out.Tetrahedra {
		for j := range out.Tetrahedra[i] {
			out.Tetrahedra[i][j] += base
		}
	}
	for i := range out.TetFaces {
		for j := range out.TetFaces[i] {
			out.TetFaces[i][j] += base
		}
	}
	for i := range out.Neighbors {
		for j := range out.Neighbors[i] {
			if out.Neighbors[i][j] >= 0 {
				out.Neighbors[i][j] += base
			}
		}
	}
	for i := range out.TriFaces {
		out.TriFaces[i] = out.TriFaces[i].Offset(base)
	}
	for i := range out.Edges {
		out.Edges[i][0] += base
		out.Edges[i][1] += base
	}
}
