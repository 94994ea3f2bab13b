package tetrahedralize

import "fmt"

// Numbered failure conditions reported by an Engine
const (
	FailOutOfMemory      = 1  // Out of memory or input too large
	FailInternal         = 2  // Internal inconsistency of the engine
	FailSelfIntersection = 3  // Boundary facets intersect each other
	FailSmallFeature     = 4  // A facet or edge is below the size tolerance
	FailCloseFacets      = 5  // Two facets are coincident or too close
	FailInvalidInput     = 10 // Malformed points, facets or indices
	FailNeedsSteiner     = 11 // Boundary cannot be recovered within the Steiner point budget
	FailOpenBoundary     = 12 // Boundary is not a closed surface
)

var failureNames = map[int]string{
	FailOutOfMemory:      "out of memory",
	FailInternal:         "internal error",
	FailSelfIntersection: "self-intersecting boundary",
	FailSmallFeature:     "input feature too small",
	FailCloseFacets:      "facets too close",
	FailInvalidInput:     "invalid input",
	FailNeedsSteiner:     "boundary needs Steiner points",
	FailOpenBoundary:     "open boundary",
}

// Failure is the numbered error condition returned by an Engine
type Failure struct {
	Code int
}

func (f Failure) Error() string {
	if name, ok := failureNames[f.Code]; ok {
		return fmt.Sprintf("tetrahedralize: failure %d (%s)", f.Code, name)
	}
	return fmt.Sprintf("tetrahedralize: failure %d", f.Code)
}
