package model

import (
	"fmt"

	"github.com/notargets/tetmodel/tetrahedralize"
)

// ErrorKind classifies why a build produced no model
type ErrorKind int

const (
	UnclassifiedOperationFailure ErrorKind = iota
	InsufficientResources
	SelfIntersectingInput
	DegenerateInput
	EmptyPointOutput
	EmptyTetrahedronOutput
	EmptyTriangleOutput
	EmptyEdgeOutput
	UnsupportedSecondOrderOutput
)

// Codes of the conditions detected by the builder itself, numbered after the engine failures
const (
	CodeEmptyPoints      = 6
	CodeEmptyTetrahedra  = 7
	CodeEmptyTriangles   = 8
	CodeEmptyEdges       = 9
	CodeSecondOrderTetra = 9000
)

func (k ErrorKind) String() string {
	switch k {
	case InsufficientResources:
		return "InsufficientResources"
	case SelfIntersectingInput:
		return "SelfIntersectingInput"
	case DegenerateInput:
		return "DegenerateInput"
	case EmptyPointOutput:
		return "EmptyPointOutput"
	case EmptyTetrahedronOutput:
		return "EmptyTetrahedronOutput"
	case EmptyTriangleOutput:
		return "EmptyTriangleOutput"
	case EmptyEdgeOutput:
		return "EmptyEdgeOutput"
	case UnsupportedSecondOrderOutput:
		return "UnsupportedSecondOrderOutput"
	default:
		return "UnclassifiedOperationFailure"
	}
}

// KindOf maps a numbered failure code to its kind
func KindOf(code int) ErrorKind {
	switch code {
	case tetrahedralize.FailOutOfMemory:
		return InsufficientResources
	case tetrahedralize.FailSelfIntersection:
		return SelfIntersectingInput
	case tetrahedralize.FailSmallFeature, tetrahedralize.FailCloseFacets:
		return DegenerateInput
	case CodeEmptyPoints:
		return EmptyPointOutput
	case CodeEmptyTetrahedra:
		return EmptyTetrahedronOutput
	case CodeEmptyTriangles:
		return EmptyTriangleOutput
	case CodeEmptyEdges:
		return EmptyEdgeOutput
	case CodeSecondOrderTetra:
		return UnsupportedSecondOrderOutput
	default:
		return UnclassifiedOperationFailure
	}
}

// BuildError is the failure of a model build, Code is the raw failure number
type BuildError struct {
	Kind  ErrorKind
	Code  int
	Cause error // Engine error, if the engine reported one
}

func NewBuildError(code int, cause error) *BuildError {
	return &BuildError{Kind: KindOf(code), Code: code, Cause: cause}
}

func (e *BuildError) Error() string {
	switch e.Kind {
	case InsufficientResources:
		return "Not enough memory available or model excessively large"
	case SelfIntersectingInput:
		return "Input contains self-intersecting triangles"
	case DegenerateInput:
		return "Input contains triangles that are too small"
	case EmptyPointOutput:
		return "Model generator output did not output any points"
	case EmptyTetrahedronOutput:
		return "Model generator output did not output any tetrahedra"
	case EmptyTriangleOutput:
		return "Model generator output did not output any triangles"
	case EmptyEdgeOutput:
		return "Model generator output did not output any edges"
	case UnsupportedSecondOrderOutput:
		return "Second-order tetrahedrons are not supported"
	default:
		return fmt.Sprintf("Input could not be processed (tetgen error %d)", e.Code)
	}
}

func (e *BuildError) Unwrap() error { return e.Cause }
