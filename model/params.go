package model

import (
	"github.com/notargets/tetmodel/mesh"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Layout of the per point parameter slots handed through the engine:
// two slots per texture coordinate channel, then the tangent X and Z axes
const (
	paramTangentX = 2 * mesh.MaxTexCoords
	paramTangentZ = paramTangentX + 3
	ParamSlots    = paramTangentZ + 3
)

// encodeParams packs the render attributes of input vertex i
func encodeParams(in *mesh.InputMesh, i int) (p []float64) {
	p = make([]float64, ParamSlots)
	for t, uv := range in.TexCoords {
		if len(uv) != 0 {
			p[2*t], p[2*t+1] = uv[i].X, uv[i].Y
		}
	}
	if in.HasTangents() {
		tx, tz := in.Tangents[i].X, in.Tangents[i].Z
		copy(p[paramTangentX:], []float64{tx.X, tx.Y, tx.Z})
		copy(p[paramTangentZ:], []float64{tz.X, tz.Y, tz.Z})
	}
	return
}

// decodeParams unpacks render attributes, short slot lists leave the attributes zero
func decodeParams(p []float64) (a VertexAttributes) {
	if len(p) < ParamSlots {
		return
	}
	for t := range a.TexCoords {
		a.TexCoords[t] = r2.Vec{X: p[2*t], Y: p[2*t+1]}
	}
	a.Tangent = mesh.Tangent{
		X: r3.Vec{X: p[paramTangentX], Y: p[paramTangentX+1], Z: p[paramTangentX+2]},
		Z: r3.Vec{X: p[paramTangentZ], Y: p[paramTangentZ+1], Z: p[paramTangentZ+2]},
	}
	return
}
