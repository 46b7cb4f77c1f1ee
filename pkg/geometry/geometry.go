// Package geometry computes geometric quantities over surface meshes:
// lengths, areas, angles, curvatures, cotangent weights, tangent-space
// transport, and discrete-exterior-calculus operators.
//
// Quantities are lazily computed and cached through a per-instance
// quantity.Registry. Callers express interest with the RequireX methods,
// read through the matching accessors, and release with UnrequireX; see
// package quantity for the caching contract.
//
// Two capability tiers exist. An intrinsic geometry is built from a mesh
// plus edge lengths and supports every quantity derivable from lengths
// alone. An embedded geometry is built from a mesh plus vertex positions;
// it derives edge lengths from the embedding and additionally supports
// extrinsic quantities (normals). Requiring an extrinsic quantity on an
// intrinsic geometry fails with quantity.ErrUnknownQuantity.
package geometry

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geodesic/pkg/linalg"
	"github.com/chazu/geodesic/pkg/quantity"
	"github.com/chazu/geodesic/pkg/surface"
)

// Sentinel errors for geometry construction and computation.
var (
	// ErrNonTriangular indicates a quantity that is only defined on
	// triangulated meshes was computed on a mesh with a non-triangle face.
	ErrNonTriangular = errors.New("geometry: face is not a triangle")

	// ErrBadInput indicates constructor input whose size does not match the
	// mesh.
	ErrBadInput = errors.New("geometry: input does not match mesh")
)

// Tier is the capability tier of a geometry instance.
type Tier int

const (
	// TierIntrinsic supports quantities derivable from edge lengths alone.
	TierIntrinsic Tier = iota
	// TierEmbedded additionally supports quantities needing vertex
	// positions.
	TierEmbedded
)

func (t Tier) String() string {
	switch t {
	case TierIntrinsic:
		return "intrinsic"
	case TierEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// Geometry owns the cached quantity storage for one mesh. The registry
// decides when each field below holds valid data; read them only through
// the accessors, which enforce that.
type Geometry struct {
	mesh *surface.Mesh
	tier Tier
	reg  *quantity.Registry

	// Inputs. Exactly one of the two is set, per tier.
	inputEdgeLengths []float64
	positions        []v3.Vec

	// Cached quantity storage, managed by the registry.
	edgeLengths              []float64
	faceAreas                []float64
	cornerAngles             []float64
	vertexAngleSums          []float64
	vertexGaussianCurvatures []float64
	halfedgeCotanWeights     []float64
	edgeCotanWeights         []float64
	vertexDualAreas          []float64
	totalArea                float64
	meanEdgeLength           float64
	halfedgeVectorsInFace    []complex128
	halfedgeVectorsInVertex  []complex128
	transportVectors         []complex128
	d0                       *linalg.Sparse
	d1                       *linalg.Sparse
	hodge0                   []float64
	hodge1                   []float64
	hodge2                   []float64
	cotanLaplacian           *linalg.Sparse
	faceNormals              []v3.Vec
	vertexNormals            []v3.Vec
}

// NewIntrinsic creates an intrinsic-tier geometry from a mesh and one length
// per edge. The lengths slice is copied.
func NewIntrinsic(m *surface.Mesh, edgeLengths []float64) (*Geometry, error) {
	if len(edgeLengths) != m.NEdges() {
		return nil, fmt.Errorf("%w: %d edge lengths for %d edges", ErrBadInput, len(edgeLengths), m.NEdges())
	}
	g := &Geometry{
		mesh:             m,
		tier:             TierIntrinsic,
		reg:              quantity.NewRegistry(),
		inputEdgeLengths: append([]float64(nil), edgeLengths...),
	}
	g.registerIntrinsic()
	return g, nil
}

// NewEmbedded creates an embedded-tier geometry from a mesh and one position
// per vertex. The positions slice is copied.
func NewEmbedded(m *surface.Mesh, positions []v3.Vec) (*Geometry, error) {
	if len(positions) != m.NVertices() {
		return nil, fmt.Errorf("%w: %d positions for %d vertices", ErrBadInput, len(positions), m.NVertices())
	}
	g := &Geometry{
		mesh:      m,
		tier:      TierEmbedded,
		reg:       quantity.NewRegistry(),
		positions: append([]v3.Vec(nil), positions...),
	}
	g.registerIntrinsic()
	g.registerExtrinsic()
	return g, nil
}

// Mesh returns the connectivity this geometry is defined over.
func (g *Geometry) Mesh() *surface.Mesh { return g.mesh }

// Tier returns the capability tier.
func (g *Geometry) Tier() Tier { return g.tier }

// Registry exposes the underlying quantity registry for generic access and
// diagnostics.
func (g *Geometry) Registry() *quantity.Registry { return g.reg }

// VertexPositions returns the embedding, or nil for intrinsic geometries.
// The returned slice is the live input array; treat it as read-only.
func (g *Geometry) VertexPositions() []v3.Vec { return g.positions }

// SetVertexPositions replaces the embedding and invalidates every cached
// quantity; hold counts are preserved, so still-required quantities
// recompute lazily against the new positions.
func (g *Geometry) SetVertexPositions(positions []v3.Vec) error {
	if g.tier != TierEmbedded {
		return fmt.Errorf("%w: intrinsic geometry has no embedding", ErrBadInput)
	}
	if len(positions) != g.mesh.NVertices() {
		return fmt.Errorf("%w: %d positions for %d vertices", ErrBadInput, len(positions), g.mesh.NVertices())
	}
	g.positions = append(g.positions[:0:0], positions...)
	g.reg.InvalidateAll()
	return nil
}

// SetEdgeLengths replaces the intrinsic metric and invalidates every cached
// quantity, preserving hold counts.
func (g *Geometry) SetEdgeLengths(edgeLengths []float64) error {
	if g.tier != TierIntrinsic {
		return fmt.Errorf("%w: embedded geometry derives its edge lengths", ErrBadInput)
	}
	if len(edgeLengths) != g.mesh.NEdges() {
		return fmt.Errorf("%w: %d edge lengths for %d edges", ErrBadInput, len(edgeLengths), g.mesh.NEdges())
	}
	g.inputEdgeLengths = append(g.inputEdgeLengths[:0:0], edgeLengths...)
	g.reg.InvalidateAll()
	return nil
}

// Invalidate clears every cached quantity without touching hold counts.
// External code must call this (or the Set* methods, which do) whenever the
// data a compute callback reads changes underneath the registry.
func (g *Geometry) Invalidate() { g.reg.InvalidateAll() }

// registerIntrinsic declares the quantities available at every tier. The
// table below is the single source of dependency structure; the compute
// methods live in intrinsic.go, tangent.go and dec.go.
func (g *Geometry) registerIntrinsic() {
	computeEdgeLengths := g.computeEdgeLengthsFromInput
	if g.tier == TierEmbedded {
		computeEdgeLengths = g.computeEdgeLengthsFromPositions
	}

	specs := []quantity.Spec{
		{
			Name:    QEdgeLengths,
			Domain:  quantity.DomainEdge,
			Compute: computeEdgeLengths,
			Clear:   func() { g.edgeLengths = nil },
			View:    func() any { return g.edgeLengths },
		},
		{
			Name:         QFaceAreas,
			Domain:       quantity.DomainFace,
			Dependencies: []string{QEdgeLengths},
			Compute:      g.computeFaceAreas,
			Clear:        func() { g.faceAreas = nil },
			View:         func() any { return g.faceAreas },
		},
		{
			Name:         QCornerAngles,
			Domain:       quantity.DomainCorner,
			Dependencies: []string{QEdgeLengths},
			Compute:      g.computeCornerAngles,
			Clear:        func() { g.cornerAngles = nil },
			View:         func() any { return g.cornerAngles },
		},
		{
			Name:         QVertexAngleSums,
			Domain:       quantity.DomainVertex,
			Dependencies: []string{QCornerAngles},
			Compute:      g.computeVertexAngleSums,
			Clear:        func() { g.vertexAngleSums = nil },
			View:         func() any { return g.vertexAngleSums },
		},
		{
			Name:         QVertexGaussianCurvatures,
			Domain:       quantity.DomainVertex,
			Dependencies: []string{QVertexAngleSums},
			Compute:      g.computeVertexGaussianCurvatures,
			Clear:        func() { g.vertexGaussianCurvatures = nil },
			View:         func() any { return g.vertexGaussianCurvatures },
		},
		{
			Name:         QHalfedgeCotanWeights,
			Domain:       quantity.DomainHalfedge,
			Dependencies: []string{QEdgeLengths, QFaceAreas},
			Compute:      g.computeHalfedgeCotanWeights,
			Clear:        func() { g.halfedgeCotanWeights = nil },
			View:         func() any { return g.halfedgeCotanWeights },
		},
		{
			Name:         QEdgeCotanWeights,
			Domain:       quantity.DomainEdge,
			Dependencies: []string{QHalfedgeCotanWeights},
			Compute:      g.computeEdgeCotanWeights,
			Clear:        func() { g.edgeCotanWeights = nil },
			View:         func() any { return g.edgeCotanWeights },
		},
		{
			Name:         QVertexDualAreas,
			Domain:       quantity.DomainVertex,
			Dependencies: []string{QFaceAreas},
			Compute:      g.computeVertexDualAreas,
			Clear:        func() { g.vertexDualAreas = nil },
			View:         func() any { return g.vertexDualAreas },
		},
		{
			Name:         QTotalArea,
			Domain:       quantity.DomainGlobalScalar,
			Dependencies: []string{QFaceAreas},
			Compute:      g.computeTotalArea,
			Clear:        func() { g.totalArea = 0 },
			View:         func() any { return g.totalArea },
		},
		{
			Name:         QMeanEdgeLength,
			Domain:       quantity.DomainGlobalScalar,
			Dependencies: []string{QEdgeLengths},
			Compute:      g.computeMeanEdgeLength,
			Clear:        func() { g.meanEdgeLength = 0 },
			View:         func() any { return g.meanEdgeLength },
		},
		{
			Name:         QHalfedgeVectorsInFace,
			Domain:       quantity.DomainHalfedge,
			Dependencies: []string{QEdgeLengths, QCornerAngles},
			Compute:      g.computeHalfedgeVectorsInFace,
			Clear:        func() { g.halfedgeVectorsInFace = nil },
			View:         func() any { return g.halfedgeVectorsInFace },
		},
		{
			Name:         QHalfedgeVectorsInVertex,
			Domain:       quantity.DomainHalfedge,
			Dependencies: []string{QEdgeLengths, QCornerAngles, QVertexAngleSums},
			Compute:      g.computeHalfedgeVectorsInVertex,
			Clear:        func() { g.halfedgeVectorsInVertex = nil },
			View:         func() any { return g.halfedgeVectorsInVertex },
		},
		{
			Name:         QTransportVectorsAlongHalfedge,
			Domain:       quantity.DomainHalfedge,
			Dependencies: []string{QHalfedgeVectorsInVertex},
			Compute:      g.computeTransportVectors,
			Clear:        func() { g.transportVectors = nil },
			View:         func() any { return g.transportVectors },
		},
		{
			Name:    QD0,
			Domain:  quantity.DomainGlobalMatrix,
			Compute: g.computeD0,
			Clear:   func() { g.d0 = nil },
			View:    func() any { return g.d0 },
		},
		{
			Name:    QD1,
			Domain:  quantity.DomainGlobalMatrix,
			Compute: g.computeD1,
			Clear:   func() { g.d1 = nil },
			View:    func() any { return g.d1 },
		},
		{
			Name:         QHodge0,
			Domain:       quantity.DomainVertex,
			Dependencies: []string{QVertexDualAreas},
			Compute:      g.computeHodge0,
			Clear:        func() { g.hodge0 = nil },
			View:         func() any { return g.hodge0 },
		},
		{
			Name:         QHodge1,
			Domain:       quantity.DomainEdge,
			Dependencies: []string{QEdgeCotanWeights},
			Compute:      g.computeHodge1,
			Clear:        func() { g.hodge1 = nil },
			View:         func() any { return g.hodge1 },
		},
		{
			Name:         QHodge2,
			Domain:       quantity.DomainFace,
			Dependencies: []string{QFaceAreas},
			Compute:      g.computeHodge2,
			Clear:        func() { g.hodge2 = nil },
			View:         func() any { return g.hodge2 },
		},
		{
			Name:         QCotanLaplacian,
			Domain:       quantity.DomainGlobalMatrix,
			Dependencies: []string{QEdgeCotanWeights},
			Compute:      g.computeCotanLaplacian,
			Clear:        func() { g.cotanLaplacian = nil },
			View:         func() any { return g.cotanLaplacian },
		},
	}
	for _, s := range specs {
		g.mustRegister(s)
	}
}

// registerExtrinsic declares the quantities that need vertex positions.
func (g *Geometry) registerExtrinsic() {
	specs := []quantity.Spec{
		{
			Name:    QFaceNormals,
			Domain:  quantity.DomainFace,
			Compute: g.computeFaceNormals,
			Clear:   func() { g.faceNormals = nil },
			View:    func() any { return g.faceNormals },
		},
		{
			Name:         QVertexNormals,
			Domain:       quantity.DomainVertex,
			Dependencies: []string{QFaceNormals, QCornerAngles},
			Compute:      g.computeVertexNormals,
			Clear:        func() { g.vertexNormals = nil },
			View:         func() any { return g.vertexNormals },
		},
	}
	for _, s := range specs {
		g.mustRegister(s)
	}
}

// mustRegister panics on duplicate registration; the tables above are
// static, so a duplicate is a programming error, not a runtime condition.
func (g *Geometry) mustRegister(s quantity.Spec) {
	if err := g.reg.Register(s); err != nil {
		panic(fmt.Sprintf("geometry: %v", err))
	}
}
