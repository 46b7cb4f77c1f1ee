package geometry

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geodesic/pkg/linalg"
)

// Require takes a durable hold on a quantity by name, computing it and its
// uncached dependencies if necessary. The typed RequireX methods below are
// thin wrappers over this.
func (g *Geometry) Require(name string) error { return g.reg.Require(name) }

// Unrequire releases one hold taken by Require.
func (g *Geometry) Unrequire(name string) error { return g.reg.Unrequire(name) }

// Access returns a quantity's storage as an untyped view; prefer the typed
// accessors below.
func (g *Geometry) Access(name string) (any, error) { return g.reg.Access(name) }

// floatSlice is the shared body of the []float64 accessors.
func (g *Geometry) floatSlice(name string, s *[]float64) ([]float64, error) {
	if err := g.reg.Check(name); err != nil {
		return nil, err
	}
	return *s, nil
}

func (g *Geometry) complexSlice(name string, s *[]complex128) ([]complex128, error) {
	if err := g.reg.Check(name); err != nil {
		return nil, err
	}
	return *s, nil
}

func (g *Geometry) vecSlice(name string, s *[]v3.Vec) ([]v3.Vec, error) {
	if err := g.reg.Check(name); err != nil {
		return nil, err
	}
	return *s, nil
}

func (g *Geometry) sparse(name string, s **linalg.Sparse) (*linalg.Sparse, error) {
	if err := g.reg.Check(name); err != nil {
		return nil, err
	}
	return *s, nil
}

// RequireEdgeLengths / UnrequireEdgeLengths / EdgeLengths manage the length
// of every edge, indexed by edge.
func (g *Geometry) RequireEdgeLengths() error   { return g.reg.Require(QEdgeLengths) }
func (g *Geometry) UnrequireEdgeLengths() error { return g.reg.Unrequire(QEdgeLengths) }
func (g *Geometry) EdgeLengths() ([]float64, error) {
	return g.floatSlice(QEdgeLengths, &g.edgeLengths)
}

// Face areas by Heron's formula, indexed by face. Triangular meshes only.
func (g *Geometry) RequireFaceAreas() error   { return g.reg.Require(QFaceAreas) }
func (g *Geometry) UnrequireFaceAreas() error { return g.reg.Unrequire(QFaceAreas) }
func (g *Geometry) FaceAreas() ([]float64, error) {
	return g.floatSlice(QFaceAreas, &g.faceAreas)
}

// Interior angles at each face corner, indexed by corner.
func (g *Geometry) RequireCornerAngles() error   { return g.reg.Require(QCornerAngles) }
func (g *Geometry) UnrequireCornerAngles() error { return g.reg.Unrequire(QCornerAngles) }
func (g *Geometry) CornerAngles() ([]float64, error) {
	return g.floatSlice(QCornerAngles, &g.cornerAngles)
}

// Total interior angle around each vertex, indexed by vertex.
func (g *Geometry) RequireVertexAngleSums() error   { return g.reg.Require(QVertexAngleSums) }
func (g *Geometry) UnrequireVertexAngleSums() error { return g.reg.Unrequire(QVertexAngleSums) }
func (g *Geometry) VertexAngleSums() ([]float64, error) {
	return g.floatSlice(QVertexAngleSums, &g.vertexAngleSums)
}

// Discrete Gaussian curvature (angle defect) at each vertex.
func (g *Geometry) RequireVertexGaussianCurvatures() error {
	return g.reg.Require(QVertexGaussianCurvatures)
}
func (g *Geometry) UnrequireVertexGaussianCurvatures() error {
	return g.reg.Unrequire(QVertexGaussianCurvatures)
}
func (g *Geometry) VertexGaussianCurvatures() ([]float64, error) {
	return g.floatSlice(QVertexGaussianCurvatures, &g.vertexGaussianCurvatures)
}

// Half the cotangent of the angle opposite each halfedge.
func (g *Geometry) RequireHalfedgeCotanWeights() error {
	return g.reg.Require(QHalfedgeCotanWeights)
}
func (g *Geometry) UnrequireHalfedgeCotanWeights() error {
	return g.reg.Unrequire(QHalfedgeCotanWeights)
}
func (g *Geometry) HalfedgeCotanWeights() ([]float64, error) {
	return g.floatSlice(QHalfedgeCotanWeights, &g.halfedgeCotanWeights)
}

// The classic (cot a + cot b)/2 weight per edge.
func (g *Geometry) RequireEdgeCotanWeights() error   { return g.reg.Require(QEdgeCotanWeights) }
func (g *Geometry) UnrequireEdgeCotanWeights() error { return g.reg.Unrequire(QEdgeCotanWeights) }
func (g *Geometry) EdgeCotanWeights() ([]float64, error) {
	return g.floatSlice(QEdgeCotanWeights, &g.edgeCotanWeights)
}

// Barycentric dual area per vertex (one third of each incident triangle).
func (g *Geometry) RequireVertexDualAreas() error   { return g.reg.Require(QVertexDualAreas) }
func (g *Geometry) UnrequireVertexDualAreas() error { return g.reg.Unrequire(QVertexDualAreas) }
func (g *Geometry) VertexDualAreas() ([]float64, error) {
	return g.floatSlice(QVertexDualAreas, &g.vertexDualAreas)
}

// Surface area of the whole mesh.
func (g *Geometry) RequireTotalArea() error   { return g.reg.Require(QTotalArea) }
func (g *Geometry) UnrequireTotalArea() error { return g.reg.Unrequire(QTotalArea) }
func (g *Geometry) TotalArea() (float64, error) {
	if err := g.reg.Check(QTotalArea); err != nil {
		return 0, err
	}
	return g.totalArea, nil
}

// Mean edge length of the whole mesh.
func (g *Geometry) RequireMeanEdgeLength() error   { return g.reg.Require(QMeanEdgeLength) }
func (g *Geometry) UnrequireMeanEdgeLength() error { return g.reg.Unrequire(QMeanEdgeLength) }
func (g *Geometry) MeanEdgeLength() (float64, error) {
	if err := g.reg.Check(QMeanEdgeLength); err != nil {
		return 0, err
	}
	return g.meanEdgeLength, nil
}

// Each halfedge as a 2D vector in its face's flat coordinate system.
func (g *Geometry) RequireHalfedgeVectorsInFace() error {
	return g.reg.Require(QHalfedgeVectorsInFace)
}
func (g *Geometry) UnrequireHalfedgeVectorsInFace() error {
	return g.reg.Unrequire(QHalfedgeVectorsInFace)
}
func (g *Geometry) HalfedgeVectorsInFace() ([]complex128, error) {
	return g.complexSlice(QHalfedgeVectorsInFace, &g.halfedgeVectorsInFace)
}

// Each outgoing halfedge as a 2D vector in its tail vertex's flattened
// coordinate system.
func (g *Geometry) RequireHalfedgeVectorsInVertex() error {
	return g.reg.Require(QHalfedgeVectorsInVertex)
}
func (g *Geometry) UnrequireHalfedgeVectorsInVertex() error {
	return g.reg.Unrequire(QHalfedgeVectorsInVertex)
}
func (g *Geometry) HalfedgeVectorsInVertex() ([]complex128, error) {
	return g.complexSlice(QHalfedgeVectorsInVertex, &g.halfedgeVectorsInVertex)
}

// Unit rotors carrying tangent vectors from a halfedge's tail vertex frame
// to its twin's; zero for boundary halfedges, where transport is undefined.
func (g *Geometry) RequireTransportVectorsAlongHalfedge() error {
	return g.reg.Require(QTransportVectorsAlongHalfedge)
}
func (g *Geometry) UnrequireTransportVectorsAlongHalfedge() error {
	return g.reg.Unrequire(QTransportVectorsAlongHalfedge)
}
func (g *Geometry) TransportVectorsAlongHalfedge() ([]complex128, error) {
	return g.complexSlice(QTransportVectorsAlongHalfedge, &g.transportVectors)
}

// Discrete exterior derivative on 0-forms (vertices -> edges).
func (g *Geometry) RequireD0() error   { return g.reg.Require(QD0) }
func (g *Geometry) UnrequireD0() error { return g.reg.Unrequire(QD0) }
func (g *Geometry) D0() (*linalg.Sparse, error) {
	return g.sparse(QD0, &g.d0)
}

// Discrete exterior derivative on 1-forms (edges -> faces).
func (g *Geometry) RequireD1() error   { return g.reg.Require(QD1) }
func (g *Geometry) UnrequireD1() error { return g.reg.Unrequire(QD1) }
func (g *Geometry) D1() (*linalg.Sparse, error) {
	return g.sparse(QD1, &g.d1)
}

// Diagonal Hodge star on 0-forms (vertex dual areas).
func (g *Geometry) RequireHodge0() error   { return g.reg.Require(QHodge0) }
func (g *Geometry) UnrequireHodge0() error { return g.reg.Unrequire(QHodge0) }
func (g *Geometry) Hodge0() ([]float64, error) {
	return g.floatSlice(QHodge0, &g.hodge0)
}

// Diagonal Hodge star on 1-forms (edge cotan weights).
func (g *Geometry) RequireHodge1() error   { return g.reg.Require(QHodge1) }
func (g *Geometry) UnrequireHodge1() error { return g.reg.Unrequire(QHodge1) }
func (g *Geometry) Hodge1() ([]float64, error) {
	return g.floatSlice(QHodge1, &g.hodge1)
}

// Diagonal Hodge star on 2-forms (inverse face areas).
func (g *Geometry) RequireHodge2() error   { return g.reg.Require(QHodge2) }
func (g *Geometry) UnrequireHodge2() error { return g.reg.Unrequire(QHodge2) }
func (g *Geometry) Hodge2() ([]float64, error) {
	return g.floatSlice(QHodge2, &g.hodge2)
}

// Weak cotan Laplacian (positive semi-definite, zero row sums).
func (g *Geometry) RequireCotanLaplacian() error   { return g.reg.Require(QCotanLaplacian) }
func (g *Geometry) UnrequireCotanLaplacian() error { return g.reg.Unrequire(QCotanLaplacian) }
func (g *Geometry) CotanLaplacian() (*linalg.Sparse, error) {
	return g.sparse(QCotanLaplacian, &g.cotanLaplacian)
}

// Unit outward face normals. Embedded tier only.
func (g *Geometry) RequireFaceNormals() error   { return g.reg.Require(QFaceNormals) }
func (g *Geometry) UnrequireFaceNormals() error { return g.reg.Unrequire(QFaceNormals) }
func (g *Geometry) FaceNormals() ([]v3.Vec, error) {
	return g.vecSlice(QFaceNormals, &g.faceNormals)
}

// Angle-weighted unit vertex normals. Embedded tier only.
func (g *Geometry) RequireVertexNormals() error   { return g.reg.Require(QVertexNormals) }
func (g *Geometry) UnrequireVertexNormals() error { return g.reg.Unrequire(QVertexNormals) }
func (g *Geometry) VertexNormals() ([]v3.Vec, error) {
	return g.vecSlice(QVertexNormals, &g.vertexNormals)
}
