package geometry

// Quantity names, as registered with the quantity.Registry. The same names
// are used by the scripting layer and the generic registry API.
const (
	QEdgeLengths                   = "edge-lengths"
	QFaceAreas                     = "face-areas"
	QCornerAngles                  = "corner-angles"
	QVertexAngleSums               = "vertex-angle-sums"
	QVertexGaussianCurvatures      = "vertex-gaussian-curvatures"
	QHalfedgeCotanWeights          = "halfedge-cotan-weights"
	QEdgeCotanWeights              = "edge-cotan-weights"
	QVertexDualAreas               = "vertex-dual-areas"
	QTotalArea                     = "total-area"
	QMeanEdgeLength                = "mean-edge-length"
	QHalfedgeVectorsInFace         = "halfedge-vectors-in-face"
	QHalfedgeVectorsInVertex       = "halfedge-vectors-in-vertex"
	QTransportVectorsAlongHalfedge = "transport-vectors-along-halfedge"
	QD0                            = "d0"
	QD1                            = "d1"
	QHodge0                        = "hodge0"
	QHodge1                        = "hodge1"
	QHodge2                        = "hodge2"
	QCotanLaplacian                = "cotan-laplacian"
	QFaceNormals                   = "face-normals"
	QVertexNormals                 = "vertex-normals"
)
