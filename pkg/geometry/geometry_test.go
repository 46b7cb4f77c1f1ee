package geometry

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/geodesic/pkg/quantity"
	"github.com/chazu/geodesic/pkg/surface"
)

const eps = 1e-12

// regularTetrahedron returns an embedded geometry over a regular
// tetrahedron with all edge lengths sqrt(2): 4 vertices, 6 edges, 4 faces.
func regularTetrahedron(t *testing.T) *Geometry {
	t.Helper()
	m, err := surface.NewTriangleMesh(4, [][3]int{
		{0, 1, 2},
		{0, 3, 1},
		{0, 2, 3},
		{1, 3, 2},
	})
	if err != nil {
		t.Fatalf("NewTriangleMesh: %v", err)
	}
	g, err := NewEmbedded(m, []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 1},
	})
	if err != nil {
		t.Fatalf("NewEmbedded: %v", err)
	}
	return g
}

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %g, want %g", name, got, want)
	}
}

func TestTetrahedronEndToEnd(t *testing.T) {
	// The canonical scenario: face-areas depends on edge-lengths. One
	// require of face-areas computes both, fills 6 edge lengths and 4 face
	// areas, then releases the transient hold on edge-lengths.
	g := regularTetrahedron(t)

	if err := g.RequireFaceAreas(); err != nil {
		t.Fatalf("RequireFaceAreas: %v", err)
	}

	areas, err := g.FaceAreas()
	if err != nil {
		t.Fatalf("FaceAreas: %v", err)
	}
	if len(areas) != 4 {
		t.Fatalf("len(areas) = %d, want 4", len(areas))
	}
	want := math.Sqrt(3) / 2 // equilateral triangle with side sqrt(2)
	for f, a := range areas {
		if a < 0 {
			t.Errorf("area[%d] = %g, negative", f, a)
		}
		approx(t, "area", a, want, eps)
	}

	// The transient dependency was released: edge-lengths is no longer
	// cached and reading it is a contract violation.
	if _, err := g.EdgeLengths(); !errors.Is(err, quantity.ErrNotRequired) {
		t.Errorf("EdgeLengths after transitive compute = %v, want ErrNotRequired", err)
	}
	if got := g.Registry().RequireCount(QEdgeLengths); got != 0 {
		t.Errorf("RequireCount(edge-lengths) = %d, want 0", got)
	}

	if err := g.UnrequireFaceAreas(); err != nil {
		t.Fatalf("UnrequireFaceAreas: %v", err)
	}
	if _, err := g.FaceAreas(); !errors.Is(err, quantity.ErrNotRequired) {
		t.Errorf("FaceAreas after unrequire = %v, want ErrNotRequired", err)
	}
}

func TestEdgeLengths(t *testing.T) {
	g := regularTetrahedron(t)
	if err := g.RequireEdgeLengths(); err != nil {
		t.Fatal(err)
	}
	ls, err := g.EdgeLengths()
	if err != nil {
		t.Fatal(err)
	}
	if len(ls) != 6 {
		t.Fatalf("len = %d, want 6", len(ls))
	}
	for e, l := range ls {
		if math.Abs(l-math.Sqrt2) > eps {
			t.Errorf("length[%d] = %g, want sqrt(2)", e, l)
		}
	}
}

func TestAnglesAndCurvature(t *testing.T) {
	g := regularTetrahedron(t)

	if err := g.RequireCornerAngles(); err != nil {
		t.Fatal(err)
	}
	angles, _ := g.CornerAngles()
	if len(angles) != 12 {
		t.Fatalf("len(corner angles) = %d, want 12", len(angles))
	}
	for c, a := range angles {
		if math.Abs(a-math.Pi/3) > eps {
			t.Errorf("angle[%d] = %g, want pi/3", c, a)
		}
	}

	if err := g.RequireVertexGaussianCurvatures(); err != nil {
		t.Fatal(err)
	}
	ks, _ := g.VertexGaussianCurvatures()
	total := 0.0
	for _, k := range ks {
		approx(t, "curvature", k, math.Pi, eps)
		total += k
	}
	// Gauss-Bonnet: total curvature is 2*pi*chi.
	approx(t, "total curvature", total, 2*math.Pi*float64(g.Mesh().EulerCharacteristic()), eps)
}

func TestBoundaryCurvature(t *testing.T) {
	// Flat unit square split along a diagonal: every vertex is a boundary
	// vertex, and the angle defects sum to 2*pi*chi with chi = 1.
	m, err := surface.NewTriangleMesh(4, [][3]int{{0, 1, 2}, {0, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewEmbedded(m, []v3.Vec{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.RequireVertexGaussianCurvatures(); err != nil {
		t.Fatal(err)
	}
	ks, _ := g.VertexGaussianCurvatures()
	total := 0.0
	for _, k := range ks {
		approx(t, "boundary defect", k, math.Pi/2, eps)
		total += k
	}
	approx(t, "total boundary curvature", total, 2*math.Pi, eps)
}

func TestCotanWeightsAndDualAreas(t *testing.T) {
	g := regularTetrahedron(t)

	if err := g.RequireEdgeCotanWeights(); err != nil {
		t.Fatal(err)
	}
	ws, _ := g.EdgeCotanWeights()
	for e, w := range ws {
		// Two halfedges, each contributing cot(pi/3)/2.
		if math.Abs(w-1/math.Sqrt(3)) > eps {
			t.Errorf("cotan weight[%d] = %g, want 1/sqrt(3)", e, w)
		}
	}

	if err := g.RequireVertexDualAreas(); err != nil {
		t.Fatal(err)
	}
	if err := g.RequireTotalArea(); err != nil {
		t.Fatal(err)
	}
	duals, _ := g.VertexDualAreas()
	total, _ := g.TotalArea()
	sum := 0.0
	for _, d := range duals {
		sum += d
	}
	approx(t, "dual area sum", sum, total, eps)
	approx(t, "total area", total, 2*math.Sqrt(3), eps)
}

func TestMeanEdgeLength(t *testing.T) {
	g := regularTetrahedron(t)
	if err := g.RequireMeanEdgeLength(); err != nil {
		t.Fatal(err)
	}
	mel, err := g.MeanEdgeLength()
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "mean edge length", mel, math.Sqrt2, eps)
}

func TestNormals(t *testing.T) {
	g := regularTetrahedron(t)
	if err := g.RequireFaceNormals(); err != nil {
		t.Fatal(err)
	}
	if err := g.RequireVertexNormals(); err != nil {
		t.Fatal(err)
	}
	center := v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
	fns, _ := g.FaceNormals()
	for f, n := range fns {
		approx(t, "face normal magnitude", norm(n), 1, eps)
		// Outward: away from the centroid.
		vs := g.Mesh().FaceVertices(surface.Face(f))
		centroid := scale(add(add(g.VertexPositions()[vs[0]], g.VertexPositions()[vs[1]]), g.VertexPositions()[vs[2]]), 1.0/3)
		if dot(n, sub(centroid, center)) <= 0 {
			t.Errorf("face normal %d points inward", f)
		}
	}
	vns, _ := g.VertexNormals()
	for v, n := range vns {
		approx(t, "vertex normal magnitude", norm(n), 1, eps)
		// By symmetry each vertex normal points straight away from the
		// centroid.
		out := normalize(sub(g.VertexPositions()[v], center))
		if dot(n, out) < 0.99 {
			t.Errorf("vertex normal %d not outward along symmetry axis: dot = %g", v, dot(n, out))
		}
	}
}

func TestInvalidateRecomputes(t *testing.T) {
	g := regularTetrahedron(t)
	if err := g.RequireTotalArea(); err != nil {
		t.Fatal(err)
	}
	before, _ := g.TotalArea()

	// Double every coordinate: lengths double, areas quadruple.
	scaled := make([]v3.Vec, len(g.VertexPositions()))
	for i, p := range g.VertexPositions() {
		scaled[i] = scale(p, 2)
	}
	if err := g.SetVertexPositions(scaled); err != nil {
		t.Fatalf("SetVertexPositions: %v", err)
	}

	// Invalidation preserved the hold but dropped the cache.
	if _, err := g.TotalArea(); !errors.Is(err, quantity.ErrNotRequired) {
		t.Errorf("TotalArea after invalidate = %v, want ErrNotRequired", err)
	}
	if got := g.Registry().RequireCount(QTotalArea); got != 1 {
		t.Errorf("RequireCount = %d, want 1", got)
	}

	if err := g.RequireTotalArea(); err != nil {
		t.Fatal(err)
	}
	after, _ := g.TotalArea()
	approx(t, "scaled area", after, 4*before, 1e-10)

	// Balance still closes.
	if err := g.UnrequireTotalArea(); err != nil {
		t.Fatal(err)
	}
	if err := g.UnrequireTotalArea(); err != nil {
		t.Fatal(err)
	}
	if err := g.UnrequireTotalArea(); !errors.Is(err, quantity.ErrRefCountUnderflow) {
		t.Errorf("extra unrequire = %v, want ErrRefCountUnderflow", err)
	}
}

func TestIntrinsicTier(t *testing.T) {
	m, err := surface.NewTriangleMesh(4, [][3]int{
		{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	lengths := make([]float64, m.NEdges())
	for i := range lengths {
		lengths[i] = 1 // regular unit tetrahedron, intrinsically
	}
	g, err := NewIntrinsic(m, lengths)
	if err != nil {
		t.Fatalf("NewIntrinsic: %v", err)
	}

	if err := g.RequireTotalArea(); err != nil {
		t.Fatal(err)
	}
	total, _ := g.TotalArea()
	approx(t, "intrinsic total area", total, math.Sqrt(3), eps)

	// Extrinsic quantities are not registered at this tier.
	if err := g.RequireFaceNormals(); !errors.Is(err, quantity.ErrUnknownQuantity) {
		t.Errorf("RequireFaceNormals on intrinsic tier = %v, want ErrUnknownQuantity", err)
	}
	if err := g.RequireVertexNormals(); !errors.Is(err, quantity.ErrUnknownQuantity) {
		t.Errorf("RequireVertexNormals on intrinsic tier = %v, want ErrUnknownQuantity", err)
	}

	// Replacing the metric invalidates.
	for i := range lengths {
		lengths[i] = 2
	}
	if err := g.SetEdgeLengths(lengths); err != nil {
		t.Fatal(err)
	}
	if err := g.RequireTotalArea(); err != nil {
		t.Fatal(err)
	}
	total, _ = g.TotalArea()
	approx(t, "rescaled intrinsic area", total, 4*math.Sqrt(3), eps)
}

func TestNonTriangularPropagates(t *testing.T) {
	m, err := surface.NewMesh(4, [][]int{{0, 1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewEmbedded(m, []v3.Vec{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	// The compute callback's domain error passes through Require unchanged
	// and leaves the node uncomputed with no outstanding holds.
	if err := g.RequireFaceAreas(); !errors.Is(err, ErrNonTriangular) {
		t.Fatalf("RequireFaceAreas = %v, want ErrNonTriangular", err)
	}
	if g.Registry().Cached(QFaceAreas) {
		t.Error("face-areas cached after failed compute")
	}
	if got := g.Registry().RequireCount(QFaceAreas); got != 0 {
		t.Errorf("RequireCount = %d, want 0", got)
	}
	if got := g.Registry().RequireCount(QEdgeLengths); got != 0 {
		t.Errorf("RequireCount(edge-lengths) = %d, want 0 after unwind", got)
	}

	// Edge lengths themselves are fine on a quad mesh.
	if err := g.RequireEdgeLengths(); err != nil {
		t.Errorf("RequireEdgeLengths on quad mesh: %v", err)
	}
}

func TestConstructorValidation(t *testing.T) {
	m, err := surface.NewTriangleMesh(3, [][3]int{{0, 1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewEmbedded(m, make([]v3.Vec, 2)); !errors.Is(err, ErrBadInput) {
		t.Errorf("NewEmbedded with 2 positions = %v, want ErrBadInput", err)
	}
	if _, err := NewIntrinsic(m, make([]float64, 1)); !errors.Is(err, ErrBadInput) {
		t.Errorf("NewIntrinsic with 1 length = %v, want ErrBadInput", err)
	}
}

func TestGenericAccess(t *testing.T) {
	g := regularTetrahedron(t)
	if err := g.Require(QFaceAreas); err != nil {
		t.Fatal(err)
	}
	v, err := g.Access(QFaceAreas)
	if err != nil {
		t.Fatal(err)
	}
	areas, ok := v.([]float64)
	if !ok || len(areas) != 4 {
		t.Errorf("Access(face-areas) = %T of len %d, want []float64 of 4", v, len(areas))
	}
	if err := g.Unrequire(QFaceAreas); err != nil {
		t.Fatal(err)
	}
}
