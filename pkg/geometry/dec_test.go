package geometry

import (
	"math"
	"testing"
)

func TestExteriorDerivativeChain(t *testing.T) {
	g := regularTetrahedron(t)
	if err := g.RequireD0(); err != nil {
		t.Fatal(err)
	}
	if err := g.RequireD1(); err != nil {
		t.Fatal(err)
	}
	d0, _ := g.D0()
	d1, _ := g.D1()

	m := g.Mesh()
	if d0.Rows() != m.NEdges() || d0.Cols() != m.NVertices() {
		t.Errorf("d0 is %dx%d, want %dx%d", d0.Rows(), d0.Cols(), m.NEdges(), m.NVertices())
	}
	if d1.Rows() != m.NFaces() || d1.Cols() != m.NEdges() {
		t.Errorf("d1 is %dx%d, want %dx%d", d1.Rows(), d1.Cols(), m.NFaces(), m.NEdges())
	}

	// d . d = 0: the boundary of a boundary is empty.
	p, err := d1.Mul(d0)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < p.Rows(); r++ {
		for c := 0; c < p.Cols(); c++ {
			if math.Abs(p.At(r, c)) > eps {
				t.Errorf("(d1*d0)(%d,%d) = %g, want 0", r, c, p.At(r, c))
			}
		}
	}
}

func TestHodgeStars(t *testing.T) {
	g := regularTetrahedron(t)
	for _, req := range []func() error{g.RequireHodge0, g.RequireHodge1, g.RequireHodge2} {
		if err := req(); err != nil {
			t.Fatal(err)
		}
	}

	h0, _ := g.Hodge0()
	for _, a := range h0 {
		// Dual area: three incident faces, a third of each.
		approx(t, "hodge0", a, math.Sqrt(3)/2, eps)
	}
	h1, _ := g.Hodge1()
	for _, w := range h1 {
		approx(t, "hodge1", w, 1/math.Sqrt(3), eps)
	}
	h2, _ := g.Hodge2()
	for _, w := range h2 {
		approx(t, "hodge2", w, 2/math.Sqrt(3), eps)
	}
}

func TestCotanLaplacian(t *testing.T) {
	g := regularTetrahedron(t)
	if err := g.RequireCotanLaplacian(); err != nil {
		t.Fatal(err)
	}
	l, _ := g.CotanLaplacian()

	// Zero row sums: the Laplacian annihilates constants.
	for r, s := range l.RowSum() {
		if math.Abs(s) > eps {
			t.Errorf("row %d sums to %g, want 0", r, s)
		}
	}
	ones := make([]float64, l.Cols())
	for i := range ones {
		ones[i] = 1
	}
	y, err := l.MulVec(ones)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range y {
		if math.Abs(v) > eps {
			t.Errorf("L*1 [%d] = %g, want 0", i, v)
		}
	}

	// Diagonal dominance with positive weights.
	for r := 0; r < l.Rows(); r++ {
		if l.At(r, r) <= 0 {
			t.Errorf("diagonal (%d,%d) = %g, want > 0", r, r, l.At(r, r))
		}
	}
}
