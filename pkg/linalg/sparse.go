// Package linalg provides the minimal sparse real matrix used by the
// discrete-exterior-calculus operators: coordinate-form assembly and
// compressed-row products. It is not a general linear-algebra library.
package linalg

import (
	"fmt"
	"sort"
)

// Triplet is one (row, col, value) entry during assembly. Duplicate
// coordinates are summed, matching the usual finite-element convention.
type Triplet struct {
	Row, Col int
	Val      float64
}

// Sparse is an immutable sparse matrix in compressed-row form.
type Sparse struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	vals       []float64
}

// NewSparse assembles a rows x cols matrix from triplets. Entries with the
// same coordinates are summed; explicit zeros are kept.
func NewSparse(rows, cols int, entries []Triplet) (*Sparse, error) {
	for _, t := range entries {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, fmt.Errorf("linalg: entry (%d,%d) outside %dx%d matrix", t.Row, t.Col, rows, cols)
		}
	}

	sorted := make([]Triplet, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	s := &Sparse{
		rows:   rows,
		cols:   cols,
		rowPtr: make([]int, rows+1),
	}
	for i := 0; i < len(sorted); {
		j := i
		v := 0.0
		for j < len(sorted) && sorted[j].Row == sorted[i].Row && sorted[j].Col == sorted[i].Col {
			v += sorted[j].Val
			j++
		}
		s.colIdx = append(s.colIdx, sorted[i].Col)
		s.vals = append(s.vals, v)
		s.rowPtr[sorted[i].Row+1]++
		i = j
	}
	for r := 0; r < rows; r++ {
		s.rowPtr[r+1] += s.rowPtr[r]
	}
	return s, nil
}

// Diagonal builds a square matrix with d on the diagonal.
func Diagonal(d []float64) *Sparse {
	entries := make([]Triplet, len(d))
	for i, v := range d {
		entries[i] = Triplet{Row: i, Col: i, Val: v}
	}
	s, _ := NewSparse(len(d), len(d), entries) // indices are in range by construction
	return s
}

// Rows returns the row count.
func (s *Sparse) Rows() int { return s.rows }

// Cols returns the column count.
func (s *Sparse) Cols() int { return s.cols }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.vals) }

// At returns the entry at (r, c), zero if not stored.
func (s *Sparse) At(r, c int) float64 {
	lo, hi := s.rowPtr[r], s.rowPtr[r+1]
	for i := lo; i < hi; i++ {
		if s.colIdx[i] == c {
			return s.vals[i]
		}
	}
	return 0
}

// MulVec computes s * x.
func (s *Sparse) MulVec(x []float64) ([]float64, error) {
	if len(x) != s.cols {
		return nil, fmt.Errorf("linalg: vector length %d does not match %d columns", len(x), s.cols)
	}
	y := make([]float64, s.rows)
	for r := 0; r < s.rows; r++ {
		sum := 0.0
		for i := s.rowPtr[r]; i < s.rowPtr[r+1]; i++ {
			sum += s.vals[i] * x[s.colIdx[i]]
		}
		y[r] = sum
	}
	return y, nil
}

// Mul computes the product s * o.
func (s *Sparse) Mul(o *Sparse) (*Sparse, error) {
	if s.cols != o.rows {
		return nil, fmt.Errorf("linalg: cannot multiply %dx%d by %dx%d", s.rows, s.cols, o.rows, o.cols)
	}
	var entries []Triplet
	for r := 0; r < s.rows; r++ {
		acc := make(map[int]float64)
		for i := s.rowPtr[r]; i < s.rowPtr[r+1]; i++ {
			k := s.colIdx[i]
			sv := s.vals[i]
			for j := o.rowPtr[k]; j < o.rowPtr[k+1]; j++ {
				acc[o.colIdx[j]] += sv * o.vals[j]
			}
		}
		for c, v := range acc {
			entries = append(entries, Triplet{Row: r, Col: c, Val: v})
		}
	}
	return NewSparse(s.rows, o.cols, entries)
}

// RowSum returns the sum of each row's entries.
func (s *Sparse) RowSum() []float64 {
	out := make([]float64, s.rows)
	for r := 0; r < s.rows; r++ {
		for i := s.rowPtr[r]; i < s.rowPtr[r+1]; i++ {
			out[r] += s.vals[i]
		}
	}
	return out
}
