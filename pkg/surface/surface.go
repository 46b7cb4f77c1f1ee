// Package surface provides an index-based halfedge representation of
// orientable manifold surface meshes. It stores connectivity only; element
// positions and derived quantities live elsewhere and refer back to meshes
// through the stable integer indices defined in elements.go.
package surface

import (
	"errors"
	"fmt"
)

// Sentinel errors for mesh construction.
var (
	// ErrBadFace indicates a face with fewer than three sides, a repeated
	// vertex, or an out-of-range vertex index.
	ErrBadFace = errors.New("surface: bad face")

	// ErrNonManifoldEdge indicates an edge shared by more than two faces.
	ErrNonManifoldEdge = errors.New("surface: non-manifold edge")

	// ErrInconsistentOrientation indicates two faces traverse a shared edge
	// in the same direction, so the mesh is not consistently oriented.
	ErrInconsistentOrientation = errors.New("surface: inconsistent orientation")
)

// Mesh is the halfedge connectivity of an oriented manifold surface,
// possibly with boundary. All arrays are indexed by the element index types
// in elements.go; a boundary halfedge has twin Invalid.
//
// A Mesh is immutable after construction.
type Mesh struct {
	heNext []int // next halfedge around the same face
	hePrev []int // previous halfedge around the same face
	heTwin []int // oppositely oriented halfedge, or Invalid on the boundary
	heTail []int // vertex the halfedge leaves from
	heEdge []int // undirected edge the halfedge lies on
	heFace []int // face the halfedge borders

	vHalf []int // one outgoing halfedge per vertex
	eHalf []int // one halfedge per edge
	fHalf []int // first halfedge per face

	vBoundary []bool // vertex lies on at least one boundary edge

	nBoundaryEdges int
}

// edgeKey identifies a vertex pair during construction; ordered (a < b) for
// undirected lookups, (tail, tip) for directed ones.
type edgeKey struct {
	a, b int
}

// NewMesh builds halfedge connectivity from a face-vertex list. Faces must
// be consistently oriented (all counterclockwise when viewed from outside);
// faces may have any degree >= 3. nVertices is the total vertex count,
// including any vertices no face references.
func NewMesh(nVertices int, faces [][]int) (*Mesh, error) {
	nHalfedges := 0
	for fi, f := range faces {
		if len(f) < 3 {
			return nil, fmt.Errorf("%w: face %d has %d sides", ErrBadFace, fi, len(f))
		}
		seen := make(map[int]bool, len(f))
		for _, v := range f {
			if v < 0 || v >= nVertices {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrBadFace, fi, v, nVertices)
			}
			if seen[v] {
				return nil, fmt.Errorf("%w: face %d repeats vertex %d", ErrBadFace, fi, v)
			}
			seen[v] = true
		}
		nHalfedges += len(f)
	}

	m := &Mesh{
		heNext:    make([]int, nHalfedges),
		hePrev:    make([]int, nHalfedges),
		heTwin:    make([]int, nHalfedges),
		heTail:    make([]int, nHalfedges),
		heEdge:    make([]int, nHalfedges),
		heFace:    make([]int, nHalfedges),
		vHalf:     make([]int, nVertices),
		fHalf:     make([]int, len(faces)),
		vBoundary: make([]bool, nVertices),
	}
	for i := range m.vHalf {
		m.vHalf[i] = Invalid
	}

	// First pass: create halfedges and intra-face links.
	he := 0
	for fi, f := range faces {
		k := len(f)
		m.fHalf[fi] = he
		for s := 0; s < k; s++ {
			m.heTail[he+s] = f[s]
			m.heFace[he+s] = fi
			m.heNext[he+s] = he + (s+1)%k
			m.hePrev[he+s] = he + (s+k-1)%k
			if m.vHalf[f[s]] == Invalid {
				m.vHalf[f[s]] = he + s
			}
		}
		he += k
	}

	// Second pass: pair twins and assign edges. An undirected side may be
	// traversed at most twice (manifold), and the two traversals must run in
	// opposite directions (consistent orientation).
	for h := 0; h < nHalfedges; h++ {
		m.heTwin[h] = Invalid
		m.heEdge[h] = Invalid
	}
	undirected := make(map[edgeKey]int, nHalfedges)
	directed := make(map[edgeKey]int, nHalfedges) // key ordered tail->tip
	for h := 0; h < nHalfedges; h++ {
		tail := m.heTail[h]
		tip := m.heTail[m.heNext[h]]
		uk := edgeKey{tail, tip}
		if tail > tip {
			uk = edgeKey{tip, tail}
		}
		undirected[uk]++
		if undirected[uk] > 2 {
			return nil, fmt.Errorf("%w: side %d-%d borders more than two faces", ErrNonManifoldEdge, uk.a, uk.b)
		}
		if _, dup := directed[edgeKey{tail, tip}]; dup {
			return nil, fmt.Errorf("%w: side %d->%d traversed twice", ErrInconsistentOrientation, tail, tip)
		}
		directed[edgeKey{tail, tip}] = h
	}
	for h := 0; h < nHalfedges; h++ {
		if m.heEdge[h] != Invalid {
			continue
		}
		tail := m.heTail[h]
		tip := m.heTail[m.heNext[h]]
		e := len(m.eHalf)
		m.eHalf = append(m.eHalf, h)
		m.heEdge[h] = e
		if t, ok := directed[edgeKey{tip, tail}]; ok {
			m.heTwin[h] = t
			m.heTwin[t] = h
			m.heEdge[t] = e
		}
	}

	// Mark boundary vertices and count boundary edges.
	for h := 0; h < nHalfedges; h++ {
		if m.heTwin[h] == Invalid {
			m.vBoundary[m.heTail[h]] = true
			m.vBoundary[m.heTail[m.heNext[h]]] = true
			m.nBoundaryEdges++
		}
	}

	// Canonicalize vHalf for boundary vertices: start vertex circulation at
	// the outgoing boundary halfedge, so NextAroundVertex enumerates the
	// full fan before running off the surface.
	for h := 0; h < nHalfedges; h++ {
		if m.heTwin[h] == Invalid {
			m.vHalf[m.heTail[h]] = h
		}
	}

	return m, nil
}

// NewTriangleMesh builds connectivity from a list of triangles.
func NewTriangleMesh(nVertices int, tris [][3]int) (*Mesh, error) {
	faces := make([][]int, len(tris))
	for i, t := range tris {
		faces[i] = []int{t[0], t[1], t[2]}
	}
	return NewMesh(nVertices, faces)
}

// NVertices returns the number of vertices.
func (m *Mesh) NVertices() int { return len(m.vHalf) }

// NEdges returns the number of undirected edges.
func (m *Mesh) NEdges() int { return len(m.eHalf) }

// NFaces returns the number of faces.
func (m *Mesh) NFaces() int { return len(m.fHalf) }

// NHalfedges returns the number of halfedges (face-sides).
func (m *Mesh) NHalfedges() int { return len(m.heNext) }

// NCorners returns the number of face corners. Corners and halfedges are in
// one-to-one correspondence.
func (m *Mesh) NCorners() int { return len(m.heNext) }

// NBoundaryEdges returns the number of edges with exactly one incident face.
func (m *Mesh) NBoundaryEdges() int { return m.nBoundaryEdges }

// EulerCharacteristic returns V - E + F.
func (m *Mesh) EulerCharacteristic() int {
	return m.NVertices() - m.NEdges() + m.NFaces()
}

// Next returns the next halfedge around the same face.
func (m *Mesh) Next(h Halfedge) Halfedge { return Halfedge(m.heNext[h]) }

// Prev returns the previous halfedge around the same face.
func (m *Mesh) Prev(h Halfedge) Halfedge { return Halfedge(m.hePrev[h]) }

// Twin returns the oppositely oriented halfedge, or Invalid if h lies on the
// boundary.
func (m *Mesh) Twin(h Halfedge) Halfedge { return Halfedge(m.heTwin[h]) }

// HasTwin reports whether h has an oppositely oriented partner.
func (m *Mesh) HasTwin(h Halfedge) bool { return m.heTwin[h] != Invalid }

// Tail returns the vertex h leaves from.
func (m *Mesh) Tail(h Halfedge) Vertex { return Vertex(m.heTail[h]) }

// Tip returns the vertex h arrives at.
func (m *Mesh) Tip(h Halfedge) Vertex { return Vertex(m.heTail[m.heNext[h]]) }

// EdgeOf returns the undirected edge h lies on.
func (m *Mesh) EdgeOf(h Halfedge) Edge { return Edge(m.heEdge[h]) }

// FaceOf returns the face h borders.
func (m *Mesh) FaceOf(h Halfedge) Face { return Face(m.heFace[h]) }

// CornerOf returns the corner associated with h, at the tail vertex of h.
func (m *Mesh) CornerOf(h Halfedge) Corner { return Corner(h) }

// CornerHalfedge returns the halfedge associated with corner c.
func (m *Mesh) CornerHalfedge(c Corner) Halfedge { return Halfedge(c) }

// CornerVertex returns the vertex corner c sits at.
func (m *Mesh) CornerVertex(c Corner) Vertex { return Vertex(m.heTail[c]) }

// CornerFace returns the face corner c belongs to.
func (m *Mesh) CornerFace(c Corner) Face { return Face(m.heFace[c]) }

// VertexHalfedge returns an outgoing halfedge of v. For boundary vertices it
// is the start of the fan: circulating with NextAroundVertex visits every
// outgoing halfedge before running off the boundary.
func (m *Mesh) VertexHalfedge(v Vertex) Halfedge { return Halfedge(m.vHalf[v]) }

// EdgeHalfedge returns one of the (at most two) halfedges of e.
func (m *Mesh) EdgeHalfedge(e Edge) Halfedge { return Halfedge(m.eHalf[e]) }

// FaceHalfedge returns the first halfedge of f.
func (m *Mesh) FaceHalfedge(f Face) Halfedge { return Halfedge(m.fHalf[f]) }

// EdgeVertices returns the two endpoint vertices of e.
func (m *Mesh) EdgeVertices(e Edge) (Vertex, Vertex) {
	h := Halfedge(m.eHalf[e])
	return m.Tail(h), m.Tip(h)
}

// IsBoundaryEdge reports whether e has exactly one incident face.
func (m *Mesh) IsBoundaryEdge(e Edge) bool {
	return m.heTwin[m.eHalf[e]] == Invalid
}

// IsBoundaryVertex reports whether v lies on at least one boundary edge.
func (m *Mesh) IsBoundaryVertex(v Vertex) bool { return m.vBoundary[v] }

// IsBoundaryHalfedge reports whether h lies on a boundary edge.
func (m *Mesh) IsBoundaryHalfedge(h Halfedge) bool { return m.heTwin[h] == Invalid }

// NextAroundVertex returns the next outgoing halfedge of Tail(h) in
// circulation order, or Invalid at the boundary.
func (m *Mesh) NextAroundVertex(h Halfedge) Halfedge {
	p := m.hePrev[h]
	t := m.heTwin[p]
	return Halfedge(t) // Invalid when prev is a boundary side
}

// FaceDegree returns the number of sides of f.
func (m *Mesh) FaceDegree(f Face) int {
	n := 0
	h := m.fHalf[f]
	for {
		n++
		h = m.heNext[h]
		if h == m.fHalf[f] {
			return n
		}
	}
}

// FaceVertices returns the vertices of f in traversal order.
func (m *Mesh) FaceVertices(f Face) []Vertex {
	var vs []Vertex
	h := m.fHalf[f]
	for {
		vs = append(vs, Vertex(m.heTail[h]))
		h = m.heNext[h]
		if h == m.fHalf[f] {
			return vs
		}
	}
}

// FaceHalfedges returns the halfedges of f in traversal order.
func (m *Mesh) FaceHalfedges(f Face) []Halfedge {
	var hs []Halfedge
	h := m.fHalf[f]
	for {
		hs = append(hs, Halfedge(h))
		h = m.heNext[h]
		if h == m.fHalf[f] {
			return hs
		}
	}
}

// VertexDegree returns the number of edges incident on v.
func (m *Mesh) VertexDegree(v Vertex) int {
	n := 0
	start := Halfedge(m.vHalf[v])
	if start == Invalid {
		return 0
	}
	h := start
	for {
		n++
		h = m.NextAroundVertex(h)
		if h == Invalid {
			// The fan ended at the boundary; the closing boundary edge is
			// incident too.
			return n + 1
		}
		if h == start {
			return n
		}
	}
}
