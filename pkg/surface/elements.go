package surface

import "fmt"

// Vertex indexes a mesh vertex.
type Vertex int

// Edge indexes an undirected mesh edge.
type Edge int

// Face indexes a mesh face.
type Face int

// Halfedge indexes a directed face-side. Every face with k sides contributes
// k halfedges; the halfedge of a boundary side has no twin.
type Halfedge int

// Corner indexes a face corner. Corners are in one-to-one correspondence with
// halfedges: corner i sits at the tail vertex of halfedge i, between halfedge i
// and the previous halfedge of the same face.
type Corner int

// Invalid marks a missing element reference, e.g. the twin of a boundary
// halfedge.
const Invalid = -1

func (v Vertex) String() string   { return fmt.Sprintf("v%d", int(v)) }
func (e Edge) String() string     { return fmt.Sprintf("e%d", int(e)) }
func (f Face) String() string     { return fmt.Sprintf("f%d", int(f)) }
func (h Halfedge) String() string { return fmt.Sprintf("he%d", int(h)) }
func (c Corner) String() string   { return fmt.Sprintf("c%d", int(c)) }
