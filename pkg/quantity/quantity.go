package quantity

// Domain identifies what a quantity's storage is indexed over: one mesh
// element kind, or a single global value.
type Domain int

const (
	DomainVertex Domain = iota
	DomainEdge
	DomainFace
	DomainHalfedge
	DomainCorner
	DomainGlobalScalar
	DomainGlobalMatrix
)

func (d Domain) String() string {
	switch d {
	case DomainVertex:
		return "vertex"
	case DomainEdge:
		return "edge"
	case DomainFace:
		return "face"
	case DomainHalfedge:
		return "halfedge"
	case DomainCorner:
		return "corner"
	case DomainGlobalScalar:
		return "global-scalar"
	case DomainGlobalMatrix:
		return "global-matrix"
	default:
		return "unknown"
	}
}

// Spec declares one quantity to a Registry. Storage is owned by the caller
// (typically a field of the geometry instance); the three callbacks close
// over it.
type Spec struct {
	// Name uniquely identifies the quantity within its registry.
	Name string

	// Domain is the element kind the storage is indexed over.
	Domain Domain

	// Dependencies lists the quantities Compute reads, in resolution order.
	// Each must be registered before the first Require of this quantity.
	Dependencies []string

	// Compute fills the storage for every element. It may read the cached
	// storage of every declared dependency and any external read-only state
	// (connectivity, vertex positions), and nothing else. Returning an error
	// leaves the quantity uncomputed.
	Compute func() error

	// Clear releases the storage. It must be safe to call on storage that
	// was never filled.
	Clear func()

	// View returns a read-only view of the storage for generic access.
	// Optional; Access returns nil for quantities without one.
	View func() any
}

// node is the per-quantity cache state tracked by a Registry.
type node struct {
	spec Spec

	// cached is true iff the storage holds valid data.
	cached bool

	// inProgress marks the node during dependency resolution; revisiting an
	// in-progress node means the declared dependencies contain a cycle.
	inProgress bool

	// requireCount is the number of outstanding holds, both durable caller
	// holds and transient holds taken during dependency resolution.
	requireCount int
}
