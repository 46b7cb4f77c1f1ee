package quantity

import (
	"fmt"
	"strings"
)

// Registry owns the cache state for every quantity of one geometry instance.
// Nodes are created by Register, live for the registry's lifetime, and cycle
// between uncomputed and cached as interest comes and goes.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	nodes map[string]*node
	order []string // registration order, for deterministic invalidation

	// path is the chain of names currently being resolved, kept for cycle
	// reporting.
	path []string

	// pending records the transient dependency holds taken during the current
	// top-level Require, in acquisition order. They are released as a batch
	// once the whole resolution finishes, so a dependency shared by several
	// nodes in one resolution stays cached instead of bouncing through a
	// clear and recompute between siblings.
	pending []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]*node)}
}

// Register adds a quantity node in the uncomputed state with no outstanding
// holds. Dependencies need not be registered yet; they are resolved by name
// at Require time.
func (r *Registry) Register(spec Spec) error {
	if _, exists := r.nodes[spec.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateQuantity, spec.Name)
	}
	r.nodes[spec.Name] = &node{spec: spec}
	r.order = append(r.order, spec.Name)
	return nil
}

// Require takes a durable hold on the named quantity and guarantees it is
// cached on return, computing it and any uncached dependency if necessary.
// Requiring an already-cached quantity only increments its hold count.
//
// On failure nothing is held: the node stays uncomputed, every transient
// dependency hold taken along the way is released, and the error from a
// compute callback propagates unchanged.
func (r *Registry) Require(name string) error {
	n, ok := r.nodes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	outermost := len(r.path) == 0
	err := r.ensure(n)
	if outermost {
		r.releasePending()
	}
	if err != nil {
		return err
	}
	n.requireCount++
	return nil
}

// ensure makes the node cached, resolving dependencies recursively. The
// caller's own hold is not taken here; transient dependency holds are queued
// on r.pending and released together when the outermost Require unwinds,
// whether the resolution succeeds or fails.
func (r *Registry) ensure(n *node) error {
	if n.inProgress {
		return fmt.Errorf("%w: %s", ErrCircularDependency, r.cyclePath(n.spec.Name))
	}
	if n.cached {
		return nil
	}

	n.inProgress = true
	r.path = append(r.path, n.spec.Name)
	defer func() {
		n.inProgress = false
		r.path = r.path[:len(r.path)-1]
	}()

	// Take a transient hold on each dependency. The holds keep every
	// dependency cached until the whole top-level resolution finishes; on
	// failure the queued releases still run, so a failed Require leaves every
	// refcount where it started.
	for _, dep := range n.spec.Dependencies {
		if err := r.Require(dep); err != nil {
			return err
		}
		r.pending = append(r.pending, dep)
	}

	if err := n.spec.Compute(); err != nil {
		return err
	}
	n.cached = true
	return nil
}

// releasePending drops the queued transient holds in reverse acquisition
// order. A dependency with no durable hold falls to zero here and frees its
// storage, so transient caching never outlives the Require that caused it.
func (r *Registry) releasePending() {
	for i := len(r.pending) - 1; i >= 0; i-- {
		// Cannot underflow: each entry matches one hold taken in ensure.
		_ = r.Unrequire(r.pending[i])
	}
	r.pending = r.pending[:0]
}

// Unrequire releases one durable hold. When the last hold is released the
// storage is cleared and the quantity returns to the uncomputed state; no
// recomputation happens until it is required again.
func (r *Registry) Unrequire(name string) error {
	n, ok := r.nodes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	if n.requireCount == 0 {
		return fmt.Errorf("%w: %q", ErrRefCountUnderflow, name)
	}
	n.requireCount--
	if n.requireCount == 0 && n.cached {
		n.spec.Clear()
		n.cached = false
	}
	return nil
}

// Check returns nil if the named quantity is currently cached, and
// ErrNotRequired (or ErrUnknownQuantity) otherwise. Typed accessors call
// this before handing out their storage.
func (r *Registry) Check(name string) error {
	n, ok := r.nodes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	if !n.cached {
		return fmt.Errorf("%w: %q", ErrNotRequired, name)
	}
	return nil
}

// Access returns the quantity's read-only storage view. It fails with
// ErrNotRequired when the quantity is not cached; it never computes.
func (r *Registry) Access(name string) (any, error) {
	if err := r.Check(name); err != nil {
		return nil, err
	}
	n := r.nodes[name]
	if n.spec.View == nil {
		return nil, nil
	}
	return n.spec.View(), nil
}

// InvalidateAll clears every cached quantity and resets it to uncomputed,
// leaving all hold counts untouched. Call it after the underlying mesh or
// embedding changes; still-held quantities recompute lazily on the next
// Require.
func (r *Registry) InvalidateAll() {
	for _, name := range r.order {
		n := r.nodes[name]
		if n.cached {
			n.spec.Clear()
			n.cached = false
		}
	}
}

// Cached reports whether the named quantity currently holds valid data.
func (r *Registry) Cached(name string) bool {
	n, ok := r.nodes[name]
	return ok && n.cached
}

// RequireCount returns the number of outstanding holds on the named
// quantity, or zero for unknown names.
func (r *Registry) RequireCount(name string) int {
	n, ok := r.nodes[name]
	if !ok {
		return 0
	}
	return n.requireCount
}

// Has reports whether the name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.nodes[name]
	return ok
}

// Names returns all registered quantity names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Domain returns the registered domain of the named quantity.
func (r *Registry) Domain(name string) (Domain, error) {
	n, ok := r.nodes[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	return n.spec.Domain, nil
}

// cyclePath renders the in-progress resolution chain from the first
// occurrence of name back to itself.
func (r *Registry) cyclePath(name string) string {
	start := 0
	for i, s := range r.path {
		if s == name {
			start = i
			break
		}
	}
	var b strings.Builder
	for _, s := range r.path[start:] {
		b.WriteString(s)
		b.WriteString(" -> ")
	}
	b.WriteString(name)
	return b.String()
}
