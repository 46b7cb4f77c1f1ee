package quantity

import "errors"

// Sentinel errors for registry operations.
var (
	// ErrUnknownQuantity indicates the name is not registered, e.g. an
	// extrinsic quantity requested from a geometry with no embedding.
	ErrUnknownQuantity = errors.New("quantity: unknown quantity")

	// ErrDuplicateQuantity indicates a second registration under an
	// already-taken name.
	ErrDuplicateQuantity = errors.New("quantity: duplicate quantity")

	// ErrRefCountUnderflow indicates an Unrequire without a matching
	// outstanding Require. It signals an unbalanced caller, and is never
	// silently clamped: clamping would mask the leak elsewhere.
	ErrRefCountUnderflow = errors.New("quantity: refcount underflow")

	// ErrNotRequired indicates an Access on a quantity that is not
	// currently cached. Callers must Require before reading; Access never
	// computes on its own.
	ErrNotRequired = errors.New("quantity: not required")

	// ErrCircularDependency indicates the declared dependencies contain a
	// cycle, so no valid compute order exists.
	ErrCircularDependency = errors.New("quantity: circular dependency")
)
