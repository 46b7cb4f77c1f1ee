// Package quantity implements the lazy, reference-counted caching engine
// behind every derived quantity in geodesic.
//
// A quantity is a named, per-element (or global) value that is expensive to
// compute and cheap to cache: edge lengths, face areas, cotangent weights,
// transport rotors. Each geometry instance owns one Registry holding a node
// per quantity. Callers express durable interest with Require and release it
// with a matching Unrequire; the registry computes a quantity at most once
// while any interest is outstanding, resolves declared dependencies
// recursively, and frees storage deterministically when the last interest is
// withdrawn.
//
// Dependencies pulled in only to satisfy another quantity's computation are
// transient: they are released as soon as the dependent computation finishes,
// so requiring a single quantity never pins the storage of the intermediates
// it happened to need.
//
// The registry is deliberately not safe for concurrent use; a geometry
// instance and its registry belong to one goroutine at a time, and callers
// needing cross-goroutine access must serialize externally.
package quantity
