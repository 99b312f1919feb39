// Package memory implements the engineered core of the subsystem: the
// bounded per-user VectorStore with FIFO-style eviction, the cosine
// similarity ranker that selects the items relevant to a query, and the
// context formatter that renders selected items plus profile fields into the
// compact text block consumed by answer generation.
//
// The store is append-mostly: items are write-once and the only delete is
// the capacity trim. The trim is a single-step operation (read K+1 newest,
// delete the oldest among them), so concurrent appends for the same user can
// transiently exceed the capacity; the bound converges once writes quiesce.
package memory
