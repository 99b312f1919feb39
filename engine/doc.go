// Package engine orchestrates the memory core. It wires the extractor,
// embedder, vector store, summary merger and location classifier into the
// three operations the rest of the system consumes:
//
//   - RecordTurn (write path): extract facts from a turn, admit the
//     confident ones into the vector store, update the profile city and fold
//     the rolling summary.
//   - RetrieveContext (read path): embed the query, rank stored items and
//     render the context block, falling back to profile-only context.
//   - GetCity: explicit profile city, with a regex fallback over the
//     summary that self-heals the profile on a hit.
//
// Every external call runs under its own timeout and has a documented
// fail-closed default; nothing in this package surfaces an error to the
// conversation turn. Total failure degrades to "no memory used this turn".
package engine
