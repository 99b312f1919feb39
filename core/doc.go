// Package core provides the foundational domain types and contracts for the
// memoria memory subsystem. It defines:
//
//   - MemoryItem / MemoryType (durable embedded facts with a closed type enum)
//   - UserProfile / ProfileDelta (per-user profile with merge-on-write updates)
//   - ExtractionResult / CandidateMemory (transient per-turn extraction output)
//   - Pluggable collaborator interfaces: DocumentStore, Embedder, Extractor,
//     SummaryMerger and LocationClassifier
//
// The package intentionally keeps implementation concerns (persistence, model
// providers, orchestration) out of scope, exposing small interfaces so custom
// backends can be plugged in at wiring time without dependency cycles.
package core
