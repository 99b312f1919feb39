// Package model defines the provider-agnostic contract for the single-shot
// text completions the memory core depends on (fact extraction, summary
// merging, location-need classification). Concrete adapters live in the
// openai and anthropic subpackages; MockModel and MockEmbedder cover tests.
//
// The contract is deliberately non-streaming: every call in this subsystem
// consumes the full completion before acting on it, so a streaming surface
// would only add channel plumbing.
package model
