// Package store contains concrete DocumentStore implementations. The store
// interface and domain types reside in the core package. Import
// github.com/zazilai/memoria/core and depend on core.DocumentStore in your
// code; select an implementation (like the in-memory store below) at wiring
// time.
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// backends (document databases, key-value stores, etc.) to be added without
// introducing dependency cycles.
package store
