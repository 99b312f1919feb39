// Package logging provides a tiny abstraction over slog so the memory core
// can depend on a minimal interface (Logger) while allowing callers to plug
// any structured logger. It also offers a richer MemoriaLogger with
// contextual helpers (component, user) and a domain specific helper for
// external service calls (extraction, embedding, merge, classification).
package logging
