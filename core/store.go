package core

import "context"

// DocumentStore is the persistence contract consumed by the memory core.
// It is keyed by user id and combines a single profile document with an
// append-only sub-collection of memory items per user.
//
// Implementations must be safe for concurrent use. They are NOT required to
// serialize concurrent turns for the same user: the capacity trim performed
// by the vector store is an incremental single-step operation and transient
// over-capacity under same-user races is an accepted property.
type DocumentStore interface {
	// GetProfile returns the user's profile or ErrProfileNotFound if the
	// user has never been written to.
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)

	// MergeProfile applies a merge-semantics delta, creating the profile
	// lazily if needed, and returns the resulting document.
	MergeProfile(ctx context.Context, userID string, delta ProfileDelta) (*UserProfile, error)

	// AddMemory appends a memory item to the user's partition. Items are
	// write-once; there is no update operation.
	AddMemory(ctx context.Context, userID string, item MemoryItem) error

	// RecentMemories returns up to limit items ordered by timestamp
	// descending (newest first).
	RecentMemories(ctx context.Context, userID string, limit int) ([]MemoryItem, error)

	// DeleteMemory removes a single item by id, returning ErrMemoryNotFound
	// when it is absent.
	DeleteMemory(ctx context.Context, userID string, itemID string) error

	// AllMemories returns every current item for the user, in no particular
	// order, for similarity ranking.
	AllMemories(ctx context.Context, userID string) ([]MemoryItem, error)
}
