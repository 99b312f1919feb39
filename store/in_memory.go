package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/zazilai/memoria/core"
)

// InMemoryStore is a volatile DocumentStore keeping profiles and memory
// items in process-local maps. It is safe for concurrent access and best
// suited for tests, local development or single-instance deployments.
// Returned documents are defensive copies, so callers can never mutate
// internal state.
//
// The mutex guards map integrity only. It deliberately does not serialize
// whole conversation turns: concurrent appends for the same user may still
// interleave with the capacity trim, which is the documented
// eventual-consistency behavior of the vector store.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*core.UserProfile
	items    map[string][]core.MemoryItem // userID -> append-ordered items
}

// NewInMemoryStore constructs an empty in-memory document store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		profiles: make(map[string]*core.UserProfile),
		items:    make(map[string][]core.MemoryItem),
	}
}

// GetProfile returns a copy of the user's profile or core.ErrProfileNotFound.
func (s *InMemoryStore) GetProfile(_ context.Context, userID string) (*core.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, core.ErrProfileNotFound
	}
	return p.Clone(), nil
}

// MergeProfile applies a merge-semantics delta, creating the profile lazily.
// Fields absent from the delta are preserved.
func (s *InMemoryStore) MergeProfile(_ context.Context, userID string, delta core.ProfileDelta) (*core.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		now := time.Now()
		p = &core.UserProfile{UserID: userID, CreatedAt: now, UpdatedAt: now}
		s.profiles[userID] = p
	}
	delta.Apply(p)
	return p.Clone(), nil
}

// AddMemory appends an item to the user's partition. Items are write-once.
func (s *InMemoryStore) AddMemory(_ context.Context, userID string, item core.MemoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[userID] = append(s.items[userID], item.Clone())
	return nil
}

// RecentMemories returns up to limit items ordered by timestamp descending.
func (s *InMemoryStore) RecentMemories(_ context.Context, userID string, limit int) ([]core.MemoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	partition := s.items[userID]
	out := make([]core.MemoryItem, 0, len(partition))
	for _, item := range partition {
		out = append(out, item.Clone())
	}
	// Stable sort keeps insertion order among equal timestamps.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteMemory removes a single item by id.
func (s *InMemoryStore) DeleteMemory(_ context.Context, userID string, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	partition := s.items[userID]
	for i, item := range partition {
		if item.ID == itemID {
			s.items[userID] = append(partition[:i:i], partition[i+1:]...)
			return nil
		}
	}
	return core.ErrMemoryNotFound
}

// AllMemories returns copies of every current item for the user.
func (s *InMemoryStore) AllMemories(_ context.Context, userID string) ([]core.MemoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	partition := s.items[userID]
	out := make([]core.MemoryItem, 0, len(partition))
	for _, item := range partition {
		out = append(out, item.Clone())
	}
	return out, nil
}
