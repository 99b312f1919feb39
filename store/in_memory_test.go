package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/zazilai/memoria/core"
)

// Interface compliance (compile-time assertion)
var _ core.DocumentStore = (*InMemoryStore)(nil)

func strPtr(s string) *string { return &s }

func TestInMemoryStore_ProfileLazyCreateAndMerge(t *testing.T) {
	svc := NewInMemoryStore()
	ctx := context.Background()

	if _, err := svc.GetProfile(ctx, "u1"); !errors.Is(err, core.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	p, err := svc.MergeProfile(ctx, "u1", core.ProfileDelta{City: strPtr("Miami")})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if p.City != "Miami" || p.MemorySummary != "" {
		t.Fatalf("unexpected profile after first merge: %#v", p)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps on lazy create")
	}

	// A delta without City must preserve the existing value.
	p2, _ := svc.MergeProfile(ctx, "u1", core.ProfileDelta{MemorySummary: strPtr("gosta de praia")})
	if p2.City != "Miami" || p2.MemorySummary != "gosta de praia" {
		t.Fatalf("merge did not preserve absent fields: %#v", p2)
	}

	// mutation safety (returned profile is a copy)
	p2.City = "changed"
	p3, _ := svc.GetProfile(ctx, "u1")
	if p3.City != "Miami" {
		t.Fatalf("expected copy isolation, got %q", p3.City)
	}
}

func TestInMemoryStore_RecentMemoriesOrderAndLimit(t *testing.T) {
	svc := NewInMemoryStore()
	ctx := context.Background()
	base := time.Now()
	for i := 0; i < 5; i++ {
		item := core.MemoryItem{
			ID:        fmt.Sprintf("m%d", i),
			Content:   fmt.Sprintf("fato %d", i),
			Type:      core.MemoryTypePersonal,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := svc.AddMemory(ctx, "u2", item); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	recent, err := svc.RecentMemories(ctx, "u2", 3)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 items, got %d", len(recent))
	}
	if recent[0].ID != "m4" || recent[1].ID != "m3" || recent[2].ID != "m2" {
		t.Fatalf("expected newest-first ordering, got %#v", recent)
	}

	all, _ := svc.RecentMemories(ctx, "u2", 10)
	if len(all) != 5 {
		t.Fatalf("expected 5 items with large limit, got %d", len(all))
	}
}

func TestInMemoryStore_DeleteMemory(t *testing.T) {
	svc := NewInMemoryStore()
	ctx := context.Background()
	item := core.MemoryItem{ID: "m0", Content: "fato", Timestamp: time.Now()}
	if err := svc.AddMemory(ctx, "u3", item); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.DeleteMemory(ctx, "u3", "m0"); err != nil {
		t.Fatalf("delete existing failed: %v", err)
	}
	remaining, _ := svc.AllMemories(ctx, "u3")
	if len(remaining) != 0 {
		t.Fatalf("expected empty partition after delete, got %d", len(remaining))
	}
	if err := svc.DeleteMemory(ctx, "u3", "does_not_exist"); !errors.Is(err, core.ErrMemoryNotFound) {
		t.Fatalf("expected ErrMemoryNotFound, got %v", err)
	}
}

func TestInMemoryStore_VectorCopyIsolation(t *testing.T) {
	svc := NewInMemoryStore()
	ctx := context.Background()
	vec := []float32{1, 0, 0}
	item := core.MemoryItem{ID: "m0", Vector: vec, Timestamp: time.Now()}
	if err := svc.AddMemory(ctx, "u4", item); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	vec[0] = 99
	got, _ := svc.AllMemories(ctx, "u4")
	if got[0].Vector[0] != 1 {
		t.Fatalf("expected stored vector isolation, got %v", got[0].Vector)
	}
	got[0].Vector[0] = 42
	again, _ := svc.AllMemories(ctx, "u4")
	if again[0].Vector[0] != 1 {
		t.Fatalf("expected returned vector isolation, got %v", again[0].Vector)
	}
}

func TestInMemoryStore_ConcurrentAccess(t *testing.T) {
	svc := NewInMemoryStore()
	ctx := context.Background()
	wg := sync.WaitGroup{}
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			city := fmt.Sprintf("cidade%d", i)
			if _, err := svc.MergeProfile(ctx, "u5", core.ProfileDelta{City: &city}); err != nil {
				t.Errorf("merge error: %v", err)
			}
			item := core.MemoryItem{ID: fmt.Sprintf("m%d", i), Timestamp: time.Now()}
			if err := svc.AddMemory(ctx, "u5", item); err != nil {
				t.Errorf("add error: %v", err)
			}
			if _, err := svc.RecentMemories(ctx, "u5", 5); err != nil {
				t.Errorf("recent error: %v", err)
			}
		}(i)
	}
	wg.Wait()
	all, _ := svc.AllMemories(ctx, "u5")
	if len(all) != 25 {
		t.Fatalf("expected 25 items after concurrent writes, got %d", len(all))
	}
}
