package core

import (
	"testing"
	"time"
)

func TestMemoryType_WireTagRoundTrip(t *testing.T) {
	for _, typ := range []MemoryType{MemoryTypeCity, MemoryTypePersonal, MemoryTypePreference, MemoryTypeImportant} {
		parsed, ok := ParseMemoryType(typ.String())
		if !ok || parsed != typ {
			t.Fatalf("round trip failed for %v: got %v, ok=%v", typ, parsed, ok)
		}
	}
}

func TestParseMemoryType_NormalizesInput(t *testing.T) {
	if typ, ok := ParseMemoryType("  Preference "); !ok || typ != MemoryTypePreference {
		t.Fatalf("expected normalized parse, got %v, ok=%v", typ, ok)
	}
	if _, ok := ParseMemoryType("banana"); ok {
		t.Fatalf("expected unknown tag to be rejected")
	}
	if _, ok := ParseMemoryType(""); ok {
		t.Fatalf("expected empty tag to be rejected")
	}
}

func TestMemoryItem_CloneIsolatesVector(t *testing.T) {
	item := MemoryItem{ID: "m1", Vector: []float32{1, 2, 3}, Timestamp: time.Now()}
	clone := item.Clone()
	clone.Vector[0] = 99
	if item.Vector[0] != 1 {
		t.Fatalf("clone shares vector backing array")
	}
}

func TestProfileDelta_ApplyPreservesAbsentFields(t *testing.T) {
	p := &UserProfile{UserID: "u1", City: "Miami", MemorySummary: "gosta de praia"}
	summary := "gosta de praia e futebol"
	ProfileDelta{MemorySummary: &summary}.Apply(p)
	if p.City != "Miami" {
		t.Fatalf("absent field overwritten: %q", p.City)
	}
	if p.MemorySummary != summary {
		t.Fatalf("present field not applied: %q", p.MemorySummary)
	}
	if p.UpdatedAt.IsZero() {
		t.Fatalf("expected UpdatedAt to be bumped")
	}
}

func TestProfileDelta_ZeroApplyIsNoOp(t *testing.T) {
	p := &UserProfile{UserID: "u1", City: "Miami"}
	before := p.UpdatedAt
	ProfileDelta{}.Apply(p)
	if p.UpdatedAt != before {
		t.Fatalf("zero delta must not bump UpdatedAt")
	}
}

func TestExtractionResult_Empty(t *testing.T) {
	if !(ExtractionResult{}).Empty() {
		t.Fatalf("zero result should be empty")
	}
	if (ExtractionResult{City: "Miami"}).Empty() {
		t.Fatalf("result with city should not be empty")
	}
	if (ExtractionResult{Memories: []CandidateMemory{{Content: "x"}}}).Empty() {
		t.Fatalf("result with candidates should not be empty")
	}
}
