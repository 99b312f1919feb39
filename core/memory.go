package core

import (
	"fmt"
	"strings"
	"time"
)

// MemoryType classifies a stored fact. The set is closed; formatting and
// bucketing code switches exhaustively over it instead of comparing strings.
type MemoryType int

const (
	// MemoryTypeCity marks facts about where the user lives or currently is.
	// The profile City field, not the ranked items, is the source of truth
	// for rendering, so this type exists mainly for extraction bookkeeping.
	MemoryTypeCity MemoryType = iota
	// MemoryTypePersonal marks durable personal facts ("mora em Miami").
	MemoryTypePersonal
	// MemoryTypePreference marks likes, dislikes and habits.
	MemoryTypePreference
	// MemoryTypeImportant marks high-value facts that fit no other bucket.
	MemoryTypeImportant
)

// String returns the wire tag used by the extraction schema.
func (t MemoryType) String() string {
	switch t {
	case MemoryTypeCity:
		return "city"
	case MemoryTypePersonal:
		return "personal"
	case MemoryTypePreference:
		return "preference"
	case MemoryTypeImportant:
		return "important"
	default:
		return "unknown"
	}
}

// ParseMemoryType maps an extraction wire tag to its MemoryType. The second
// return value is false for tags outside the closed set; callers are expected
// to drop such candidates rather than guess.
func ParseMemoryType(s string) (MemoryType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "city":
		return MemoryTypeCity, true
	case "personal":
		return MemoryTypePersonal, true
	case "preference":
		return MemoryTypePreference, true
	case "important":
		return MemoryTypeImportant, true
	default:
		return 0, false
	}
}

// MemoryItem is one durable fact extracted from a conversation turn, stored
// together with its embedding vector. Items are immutable once created and
// owned exclusively by a single user's partition.
type MemoryItem struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Type      MemoryType `json:"type"`
	Vector    []float32  `json:"vector"`
	Timestamp time.Time  `json:"timestamp"`
}

// Clone returns a deep copy so stores can hand out items without risking
// mutation of the vector backing array.
func (m MemoryItem) Clone() MemoryItem {
	c := m
	if m.Vector != nil {
		c.Vector = make([]float32, len(m.Vector))
		copy(c.Vector, m.Vector)
	}
	return c
}

// CandidateMemory is a single fact proposed by the Extractor, before the
// confidence gate decides whether it is persisted.
type CandidateMemory struct {
	Type       MemoryType `json:"type"`
	Content    string     `json:"content"`
	Confidence float64    `json:"confidence"`
}

// ExtractionResult is the transient per-turn output of the Extractor. It is
// produced once, consumed immediately by the engine and never persisted.
// Empty City / Summary strings mean "nothing extracted for that field".
type ExtractionResult struct {
	HasMemorableInfo bool              `json:"hasMemorableInfo"`
	Memories         []CandidateMemory `json:"memories"`
	City             string            `json:"city"`
	Summary          string            `json:"summary"`
}

// Empty reports whether the result carries nothing worth writing.
func (r ExtractionResult) Empty() bool {
	return !r.HasMemorableInfo && len(r.Memories) == 0 && r.City == "" && r.Summary == ""
}

// ErrMemoryNotFound is returned by DocumentStore implementations when a
// delete targets an item id that does not exist in the user's partition.
var ErrMemoryNotFound = fmt.Errorf("memory item not found")

// ErrProfileNotFound is returned by DocumentStore.GetProfile when the user
// has never been written to. Callers treat it as "empty profile", never as a
// turn-fatal error.
var ErrProfileNotFound = fmt.Errorf("profile not found")
