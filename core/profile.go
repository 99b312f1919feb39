package core

import "time"

// UserProfile holds the scalar per-user fields maintained alongside the
// memory partition. Profiles are created lazily on first write, mutated only
// through merge-semantics deltas and never deleted by this subsystem.
type UserProfile struct {
	UserID        string    `json:"userId"`
	City          string    `json:"city,omitempty"`
	MemorySummary string    `json:"memorySummary,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Clone returns a copy safe for the caller to mutate.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// ProfileDelta is a merge-on-write update: nil fields are preserved, non-nil
// fields overwrite. Under concurrent writers the last submitted write wins
// per field, not per document, which is the documented consistency model.
type ProfileDelta struct {
	City          *string
	MemorySummary *string
}

// IsZero reports whether applying the delta would be a no-op.
func (d ProfileDelta) IsZero() bool {
	return d.City == nil && d.MemorySummary == nil
}

// Apply merges the delta into the profile, updating UpdatedAt when any field
// changes hands.
func (d ProfileDelta) Apply(p *UserProfile) {
	if d.IsZero() {
		return
	}
	if d.City != nil {
		p.City = *d.City
	}
	if d.MemorySummary != nil {
		p.MemorySummary = *d.MemorySummary
	}
	p.UpdatedAt = time.Now()
}
