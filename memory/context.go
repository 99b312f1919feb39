package memory

import (
	"strings"

	"github.com/zazilai/memoria/core"
)

// Context block labels. The assistant speaks Portuguese; the answer
// generation prompt expects these exact markers.
const (
	labelCity       = "Cidade"
	labelInfo       = "Info"
	labelPersonal   = "Pessoal"
	labelPreference = "Preferência"
	labelImportant  = "Importante"

	fieldSeparator = " | "
)

// BasicContext renders the profile-only fallback used when no memory item
// clears the similarity threshold: city and/or summary, omitting absent
// fields. Returns "" when the profile carries neither.
func BasicContext(city, summary string) string {
	var parts []string
	if city != "" {
		parts = append(parts, labelCity+": "+city)
	}
	if summary != "" {
		parts = append(parts, labelInfo+": "+summary)
	}
	return strings.Join(parts, fieldSeparator)
}

// RankedContext renders the city line (always sourced from the profile
// field) plus one line per populated type bucket, each listing the matching
// contents comma-joined. Ranked items typed City are not rendered
// separately; the profile city is authoritative for location.
func RankedContext(city string, ranked []ScoredItem) string {
	buckets := make(map[core.MemoryType][]string, 3)
	for _, item := range ranked {
		switch item.Type {
		case core.MemoryTypeCity:
			// Skipped: location always comes from the profile field.
		case core.MemoryTypePersonal, core.MemoryTypePreference, core.MemoryTypeImportant:
			buckets[item.Type] = append(buckets[item.Type], item.Content)
		}
	}

	var parts []string
	if city != "" {
		parts = append(parts, labelCity+": "+city)
	}
	for _, bucket := range []struct {
		t     core.MemoryType
		label string
	}{
		{core.MemoryTypePersonal, labelPersonal},
		{core.MemoryTypePreference, labelPreference},
		{core.MemoryTypeImportant, labelImportant},
	} {
		if contents := buckets[bucket.t]; len(contents) > 0 {
			parts = append(parts, bucket.label+": "+strings.Join(contents, ", "))
		}
	}
	return strings.Join(parts, fieldSeparator)
}
