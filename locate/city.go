// Package locate groups the location concerns of the memory core: the
// best-effort regex fallback that recovers a city from the rolling summary,
// and the model-backed classifier that decides whether a query benefits from
// knowing the user's city at all.
package locate

import (
	"regexp"
	"strings"
)

// cityPattern matches the phrasings the extractor's summaries use for
// location ("moro em X", "mora em X", "vivo em X", "estou em X",
// "cidade: X"), capturing the trailing location phrase up to the next comma,
// period or end of string.
var cityPattern = regexp.MustCompile(`(?i)\b(?:mor[oa] em|viv[oe] em|estou em|cidade:)\s*([^,.\n]+)`)

// CityFromSummary extracts a city from a rolling summary. This is a
// fallback path only: once an explicit city write has occurred the profile
// field is authoritative and this function is never consulted. Returns ""
// when no pattern matches.
func CityFromSummary(summary string) string {
	if summary == "" {
		return ""
	}
	match := cityPattern.FindStringSubmatch(summary)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
