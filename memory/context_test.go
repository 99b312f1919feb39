package memory

import (
	"testing"

	"github.com/zazilai/memoria/core"
)

func TestBasicContext(t *testing.T) {
	tests := []struct {
		name    string
		city    string
		summary string
		want    string
	}{
		{"city only", "Miami", "", "Cidade: Miami"},
		{"summary only", "", "gosta de praia", "Info: gosta de praia"},
		{"both", "Miami", "gosta de praia", "Cidade: Miami | Info: gosta de praia"},
		{"neither", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BasicContext(tt.city, tt.summary); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRankedContext_Buckets(t *testing.T) {
	ranked := []ScoredItem{
		{MemoryItem: core.MemoryItem{Type: core.MemoryTypePersonal, Content: "mora em Miami e gosta de praia"}, Score: 0.9},
		{MemoryItem: core.MemoryItem{Type: core.MemoryTypePreference, Content: "prefere restaurantes veganos"}, Score: 0.85},
		{MemoryItem: core.MemoryItem{Type: core.MemoryTypePersonal, Content: "tem dois filhos"}, Score: 0.8},
	}
	got := RankedContext("Miami", ranked)
	want := "Cidade: Miami | Pessoal: mora em Miami e gosta de praia, tem dois filhos | Preferência: prefere restaurantes veganos"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRankedContext_CityItemsNotRendered(t *testing.T) {
	ranked := []ScoredItem{
		{MemoryItem: core.MemoryItem{Type: core.MemoryTypeCity, Content: "mora em Orlando"}, Score: 0.95},
		{MemoryItem: core.MemoryItem{Type: core.MemoryTypeImportant, Content: "viaja a trabalho toda semana"}, Score: 0.75},
	}
	got := RankedContext("Miami", ranked)
	want := "Cidade: Miami | Importante: viaja a trabalho toda semana"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRankedContext_NoCity(t *testing.T) {
	ranked := []ScoredItem{
		{MemoryItem: core.MemoryItem{Type: core.MemoryTypeImportant, Content: "alérgico a amendoim"}, Score: 0.8},
	}
	got := RankedContext("", ranked)
	if got != "Importante: alérgico a amendoim" {
		t.Fatalf("unexpected context: %q", got)
	}
}
