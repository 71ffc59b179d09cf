package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_FiltersLowercasesAndDedupes(t *testing.T) {
	in := strings.NewReader("CRATE\ncrate\n trace \nbanana\ncr4te\nxy\n\nslate\n")
	got, err := Parse(in, 5)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"crate", "trace", "slate"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d]=%q want %q", i, got[i], want[i])
		}
	}
}

func TestLoadAndSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	list := []string{"crate", "slate", "trace"}
	if err := Save(filepath.Join(dir, ListFileName(5)), list); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(dir, 5)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(list) {
		t.Fatalf("got %v want %v", got, list)
	}
	for i := range list {
		if got[i] != list[i] {
			t.Fatalf("got[%d]=%q want %q", i, got[i], list[i])
		}
	}
}

func TestSample_DeterministicForSeed(t *testing.T) {
	list := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	first := Sample(list, 4, 42)
	second := Sample(list, 4, 42)
	if len(first) != 4 || len(second) != 4 {
		t.Fatalf("sample sizes: %d, %d want 4", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed diverged: %v vs %v", first, second)
		}
	}

	seen := map[string]bool{}
	for _, w := range first {
		if seen[w] {
			t.Fatalf("duplicate %q in sample %v", w, first)
		}
		seen[w] = true
	}
}

func TestSample_WholeListWhenNTooLarge(t *testing.T) {
	list := []string{"a", "b", "c"}
	got := Sample(list, 10, 1)
	if len(got) != len(list) {
		t.Fatalf("got %d words want %d", len(got), len(list))
	}
	got[0] = "mutated"
	if list[0] != "a" {
		t.Fatalf("Sample aliased its input")
	}
}

func TestLoadOpeners_JSONTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openers.json")
	if err := os.WriteFile(path, []byte(`{"5": ["arose", "slate"], "3": ["are"]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	table, err := LoadOpeners(path)
	if err != nil {
		t.Fatalf("load openers: %v", err)
	}
	if len(table[5]) != 2 || table[5][0] != "arose" {
		t.Fatalf("table[5] = %v", table[5])
	}
	if len(table[3]) != 1 || table[3][0] != "are" {
		t.Fatalf("table[3] = %v", table[3])
	}
}

func TestLoadOpeners_RejectsWrongLengths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openers.json")
	if err := os.WriteFile(path, []byte(`{"5": ["arise", "oak"]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadOpeners(path); err == nil {
		t.Fatalf("expected error for mismatched opener length")
	}
}

func TestFrequencies_CountsTotalsAndPositions(t *testing.T) {
	freqs := Frequencies([]string{"aba", "abc"})

	a := freqs["a"]
	if a.Total != 3 {
		t.Fatalf("a.Total = %d want 3", a.Total)
	}
	if a.Positions[0] != 2 || a.Positions[1] != 0 || a.Positions[2] != 1 {
		t.Fatalf("a.Positions = %v want [2 0 1]", a.Positions)
	}
	b := freqs["b"]
	if b.Total != 2 || b.Positions[1] != 2 {
		t.Fatalf("b = %+v", b)
	}
}
