package activity

import (
	"math/rand/v2"
	"testing"

	"github.com/abhisek/alefba/internal/content"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestChoose_ByLevel(t *testing.T) {
	r := newRand()
	tests := []struct {
		level   int
		allowed []Type
	}{
		{1, []Type{Intro}},
		{2, []Type{MissingLetter}},
		{3, []Type{Spelling}},
		{4, []Type{Recognition, Spelling}},
		{5, []Type{Recall}},
	}
	for _, tt := range tests {
		it := content.Item{Character: "ب", Word: "بابا", Category: content.CategoryAlphabet, Level: tt.level}
		for i := 0; i < 20; i++ {
			got := Choose(it, false, r)
			if !contains(tt.allowed, got.Type) {
				t.Errorf("level %d: got %s, want one of %v", tt.level, got.Type, tt.allowed)
			}
		}
	}
}

func TestChoose_LevelFourVaries(t *testing.T) {
	r := newRand()
	it := content.Item{Character: "ب", Word: "بابا", Level: 4}
	seen := map[Type]bool{}
	for i := 0; i < 100; i++ {
		seen[Choose(it, false, r).Type] = true
	}
	if !seen[Recognition] || !seen[Spelling] {
		t.Errorf("expected both Recognition and Spelling at level 4, saw %v", seen)
	}
}

func TestChoose_Review(t *testing.T) {
	r := newRand()
	seen := map[Type]bool{}
	for level := 1; level <= 5; level++ {
		it := content.Item{Character: "ب", Word: "بابا", Level: level}
		for i := 0; i < 40; i++ {
			got := Choose(it, true, r)
			if got.Type != Recall && got.Type != Recognition {
				t.Fatalf("review pick %s outside review pool", got.Type)
			}
			seen[got.Type] = true
		}
	}
	if len(seen) != 2 {
		t.Errorf("review picks = %v, want both review drills", seen)
	}
}

func TestChoose_MissingIndexRerolled(t *testing.T) {
	r := newRand()
	it := content.Item{Character: "ب", Word: "بابا", Category: content.CategoryAlphabet, Level: 2}

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		c := Choose(it, false, r)
		if c.MissingIndex < 0 || c.MissingIndex >= 4 {
			t.Fatalf("MissingIndex = %d out of range", c.MissingIndex)
		}
		seen[c.MissingIndex] = true
	}
	if len(seen) != 4 {
		t.Errorf("indexes seen = %v, want all 4 positions", seen)
	}
}

func TestChoose_MissingIndexSingleSymbol(t *testing.T) {
	r := newRand()
	it := content.Item{Character: "آ", Word: "آ", Category: content.CategoryAlphabet, Level: 2}
	for i := 0; i < 10; i++ {
		if c := Choose(it, false, r); c.MissingIndex != 0 {
			t.Fatalf("MissingIndex = %d, want 0", c.MissingIndex)
		}
	}
}

func TestTarget(t *testing.T) {
	letter := content.Item{Character: "ب", Word: "بابا", Category: content.CategoryAlphabet}
	number := content.Item{Character: "۳", Word: "سه", Category: content.CategoryNumber}

	if got := Target(Intro, letter); len(got) != 1 || got[0] != "ب" {
		t.Errorf("Target(Intro, letter) = %v", got)
	}
	if got := Target(Spelling, letter); len(got) != 4 {
		t.Errorf("Target(Spelling, letter) = %v, want 4 symbols", got)
	}
	for _, typ := range All {
		got := Target(typ, number)
		if len(got) != 1 || got[0] != "۳" {
			t.Errorf("Target(%s, number) = %v, want the numeral", typ, got)
		}
	}
}

func TestTypeValid(t *testing.T) {
	for _, typ := range All {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if Type("DANCE").Valid() {
		t.Error("unknown type should be invalid")
	}
}

func contains(types []Type, t Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
