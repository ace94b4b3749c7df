// Package activity decides which drill an item gets next.
package activity

import "github.com/abhisek/alefba/internal/content"

// Type tags a drill.
type Type string

const (
	Intro         Type = "INTRO"
	MissingLetter Type = "MISSING_LETTER"
	Spelling      Type = "SPELLING"
	Recognition   Type = "RECOGNITION"
	Recall        Type = "RECALL"
)

// All lists every activity type.
var All = []Type{Intro, MissingLetter, Spelling, Recognition, Recall}

// Valid reports whether t is a known activity.
func (t Type) Valid() bool {
	switch t {
	case Intro, MissingLetter, Spelling, Recognition, Recall:
		return true
	}
	return false
}

// Label is the short name shown on screen.
func (t Type) Label() string {
	switch t {
	case Intro:
		return "Meet the letter"
	case MissingLetter:
		return "Missing letter"
	case Spelling:
		return "Spell it"
	case Recognition:
		return "Find it"
	case Recall:
		return "Quick recall"
	default:
		return string(t)
	}
}

// Choice is the activity picked for one presentation of an item.
type Choice struct {
	Type Type
	// MissingIndex is the hidden position in the target. Only meaningful
	// for MissingLetter.
	MissingIndex int
}

// Rand is the random source used for picks. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
}

// reviewPool is what a review session draws from.
var reviewPool = []Type{Recall, Recognition}

// Choose picks the activity for it. Review sessions draw uniformly from the
// fast retrieval drills; otherwise the level decides, with a coin flip at
// level 4. The missing index is drawn anew on every call.
func Choose(it content.Item, review bool, r Rand) Choice {
	var t Type
	switch {
	case review:
		t = reviewPool[r.IntN(len(reviewPool))]
	case it.Level <= 1:
		t = Intro
	case it.Level == 2:
		t = MissingLetter
	case it.Level == 3:
		t = Spelling
	case it.Level == 4:
		if r.IntN(2) == 0 {
			t = Recognition
		} else {
			t = Spelling
		}
	default:
		t = Recall
	}

	c := Choice{Type: t}
	if t == MissingLetter {
		if n := len(Target(t, it)); n > 0 {
			c.MissingIndex = r.IntN(n)
		}
	}
	return c
}

// Target returns the symbols the learner has to produce for t.
// Intro asks for the single character. Number items always target their
// numeral; the spelled-out word is only spoken. Every other drill targets
// the whole word.
func Target(t Type, it content.Item) []string {
	if t == Intro || it.Category == content.CategoryNumber || it.Word == "" {
		return []string{it.Character}
	}
	return content.Symbols(it.Word)
}
