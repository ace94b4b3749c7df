// Package keyboard builds the set of symbols offered for a drill.
package keyboard

import (
	"github.com/abhisek/alefba/internal/activity"
	"github.com/abhisek/alefba/internal/content"
)

// DecoyCounts maps level to the number of decoys offered. Levels past the
// end of the table use the last entry.
var DecoyCounts = []int{
	0, // unused
	0, // level 1: matching only
	2,
	3,
	4,
}

// FallbackLetters tops up decoys when too few letters are mastered.
var FallbackLetters = []string{"ا", "ب", "د", "م", "س", "ر", "ن", "ز", "ت"}

// Rand is the random source for decoy picks and the final shuffle.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// DecoyCount returns how many decoys an item at level gets.
func DecoyCount(level int) int {
	if level < 1 {
		return 0
	}
	if level >= len(DecoyCounts) {
		return DecoyCounts[len(DecoyCounts)-1]
	}
	return DecoyCounts[level]
}

// Mandatory returns the symbols a drill cannot be completed without.
func Mandatory(it content.Item, t activity.Type) []string {
	if t == activity.Intro {
		return []string{it.Character}
	}
	seen := make(map[string]bool)
	var out []string
	for _, s := range activity.Target(t, it) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Build returns the shuffled keyboard for it. Decoys come from the words of
// mastered items so a child is only confused by symbols already learned;
// the fallback set fills any gap. Mandatory symbols are never used as
// decoys and the result has no duplicates.
func Build(it content.Item, t activity.Type, mastered []content.Item, r Rand) []string {
	keys := Mandatory(it, t)
	used := make(map[string]bool, len(keys))
	for _, k := range keys {
		used[k] = true
	}

	need := DecoyCount(it.Level)
	if need > 0 {
		learned := learnedSymbols(it, mastered, used)
		shuffle(learned, r)
		keys, need = take(keys, learned, need, used)

		if need > 0 {
			fallback := append([]string(nil), fallbackFor(it.Category)...)
			shuffle(fallback, r)
			keys, _ = take(keys, fallback, need, used)
		}
	}

	shuffle(keys, r)
	return keys
}

// learnedSymbols collects the distinct symbols of mastered items in the
// same category, skipping the current item and anything in exclude.
func learnedSymbols(it content.Item, mastered []content.Item, exclude map[string]bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range mastered {
		if m.ID == it.ID || m.Category != it.Category {
			continue
		}
		src := m.Word
		if m.Category == content.CategoryNumber {
			src = m.Character
		}
		for _, s := range content.Symbols(src) {
			if exclude[s] || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func fallbackFor(c content.Category) []string {
	if c == content.CategoryNumber {
		return content.PersianDigits
	}
	return FallbackLetters
}

// take appends up to n unused candidates to keys.
func take(keys, candidates []string, n int, used map[string]bool) ([]string, int) {
	for _, c := range candidates {
		if n == 0 {
			break
		}
		if used[c] {
			continue
		}
		used[c] = true
		keys = append(keys, c)
		n--
	}
	return keys, n
}

func shuffle(s []string, r Rand) {
	r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}
