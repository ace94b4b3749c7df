package content

import (
	"fmt"
	"math"
	"strings"
)

// Category partitions the item pools. A session never mixes categories.
type Category string

const (
	CategoryAlphabet Category = "ALPHABET"
	CategoryNumber   Category = "NUMBER"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryAlphabet, CategoryNumber}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryAlphabet || c == CategoryNumber
}

// ParseCategory accepts a category name in any case ("alphabet", "NUMBER").
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Label returns the category name shown to parents.
func (c Category) Label() string {
	switch c {
	case CategoryAlphabet:
		return "Letters"
	case CategoryNumber:
		return "Numbers"
	default:
		return string(c)
	}
}

const (
	// MinLevel is the level every item starts at.
	MinLevel = 1
	// MaxLevel is the mastered level.
	MaxLevel = 5
)

// Never is the review time of a mastered item.
const Never int64 = math.MaxInt64

// Item is one learnable symbol together with its progress fields.
type Item struct {
	ID          string   `json:"id"`
	Character   string   `json:"character"`
	Word        string   `json:"word"`
	PhoneticRef string   `json:"phonetic_ref"`
	ImageRef    string   `json:"image_ref"`
	Category    Category `json:"category"`
	Position    int      `json:"position"`

	Level          int   `json:"level"`
	Experience     int   `json:"experience"`
	LastReviewTime int64 `json:"last_review_time"` // epoch millis, 0 = never attempted
	NextReviewTime int64 `json:"next_review_time"` // epoch millis, Never once mastered
}

// IsMastered reports whether the item reached the top level.
func (it Item) IsMastered() bool {
	return it.Level == MaxLevel
}

// Attempted reports whether the learner has ever answered this item.
func (it Item) Attempted() bool {
	return it.LastReviewTime > 0
}

// Symbols splits s into its runes, one string per rune.
// Persian letters and digits are single code points, so a rune is a symbol.
func Symbols(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Distinct returns the symbols of s in first-seen order without repeats.
func Distinct(s string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, sym := range Symbols(s) {
		if seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	return out
}
