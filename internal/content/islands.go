package content

import "sort"

// Island is one stop on a category's map.
type Island struct {
	Item   Item
	Locked bool
}

// SortByPosition orders items by their map position, then by id.
func SortByPosition(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Position != items[j].Position {
			return items[i].Position < items[j].Position
		}
		return items[i].ID < items[j].ID
	})
}

// Islands lays out the items of one category as a map. An island stays
// locked until the one before it has been attempted at least once; the
// first island is always open.
func Islands(items []Item) []Island {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	SortByPosition(sorted)

	out := make([]Island, len(sorted))
	for i, it := range sorted {
		out[i] = Island{Item: it, Locked: i > 0 && !sorted[i-1].Attempted()}
	}
	return out
}

// NextToLearn returns the first unlocked, not yet mastered item on the map.
func NextToLearn(items []Item) (Item, bool) {
	for _, isl := range Islands(items) {
		if isl.Locked {
			break
		}
		if !isl.Item.IsMastered() {
			return isl.Item, true
		}
	}
	return Item{}, false
}

// FilterCategory returns the items belonging to c, preserving order.
func FilterCategory(items []Item, c Category) []Item {
	var out []Item
	for _, it := range items {
		if it.Category == c {
			out = append(out, it)
		}
	}
	return out
}

// Mastered returns the mastered items, preserving order.
func Mastered(items []Item) []Item {
	var out []Item
	for _, it := range items {
		if it.IsMastered() {
			out = append(out, it)
		}
	}
	return out
}
