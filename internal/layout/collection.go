// Package layout implements the dashboard layout editor: ordered collections,
// drag-and-drop reorder and swap rules, undo/redo history and persistence.
package layout

import "slices"

// Item is an element of an ordered collection
type Item[T any] interface {
	ItemID() string
	WithOrder(order int) T
}

// GroupedItem is an item that carries the name of the collection it lives in
type GroupedItem[T any] interface {
	Item[T]
	Group() string
	WithGroup(group string) T
}

// ToggleItem is an item that can be hidden
type ToggleItem[T any] interface {
	Item[T]
	IsVisible() bool
	WithVisible(visible bool) T
}

// IndexOf returns the position of id in items, or -1
func IndexOf[T Item[T]](items []T, id string) int {
	for i, item := range items {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}

// Renumber returns a copy of items with every order set to its index
func Renumber[T Item[T]](items []T) []T {
	out := slices.Clone(items)
	for i := range out {
		out[i] = out[i].WithOrder(i)
	}
	return out
}

// Reorder moves the item activeID to the position of overID, shifting the items
// in between by one, and renumbers the collection. It reports false and returns
// items unchanged when either id is missing or both are the same.
func Reorder[T Item[T]](items []T, activeID, overID string) ([]T, bool) {
	from := IndexOf(items, activeID)
	to := IndexOf(items, overID)
	if from < 0 || to < 0 || from == to {
		return items, false
	}

	out := slices.Clone(items)
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)
	return Renumber(out), true
}

// SwapAcross trades the item activeID of src with the item overID of dst. Each item
// takes the other's index and collection tag; both collections are renumbered.
func SwapAcross[T GroupedItem[T]](src []T, srcGroup string, dst []T, dstGroup string, activeID, overID string) ([]T, []T, bool) {
	i := IndexOf(src, activeID)
	j := IndexOf(dst, overID)
	if i < 0 || j < 0 {
		return src, dst, false
	}

	dragged := src[i].WithGroup(dstGroup)
	target := dst[j].WithGroup(srcGroup)

	newSrc := slices.Clone(src)
	newDst := slices.Clone(dst)
	newSrc[i] = target
	newDst[j] = dragged
	return Renumber(newSrc), Renumber(newDst), true
}

// ToggleVisible flips the visibility of id in place without touching order
func ToggleVisible[T ToggleItem[T]](items []T, id string) ([]T, bool) {
	i := IndexOf(items, id)
	if i < 0 {
		return items, false
	}
	out := slices.Clone(items)
	out[i] = out[i].WithVisible(!out[i].IsVisible())
	return out, true
}

// Visible filters out hidden items, as rendered in view mode
func Visible[T ToggleItem[T]](items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.IsVisible() {
			out = append(out, item)
		}
	}
	return out
}
