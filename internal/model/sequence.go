package model

// Helpers over item sequences. Each returns a fresh slice and true when it
// changed something, or the input and false when the arguments were out of
// range. None of them writes to its input.

func replaceAt[T any](items []T, index int, v T) ([]T, bool) {
	if index < 0 || index >= len(items) {
		return items, false
	}
	out := cloneSlice(items)
	out[index] = v
	return out, true
}

func appendItem[T any](items []T, v T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, v)
}

// insertAfter places v right after index. index -1 inserts at the front.
func insertAfter[T any](items []T, index int, v T) ([]T, bool) {
	if index < -1 || index >= len(items) {
		return items, false
	}
	at := index + 1
	out := make([]T, 0, len(items)+1)
	out = append(out, items[:at]...)
	out = append(out, v)
	out = append(out, items[at:]...)
	return out, true
}

// moveStep swaps the item at index with its neighbour in direction dir
// (-1 or +1). Moves past either end are ignored, not clamped or wrapped.
func moveStep[T any](items []T, index, dir int) ([]T, bool) {
	if dir != -1 && dir != 1 {
		return items, false
	}
	j := index + dir
	if index < 0 || index >= len(items) || j < 0 || j >= len(items) {
		return items, false
	}
	out := cloneSlice(items)
	out[index], out[j] = out[j], out[index]
	return out, true
}

// reorder extracts the item at from and reinserts it at to, where to is an
// index into the sequence after the extraction.
func reorder[T any](items []T, from, to int) ([]T, bool) {
	n := len(items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return items, false
	}
	if from == to {
		return items, false
	}
	moved := items[from]
	rest := make([]T, 0, n)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)
	out := make([]T, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out, true
}

func removeAt[T any](items []T, index int) ([]T, bool) {
	if index < 0 || index >= len(items) {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out, true
}
