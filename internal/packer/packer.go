// Package packer orders half-row and full-row items so that partially filled rows are completed by pulling
// the first compatible later item forward.
//
// A row holds [RowCapacity] width units. [Pack] walks the input greedily: it keeps an in-progress run,
// takes the first remaining item that still fits, and flushes the run once it is full. When nothing fits
// (a single unit is pending and only full-width items remain) the rest of the input is emitted in its
// original order followed by the pending run.
package packer

import "slices"

// RowCapacity is the width of one visual row.
const RowCapacity = 2

// Sized is anything with a layout width, 1 for half a row and 2 for a full row.
type Sized interface {
	Width() int
}

// TotalWidth sums the widths of items.
func TotalWidth[T Sized](items []T) int {
	total := 0
	for _, item := range items {
		total += item.Width()
	}
	return total
}

// Pack returns a reordering of items containing exactly the same elements, grouped into runs that fill
// rows whenever possible. The input slice is not modified.
func Pack[T Sized](items []T) []T {
	remaining := slices.Clone(items)
	result := make([]T, 0, len(items))
	var current []T

	for len(remaining) > 0 {
		width := TotalWidth(current)
		idx := slices.IndexFunc(remaining, func(item T) bool {
			return width+item.Width() <= RowCapacity
		})

		if idx < 0 {
			result = append(result, remaining...)
			result = append(result, current...)
			current = current[:0]
			break
		}

		current = append(current, remaining[idx])
		remaining = slices.Delete(remaining, idx, idx+1)

		if TotalWidth(current) >= RowCapacity {
			result = append(result, current...)
			current = current[:0]
		}
	}

	if len(current) > 0 {
		result = append(result, current...)
	}
	return result
}

// Rows splits items into visual rows the way a wrapping row layout places them: an item starts a new row
// when it does not fit beside what is already there, and a row closes once it reaches [RowCapacity].
func Rows[T Sized](items []T) [][]T {
	var rows [][]T
	var row []T
	width := 0

	for _, item := range items {
		w := item.Width()
		if len(row) > 0 && width+w > RowCapacity {
			rows = append(rows, row)
			row, width = nil, 0
		}

		row = append(row, item)
		width += w

		if width >= RowCapacity {
			rows = append(rows, row)
			row, width = nil, 0
		}
	}

	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// IsTight reports whether items already form consecutive full rows, with at most one trailing half row.
// Packing a tight sequence returns it unchanged.
func IsTight[T Sized](items []T) bool {
	rows := Rows(items)
	for i, row := range rows {
		if TotalWidth(row) != RowCapacity && i != len(rows)-1 {
			return false
		}
	}
	return true
}
