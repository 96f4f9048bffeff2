// Package tiles holds the state of the two-column tile board.
//
// The board keeps the canonical item list and the packed order derived from it. Every mutation goes
// through [Board.Toggle] or [Board.Restore], which recompute the packed order from a fresh snapshot, so
// readers never observe a stale arrangement.
package tiles

import (
	"fmt"
	"slices"

	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/packer"
	"github.com/desertthunder/tiledict/internal/shared"
)

// DefaultCount is the number of tiles a board starts with.
const DefaultCount = 20

// Board is the tile list plus its cached packed order.
type Board struct {
	items   []models.Item
	index   map[string]int
	ordered []models.Item
}

// NewBoard creates a board of count collapsed items named Item1..ItemN.
func NewBoard(count int) *Board {
	items := make([]models.Item, count)
	for i := range items {
		items[i] = models.NewItem(models.ItemID(i + 1))
	}
	return newBoard(items)
}

// NewBoardFromItems creates a board over a copy of items, keeping their order as the canonical order.
// Ids must be unique; a repeated id returns [shared.ErrInvalidInput].
func NewBoardFromItems(items []models.Item) (*Board, error) {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return nil, fmt.Errorf("%w: duplicate item id %q", shared.ErrInvalidInput, item.ID)
		}
		seen[item.ID] = true
	}
	return newBoard(items), nil
}

func newBoard(items []models.Item) *Board {
	b := &Board{
		items: slices.Clone(items),
		index: make(map[string]int, len(items)),
	}
	for i, item := range b.items {
		b.index[item.ID] = i
	}
	b.recompute()
	return b
}

// Len returns the number of items on the board.
func (b *Board) Len() int { return len(b.items) }

// Items returns the items in canonical (insertion) order.
func (b *Board) Items() []models.Item { return slices.Clone(b.items) }

// Ordered returns the items in packed order.
func (b *Board) Ordered() []models.Item { return slices.Clone(b.ordered) }

// Rows returns the packed order split into visual rows.
func (b *Board) Rows() [][]models.Item { return packer.Rows(b.Ordered()) }

// Get returns the item with the given id.
func (b *Board) Get(id string) (models.Item, error) {
	i, ok := b.index[id]
	if !ok {
		return models.Item{}, fmt.Errorf("%w: %s", shared.ErrItemNotFound, id)
	}
	return b.items[i], nil
}

// Toggle flips the expanded flag of the item with the given id and repacks the board.
func (b *Board) Toggle(id string) (models.Item, error) {
	i, ok := b.index[id]
	if !ok {
		return models.Item{}, fmt.Errorf("%w: %s", shared.ErrItemNotFound, id)
	}
	b.items[i] = b.items[i].Toggled()
	b.recompute()
	return b.items[i], nil
}

// Expanded returns the expanded flag of every item, keyed by id.
func (b *Board) Expanded() map[string]bool {
	state := make(map[string]bool, len(b.items))
	for _, item := range b.items {
		state[item.ID] = item.Expanded
	}
	return state
}

// Restore applies saved expanded flags. Ids not on the board are ignored, items without an entry keep
// their current flag. It reports how many items changed.
func (b *Board) Restore(state map[string]bool) int {
	changed := 0
	for id, expanded := range state {
		i, ok := b.index[id]
		if !ok || b.items[i].Expanded == expanded {
			continue
		}
		b.items[i].Expanded = expanded
		changed++
	}
	if changed > 0 {
		b.recompute()
	}
	return changed
}

// recompute derives the packed order from an immutable snapshot of the items.
func (b *Board) recompute() {
	b.ordered = packer.Pack(slices.Clone(b.items))
}
