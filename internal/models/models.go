// package models defines the data model for the tile board and word list
package models

import "fmt"

const (
	UnitWidth     = 1 // Layout weight of a collapsed item, two fit per row
	ExpandedWidth = 2 // Layout weight of an expanded item, fills a row alone
	RowWidth      = 2 // Width of one visual row
)

// Item is a tile that can be toggled between half-row and full-row width.
type Item struct {
	ID       string `json:"id"`
	Expanded bool   `json:"expanded"`
}

// NewItem creates a collapsed item with the given id.
func NewItem(id string) Item {
	return Item{ID: id}
}

// ItemID returns the conventional id of the n-th (1-based) item, e.g. "Item3".
func ItemID(n int) string {
	return fmt.Sprintf("Item%d", n)
}

// Width is the layout weight of the item. It depends on nothing but [Item.Expanded].
func (i Item) Width() int {
	if i.Expanded {
		return ExpandedWidth
	}
	return UnitWidth
}

// Toggled returns a copy of the item with the expanded flag flipped.
func (i Item) Toggled() Item {
	i.Expanded = !i.Expanded
	return i
}

// Word is one record of the words.json asset.
type Word struct {
	ID       int    `json:"id"`
	Bare     string `json:"bare"`
	Accented string `json:"accented"`
	UsageEN  string `json:"usage_en"`
	Type     string `json:"type"`
	Level    string `json:"level"`
}

// Validate checks that the word can be listed and filtered.
func (w Word) Validate() error {
	if w.Bare == "" {
		return fmt.Errorf("word %d: bare form is required", w.ID)
	}
	return nil
}
