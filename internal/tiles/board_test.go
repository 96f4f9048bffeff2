package tiles

import (
	"errors"
	"testing"

	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/shared"
)

func ids(items []models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBoard(t *testing.T) {
	t.Run("NewBoard", func(t *testing.T) {
		b := NewBoard(DefaultCount)

		if b.Len() != 20 {
			t.Fatalf("expected 20 items, got %d", b.Len())
		}

		items := b.Items()
		if items[0].ID != "Item1" || items[19].ID != "Item20" {
			t.Errorf("unexpected ids: first %s last %s", items[0].ID, items[19].ID)
		}

		if !equalIDs(ids(b.Ordered()), ids(items)) {
			t.Error("all-collapsed board should keep canonical order")
		}

		if len(b.Rows()) != 10 {
			t.Errorf("expected 10 rows, got %d", len(b.Rows()))
		}
	})

	t.Run("Toggle repacks", func(t *testing.T) {
		b := NewBoard(4)

		item, err := b.Toggle("Item2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !item.Expanded {
			t.Error("toggled item should be expanded")
		}

		want := []string{"Item1", "Item3", "Item2", "Item4"}
		if got := ids(b.Ordered()); !equalIDs(got, want) {
			t.Errorf("Ordered() = %v, want %v", got, want)
		}

		if got := ids(b.Items()); !equalIDs(got, []string{"Item1", "Item2", "Item3", "Item4"}) {
			t.Errorf("canonical order should not change, got %v", got)
		}
	})

	t.Run("Toggle twice restores order", func(t *testing.T) {
		b := NewBoard(5)
		before := ids(b.Ordered())

		for range 2 {
			if _, err := b.Toggle("Item1"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if got := ids(b.Ordered()); !equalIDs(got, before) {
			t.Errorf("Ordered() = %v, want %v", got, before)
		}
	})

	t.Run("Toggle unknown item", func(t *testing.T) {
		b := NewBoard(2)
		if _, err := b.Toggle("Item9"); !errors.Is(err, shared.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
		if _, err := b.Get("nope"); !errors.Is(err, shared.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("snapshots are copies", func(t *testing.T) {
		b := NewBoard(2)
		ordered := b.Ordered()
		ordered[0].Expanded = true

		item, _ := b.Get("Item1")
		if item.Expanded {
			t.Error("mutating a snapshot should not affect the board")
		}
	})

	t.Run("Expanded and Restore", func(t *testing.T) {
		b := NewBoard(4)
		if _, err := b.Toggle("Item1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		saved := b.Expanded()

		other := NewBoard(4)
		changed := other.Restore(saved)
		if changed != 1 {
			t.Errorf("expected 1 change, got %d", changed)
		}
		if !equalIDs(ids(other.Ordered()), ids(b.Ordered())) {
			t.Errorf("restored order %v, want %v", ids(other.Ordered()), ids(b.Ordered()))
		}

		if n := other.Restore(map[string]bool{"Ghost": true}); n != 0 {
			t.Errorf("unknown ids should be ignored, got %d changes", n)
		}
	})

	t.Run("empty board", func(t *testing.T) {
		b := NewBoard(0)
		if len(b.Ordered()) != 0 || len(b.Rows()) != 0 {
			t.Error("empty board should have no items or rows")
		}
	})

	t.Run("from items", func(t *testing.T) {
		items := []models.Item{models.NewItem("A"), {ID: "B", Expanded: true}, models.NewItem("C")}
		b, err := NewBoardFromItems(items)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := ids(b.Ordered()); !equalIDs(got, []string{"A", "C", "B"}) {
			t.Errorf("expected A C B, got %v", got)
		}

		items[0].Expanded = true
		if item, _ := b.Get("A"); item.Expanded {
			t.Error("board should not share the caller's slice")
		}
	})

	t.Run("from items rejects duplicate ids", func(t *testing.T) {
		_, err := NewBoardFromItems([]models.Item{models.NewItem("A"), models.NewItem("B"), {ID: "A", Expanded: true}})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
