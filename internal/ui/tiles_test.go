package ui

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tiledict/internal/models"
)

func newTestTiles(t *testing.T, count int, store TileStore) *tilesScreen {
	t.Helper()
	s := newTilesScreen(context.Background(), count, store, quietLogger())(Options{Title: "Tiles"})
	return s.(*tilesScreen)
}

func orderedIDs(s *tilesScreen) []string {
	ordered := s.board.Ordered()
	ids := make([]string, len(ordered))
	for i, item := range ordered {
		ids[i] = item.ID
	}
	return ids
}

func TestTilesScreen(t *testing.T) {
	t.Run("cursor starts on first tile", func(t *testing.T) {
		s := newTestTiles(t, 4, nil)
		if s.cursor != "Item1" {
			t.Errorf("expected cursor on Item1, got %q", s.cursor)
		}
	})

	t.Run("toggle repacks and cursor follows", func(t *testing.T) {
		s := newTestTiles(t, 4, nil)
		s.Update(tea.KeyMsg{Type: tea.KeyRight})
		if s.cursor != "Item2" {
			t.Fatalf("expected cursor on Item2, got %q", s.cursor)
		}

		s.Update(tea.KeyMsg{Type: tea.KeyEnter})
		want := []string{"Item1", "Item3", "Item2", "Item4"}
		if got := orderedIDs(s); !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if s.cursor != "Item2" {
			t.Errorf("cursor should stay on toggled item, got %q", s.cursor)
		}

		s.Update(tea.KeyMsg{Type: tea.KeyLeft})
		if s.cursor != "Item3" {
			t.Errorf("expected Item3 before Item2 in packed order, got %q", s.cursor)
		}

		view := plain(s.View())
		if !strings.Contains(view, "Item2 ■") {
			t.Errorf("expanded tile should be marked, got %q", view)
		}
		if !strings.Contains(view, "4 tiles in 3 rows") {
			t.Errorf("expected status line, got %q", view)
		}
	})

	t.Run("cursor stays within bounds", func(t *testing.T) {
		s := newTestTiles(t, 2, nil)
		s.Update(tea.KeyMsg{Type: tea.KeyLeft})
		if s.cursor != "Item1" {
			t.Errorf("expected Item1, got %q", s.cursor)
		}
		s.Update(tea.KeyMsg{Type: tea.KeyRight})
		s.Update(tea.KeyMsg{Type: tea.KeyRight})
		if s.cursor != "Item2" {
			t.Errorf("expected Item2, got %q", s.cursor)
		}
	})

	t.Run("row movement", func(t *testing.T) {
		s := newTestTiles(t, 4, nil)
		s.Update(tea.KeyMsg{Type: tea.KeyDown})
		if s.cursor != "Item3" {
			t.Errorf("expected Item3 below Item1, got %q", s.cursor)
		}

		s.Update(tea.KeyMsg{Type: tea.KeyRight})
		s.Update(tea.KeyMsg{Type: tea.KeyUp})
		if s.cursor != "Item2" {
			t.Errorf("expected Item2 above Item4, got %q", s.cursor)
		}
	})

	t.Run("collapse all", func(t *testing.T) {
		s := newTestTiles(t, 4, nil)
		s.Update(tea.KeyMsg{Type: tea.KeyEnter})
		s.Update(runes("r"))

		for _, item := range s.board.Items() {
			if item.Expanded {
				t.Errorf("%s should be collapsed", item.ID)
			}
		}
	})

	t.Run("scrolls to the cursor", func(t *testing.T) {
		s := newTestTiles(t, 20, nil)
		s.Update(tea.WindowSizeMsg{Width: 40, Height: 7})
		for range 10 {
			s.Update(tea.KeyMsg{Type: tea.KeyDown})
		}
		if s.cursor != "Item19" {
			t.Fatalf("expected Item19 on the last row, got %q", s.cursor)
		}
		if s.offset != 8 {
			t.Errorf("expected offset 8 with two visible rows, got %d", s.offset)
		}
		if view := plain(s.View()); strings.Contains(view, "Item1 ") {
			t.Errorf("first row should be scrolled away, got %q", view)
		}
	})

	t.Run("empty board", func(t *testing.T) {
		s := newTestTiles(t, 0, nil)
		s.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if !strings.Contains(plain(s.View()), "No tiles") {
			t.Errorf("expected empty view, got %q", plain(s.View()))
		}
	})

	t.Run("persists toggles", func(t *testing.T) {
		store := &memoryTileStore{}
		s := newTestTiles(t, 4, store)

		_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
		msg, ok := findMsg(collect(cmd), MsgTilesSaved)
		if !ok {
			t.Fatal("expected a save result")
		}
		s.Update(msg)

		if store.saves != 1 || !store.state["Item1"] {
			t.Errorf("expected Item1 saved as expanded, got %v", store.state)
		}
		if s.err != nil {
			t.Errorf("unexpected error: %v", s.err)
		}
	})

	t.Run("saves run one at a time", func(t *testing.T) {
		store := &memoryTileStore{}
		s := newTestTiles(t, 4, store)

		_, first := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
		_, second := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if first == nil {
			t.Fatal("expected a save for the first toggle")
		}
		if second != nil {
			t.Fatal("second save should wait for the first one")
		}

		msg, _ := findMsg(collect(first), MsgTilesSaved)
		if !store.state["Item1"] {
			t.Fatalf("first snapshot should have Item1 expanded, got %v", store.state)
		}

		_, next := s.Update(msg)
		if next == nil {
			t.Fatal("expected the latest snapshot to be saved after the first write")
		}
		msg, _ = findMsg(collect(next), MsgTilesSaved)
		if _, cmd := s.Update(msg); cmd != nil {
			t.Error("no further save expected")
		}

		item, _ := s.board.Get("Item1")
		if store.saves != 2 || store.state["Item1"] != item.Expanded {
			t.Errorf("store %v (saves %d) disagrees with board Item1 expanded=%v", store.state, store.saves, item.Expanded)
		}
	})

	t.Run("late restore does not undo local toggles", func(t *testing.T) {
		store := &memoryTileStore{state: map[string]bool{"Item2": true}}
		s := newTestTiles(t, 4, store)

		restore := s.Init()
		_, save := s.Update(tea.KeyMsg{Type: tea.KeyEnter})

		msg, ok := findMsg(collect(restore), MsgTilesRestored)
		if !ok {
			t.Fatal("expected a restore result")
		}
		s.Update(msg)

		if item, _ := s.board.Get("Item1"); !item.Expanded {
			t.Error("local toggle of Item1 should survive the restore")
		}
		if item, _ := s.board.Get("Item2"); item.Expanded {
			t.Error("restore arriving after a local toggle should be discarded")
		}

		saved, _ := findMsg(collect(save), MsgTilesSaved)
		s.Update(saved)
		if !store.state["Item1"] || store.state["Item2"] {
			t.Errorf("expected the board to be persisted, got %v", store.state)
		}
	})

	t.Run("restores saved state on init", func(t *testing.T) {
		store := &memoryTileStore{state: map[string]bool{"Item2": true}}
		s := newTestTiles(t, 4, store)

		msg, ok := findMsg(collect(s.Init()), MsgTilesRestored)
		if !ok {
			t.Fatal("expected a restore result")
		}
		s.Update(msg)

		item, err := s.board.Get("Item2")
		if err != nil || !item.Expanded {
			t.Errorf("expected Item2 restored as expanded, got %+v (%v)", item, err)
		}
	})

	t.Run("store failure is shown", func(t *testing.T) {
		store := &memoryTileStore{err: errors.New("disk full")}
		s := newTestTiles(t, 4, store)

		_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
		msg, _ := findMsg(collect(cmd), MsgTilesSaved)
		s.Update(msg)

		if !strings.Contains(plain(s.View()), "disk full") {
			t.Errorf("expected error in status line, got %q", plain(s.View()))
		}
	})

	t.Run("ignores results for other screens", func(t *testing.T) {
		s := newTestTiles(t, 4, nil)
		s.Update(tilesRestoredMsg("someone-else", map[string]bool{"Item1": true}, nil))

		if item, _ := s.board.Get("Item1"); item.Expanded {
			t.Error("foreign restore should be ignored")
		}
	})
}

func TestLocate(t *testing.T) {
	rows := [][]models.Item{
		{models.NewItem("A"), models.NewItem("B")},
		{{ID: "C", Expanded: true}},
	}

	if r, c := locate(rows, "B"); r != 0 || c != 1 {
		t.Errorf("expected (0,1), got (%d,%d)", r, c)
	}
	if r, c := locate(rows, "C"); r != 1 || c != 0 {
		t.Errorf("expected (1,0), got (%d,%d)", r, c)
	}
	if r, _ := locate(rows, "Z"); r != -1 {
		t.Errorf("expected -1 for missing id, got %d", r)
	}
}
