package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/shared"
)

func quietLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

// collect runs cmd and every command nested in a batch, returning the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findMsg returns the first [Msg] of the given kind.
func findMsg(msgs []tea.Msg, kind MsgKind) (Msg, bool) {
	for _, m := range msgs {
		if msg, ok := m.(Msg); ok && msg.kind == kind {
			return msg, true
		}
	}
	return Msg{}, false
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func plain(s string) string {
	return ansi.Strip(s)
}

// memoryTileStore is an in-memory [TileStore].
type memoryTileStore struct {
	mu    sync.Mutex
	state map[string]bool
	saves int
	err   error
}

func (m *memoryTileStore) Save(ctx context.Context, items []models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.state == nil {
		m.state = make(map[string]bool)
	}
	for _, item := range items {
		m.state[item.ID] = item.Expanded
	}
	m.saves++
	return nil
}

func (m *memoryTileStore) Load(ctx context.Context) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]bool, len(m.state))
	for k, v := range m.state {
		out[k] = v
	}
	return out, nil
}

func TestNavigator(t *testing.T) {
	ctx := context.Background()

	newApp := func(t *testing.T) *Navigator {
		t.Helper()
		n, err := NewApp(ctx, AppOpts{Logger: quietLogger()})
		if err != nil {
			t.Fatalf("failed to create app: %v", err)
		}
		return n
	}

	t.Run("starts at configured root", func(t *testing.T) {
		n := newApp(t)
		if n.Depth() != 1 {
			t.Fatalf("expected depth 1, got %d", n.Depth())
		}
		if n.Top().Title() != "tiledict" {
			t.Errorf("expected root title tiledict, got %q", n.Top().Title())
		}

		cfg := shared.DefaultConfig()
		cfg.UI.Root = ScreenDict
		d, err := NewApp(ctx, AppOpts{Config: cfg, Logger: quietLogger()})
		if err != nil {
			t.Fatalf("failed to create app: %v", err)
		}
		if d.Top().Title() != "Dictionary" {
			t.Errorf("expected dictionary root, got %q", d.Top().Title())
		}
	})

	t.Run("unknown root", func(t *testing.T) {
		_, err := NewApp(ctx, AppOpts{Logger: quietLogger(), Root: "settings"})
		if !errors.Is(err, shared.ErrScreenNotFound) {
			t.Errorf("expected ErrScreenNotFound, got %v", err)
		}
	})

	t.Run("push and pop", func(t *testing.T) {
		n := newApp(t)

		n.Update(pushMsg(ScreenTiles, Options{Title: "Tiles!"}))
		if n.Depth() != 2 {
			t.Fatalf("expected depth 2, got %d", n.Depth())
		}
		if n.Top().Title() != "Tiles!" {
			t.Errorf("push should honor title option, got %q", n.Top().Title())
		}

		view := plain(n.View())
		if !strings.Contains(view, "Tiles!") || !strings.Contains(view, "tiledict") {
			t.Errorf("view should show title and breadcrumb, got %q", view)
		}

		_, cmd := n.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if cmd != nil {
			t.Error("popping a screen should not quit")
		}
		if n.Depth() != 1 {
			t.Errorf("expected depth 1 after esc, got %d", n.Depth())
		}

		_, cmd = n.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if !isQuit(cmd) {
			t.Error("esc at the root should quit")
		}
	})

	t.Run("pop message", func(t *testing.T) {
		n := newApp(t)
		n.Update(pushMsg(ScreenDict, Options{}))
		msgs := collect(Pop())
		if len(msgs) != 1 {
			t.Fatalf("expected one message, got %d", len(msgs))
		}
		n.Update(msgs[0])
		if n.Depth() != 1 {
			t.Errorf("expected depth 1, got %d", n.Depth())
		}
	})

	t.Run("push unknown screen", func(t *testing.T) {
		n := newApp(t)
		n.Update(pushMsg("nowhere", Options{}))

		if n.Depth() != 1 {
			t.Errorf("unknown screen should not be pushed")
		}
		if !strings.Contains(plain(n.View()), "screen not registered") {
			t.Errorf("expected error in view, got %q", plain(n.View()))
		}
	})

	t.Run("ctrl+c quits from any screen", func(t *testing.T) {
		n := newApp(t)
		n.Update(pushMsg(ScreenDict, Options{}))
		_, cmd := n.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if !isQuit(cmd) {
			t.Error("expected quit")
		}
	})

	t.Run("home menu pushes selected screen", func(t *testing.T) {
		n := newApp(t)
		n.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

		_, cmd := n.Update(tea.KeyMsg{Type: tea.KeyEnter})
		msg, ok := findMsg(collect(cmd), MsgPush)
		if !ok {
			t.Fatal("expected a push message")
		}

		n.Update(msg)
		if n.Top().Title() != "Two columns" {
			t.Errorf("expected tiles screen, got %q", n.Top().Title())
		}
	})

	t.Run("resize reaches pushed screens", func(t *testing.T) {
		n := newApp(t)
		n.Update(tea.WindowSizeMsg{Width: 40, Height: 30})
		n.Update(pushMsg(ScreenTiles, Options{}))

		s := n.Top().(*tilesScreen)
		if s.width != 40 || s.height != 30-chrome {
			t.Errorf("expected 40x%d, got %dx%d", 30-chrome, s.width, s.height)
		}
	})
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Route{Name: "a", Title: "A"})
	reg.Register(Route{Name: "b", Title: "B"})
	reg.Register(Route{Name: "a", Title: "A2"})

	routes := reg.Routes()
	if len(routes) != 2 || routes[0].Title != "A2" || routes[1].Name != "b" {
		t.Errorf("unexpected routes: %+v", routes)
	}

	if _, ok := reg.Lookup("c"); ok {
		t.Error("expected lookup miss")
	}
}
