package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/shared"
	"github.com/desertthunder/tiledict/internal/tiles"
)

// tileHeight is the number of lines a rendered tile takes, borders included.
const tileHeight = 3

// TileStore persists the expanded flags of the board.
type TileStore interface {
	Save(ctx context.Context, items []models.Item) error
	Load(ctx context.Context) (map[string]bool, error)
}

// tilesScreen shows the board as rows of half-width and full-width tiles.
type tilesScreen struct {
	ctx    context.Context
	id     string
	title  string
	board  *tiles.Board
	store  TileStore
	logger *log.Logger
	keys   keyMap
	cursor string
	offset int
	width  int
	height int
	err    error

	// saving is set while a store write is in flight; pending asks for one more write of the latest
	// snapshot once it finishes. edited is set by the first local change and discards a late restore.
	saving  bool
	pending bool
	edited  bool
}

func newTilesScreen(ctx context.Context, count int, store TileStore, logger *log.Logger) ScreenFactory {
	return func(opts Options) Screen {
		s := &tilesScreen{
			ctx:    ctx,
			id:     shared.GenerateID(),
			title:  opts.Title,
			board:  tiles.NewBoard(count),
			store:  store,
			logger: logger,
			keys:   newKeyMap(),
			width:  80,
			height: 20,
		}
		if ordered := s.board.Ordered(); len(ordered) > 0 {
			s.cursor = ordered[0].ID
		}
		return s
	}
}

func (s *tilesScreen) ID() string    { return s.id }
func (s *tilesScreen) Title() string { return s.title }

// Init restores saved flags when a store is configured.
func (s *tilesScreen) Init() tea.Cmd {
	if s.store == nil {
		return nil
	}
	store, id := s.store, s.id
	return func() tea.Msg {
		state, err := store.Load(s.ctx)
		return tilesRestoredMsg(id, state, err)
	}
}

func (s *tilesScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.ensureVisible()
		return s, nil

	case tea.KeyMsg:
		return s.handleKeys(msg)

	case Msg:
		if msg.screen != s.id {
			return s, nil
		}
		switch msg.kind {
		case MsgTilesRestored:
			data := msg.data.(tilesRestored)
			if s.edited {
				s.logger.Debug("discarded saved tiles after local change")
				return s, nil
			}
			if data.err != nil {
				s.logger.Warn("failed to restore tiles", "error", data.err)
				s.err = data.err
				return s, nil
			}
			n := s.board.Restore(data.state)
			s.logger.Debug("restored tiles", "changed", n)
			s.ensureVisible()
		case MsgTilesSaved:
			s.saving = false
			if err, _ := msg.data.(error); err != nil {
				s.logger.Warn("failed to save tiles", "error", err)
				s.err = err
			}
			if s.pending {
				s.pending = false
				return s, s.save()
			}
		}
	}
	return s, nil
}

func (s *tilesScreen) handleKeys(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.quit):
		return s, tea.Quit
	case key.Matches(msg, s.keys.left):
		s.step(-1)
	case key.Matches(msg, s.keys.right):
		s.step(1)
	case key.Matches(msg, s.keys.up):
		s.moveRow(-1)
	case key.Matches(msg, s.keys.down):
		s.moveRow(1)
	case key.Matches(msg, s.keys.toggle):
		return s, s.toggle()
	case key.Matches(msg, s.keys.reset):
		return s, s.collapseAll()
	}
	return s, nil
}

// toggle flips the tile under the cursor. The cursor follows the item to its new position.
func (s *tilesScreen) toggle() tea.Cmd {
	if s.cursor == "" {
		return nil
	}
	item, err := s.board.Toggle(s.cursor)
	if err != nil {
		s.err = err
		return nil
	}
	s.logger.Debug("toggled tile", "id", item.ID, "expanded", item.Expanded)
	s.edited = true
	s.ensureVisible()
	return s.save()
}

func (s *tilesScreen) collapseAll() tea.Cmd {
	state := s.board.Expanded()
	for id := range state {
		state[id] = false
	}
	if s.board.Restore(state) == 0 {
		return nil
	}
	s.edited = true
	s.ensureVisible()
	return s.save()
}

// save writes the current flags. Writes run one at a time so the store never ends up with an older
// snapshot than the board.
func (s *tilesScreen) save() tea.Cmd {
	if s.store == nil {
		return nil
	}
	if s.saving {
		s.pending = true
		return nil
	}
	s.saving = true
	store, id, items := s.store, s.id, s.board.Items()
	return func() tea.Msg {
		return tilesSavedMsg(id, store.Save(s.ctx, items))
	}
}

// step moves the cursor along the packed order.
func (s *tilesScreen) step(delta int) {
	ordered := s.board.Ordered()
	i := slices.IndexFunc(ordered, func(item models.Item) bool { return item.ID == s.cursor })
	if i < 0 {
		return
	}
	i = min(max(i+delta, 0), len(ordered)-1)
	s.cursor = ordered[i].ID
	s.ensureVisible()
}

// moveRow moves the cursor to the same column of an adjacent row, or the last tile if that row is shorter.
func (s *tilesScreen) moveRow(delta int) {
	rows := s.board.Rows()
	row, col := locate(rows, s.cursor)
	if row < 0 {
		return
	}
	row = min(max(row+delta, 0), len(rows)-1)
	col = min(col, len(rows[row])-1)
	s.cursor = rows[row][col].ID
	s.ensureVisible()
}

// ensureVisible scrolls so the cursor row is on screen.
func (s *tilesScreen) ensureVisible() {
	row, _ := locate(s.board.Rows(), s.cursor)
	if row < 0 {
		s.offset = 0
		return
	}
	visible := s.visibleRows()
	if row < s.offset {
		s.offset = row
	}
	if row >= s.offset+visible {
		s.offset = row - visible + 1
	}
}

func (s *tilesScreen) visibleRows() int {
	// one line is reserved for the status line
	return max((s.height-1)/tileHeight, 1)
}

func locate(rows [][]models.Item, id string) (int, int) {
	for r, row := range rows {
		for c, item := range row {
			if item.ID == id {
				return r, c
			}
		}
	}
	return -1, -1
}

func (s *tilesScreen) View() string {
	rows := s.board.Rows()
	if len(rows) == 0 {
		return styles.help.Render("No tiles")
	}

	half := max(s.width/2, 8)
	end := min(s.offset+s.visibleRows(), len(rows))

	rendered := make([]string, 0, end-s.offset)
	for _, row := range rows[s.offset:end] {
		cells := make([]string, len(row))
		for i, item := range row {
			cells[i] = s.renderTile(item, half*item.Width())
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append(rendered, s.status(len(rows)))...)
}

// renderTile draws one tile occupying width columns, borders included.
func (s *tilesScreen) renderTile(item models.Item, width int) string {
	style := styles.tile
	if item.ID == s.cursor {
		style = styles.selected
	}

	inner := max(width-2-style.GetHorizontalPadding(), 1)
	label := item.ID
	if item.Expanded {
		label += " ■"
	}
	label = ansi.Truncate(label, inner, "…")
	if item.Expanded {
		label = styles.expanded.Render(label)
	}

	return style.Width(width - 2).Render(label)
}

func (s *tilesScreen) status(rows int) string {
	var parts []string
	if item, err := s.board.Get(s.cursor); err == nil {
		state := "collapsed"
		if item.Expanded {
			state = "expanded"
		}
		parts = append(parts, fmt.Sprintf("%s %s", item.ID, state))
	}
	parts = append(parts, fmt.Sprintf("%d tiles in %d rows", s.board.Len(), rows))

	line := styles.help.Render(strings.Join(parts, " · "))
	if s.err != nil {
		line += "  " + styles.err.Render(s.err.Error())
	}
	return line
}

func (s *tilesScreen) Help() []key.Binding {
	return []key.Binding{s.keys.left, s.keys.right, s.keys.up, s.keys.down, s.keys.toggle, s.keys.reset, s.keys.quit}
}
