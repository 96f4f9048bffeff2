package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tiledict/internal/dict"
	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/shared"
)

var _ list.DefaultItem = wordItem{}

// wordItem wraps [models.Word] to implement [list.Item].
type wordItem struct {
	word models.Word
}

func (i wordItem) FilterValue() string { return i.word.Bare }
func (i wordItem) Title() string       { return fmt.Sprintf("%s [%s]", i.word.Bare, i.word.Accented) }
func (i wordItem) Description() string { return fmt.Sprintf("%s %s", i.word.Type, i.word.Level) }

// WordStore persists words added from the dictionary screen.
type WordStore interface {
	Create(ctx context.Context, w *models.Word) error
}

// dictScreen is the filterable word list.
type dictScreen struct {
	ctx      context.Context
	id       string
	title    string
	dict     *dict.Dictionary
	source   dict.Source
	store    WordStore
	debounce time.Duration
	logger   *log.Logger
	keys     keyMap
	input    textinput.Model
	words    list.Model
	spinner  spinner.Model
	seq      int
	err      error
}

func newDictScreen(ctx context.Context, src dict.Source, store WordStore, debounce time.Duration, logger *log.Logger) ScreenFactory {
	return func(opts Options) Screen {
		ti := textinput.New()
		ti.Placeholder = "Filter..."
		ti.Prompt = "/ "
		ti.Focus()

		delegate := list.NewDefaultDelegate()
		words := list.New(nil, delegate, 80, 16)
		words.SetShowTitle(false)
		words.SetShowHelp(false)
		words.SetFilteringEnabled(false)
		words.DisableQuitKeybindings()

		sp := spinner.New()
		sp.Spinner = spinner.Dot
		sp.Style = styles.warn

		return &dictScreen{
			ctx:      ctx,
			id:       shared.GenerateID(),
			title:    opts.Title,
			dict:     dict.New(),
			source:   src,
			store:    store,
			debounce: debounce,
			logger:   logger,
			keys:     newKeyMap(),
			input:    ti,
			words:    words,
			spinner:  sp,
		}
	}
}

func (s *dictScreen) ID() string    { return s.id }
func (s *dictScreen) Title() string { return s.title }
func (s *dictScreen) Init() tea.Cmd { return textinput.Blink }

func (s *dictScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.input.Width = max(msg.Width-4, 1)
		// input line, blank line and the status line
		s.words.SetSize(msg.Width, max(msg.Height-3, 1))
		return s, nil

	case spinner.TickMsg:
		if !s.dict.IsLoading() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKeys(msg)

	case Msg:
		if msg.screen != s.id {
			return s, nil
		}
		switch msg.kind {
		case MsgWordsLoaded:
			data := msg.data.(wordsLoaded)
			s.dict.FinishLoad(data.words, data.err)
			if data.err != nil {
				s.logger.Error("failed to load words", "error", data.err)
				return s, nil
			}
			s.logger.Info("loaded words", "count", len(data.words))
			return s, s.refresh()
		case MsgFilterSettled:
			data := msg.data.(filterSettled)
			if data.seq != s.seq {
				return s, nil
			}
			return s, s.applyFilter(data.query)
		case MsgWordAdded:
			data := msg.data.(wordAdded)
			if data.err != nil {
				s.logger.Error("failed to add word", "bare", data.word.Bare, "error", data.err)
				s.err = data.err
				return s, nil
			}
			s.err = nil
			s.dict.Add(data.word)
			s.logger.Info("added word", "id", data.word.ID, "bare", data.word.Bare)
			return s, s.refresh()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *dictScreen) handleKeys(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		s.words, cmd = s.words.Update(msg)
		return s, cmd
	}

	if key.Matches(msg, s.keys.load) && s.dict.Len() == 0 {
		return s, s.load()
	}
	if key.Matches(msg, s.keys.add) && s.dict.Len() > 0 {
		return s, s.addWord(strings.TrimSpace(s.input.Value()))
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if after := s.input.Value(); after != before {
		return s, tea.Batch(cmd, s.scheduleFilter(after))
	}
	return s, cmd
}

// load starts reading the word source unless a load is already running.
func (s *dictScreen) load() tea.Cmd {
	if err := s.dict.BeginLoad(); err != nil {
		s.logger.Debug("load ignored", "error", err)
		return nil
	}
	ctx, src, id := s.ctx, s.source, s.id
	fetch := func() tea.Msg {
		words, err := dict.Load(ctx, src)
		return wordsLoadedMsg(id, words, err)
	}
	return tea.Batch(s.spinner.Tick, fetch)
}

// addWord inserts the filter text as a new word, writing it to the store first when one is configured.
func (s *dictScreen) addWord(bare string) tea.Cmd {
	if bare == "" {
		return nil
	}
	ctx, store, id := s.ctx, s.store, s.id
	word := models.Word{Bare: bare, Accented: bare}
	return func() tea.Msg {
		if store == nil {
			return wordAddedMsg(id, word, nil)
		}
		err := store.Create(ctx, &word)
		return wordAddedMsg(id, word, err)
	}
}

// scheduleFilter applies query once it has been stable for the debounce period. Each keystroke bumps the
// sequence number so only the tick of the latest one takes effect.
func (s *dictScreen) scheduleFilter(query string) tea.Cmd {
	s.seq++
	if s.debounce <= 0 {
		return s.applyFilter(query)
	}
	seq, id := s.seq, s.id
	return tea.Tick(s.debounce, func(time.Time) tea.Msg {
		return filterSettledMsg(id, seq, query)
	})
}

func (s *dictScreen) applyFilter(query string) tea.Cmd {
	s.dict.SetFilter(query)
	return s.refresh()
}

// refresh rebuilds the list items from the filtered words.
func (s *dictScreen) refresh() tea.Cmd {
	filtered := s.dict.Filtered()
	items := make([]list.Item, len(filtered))
	for i, w := range filtered {
		items[i] = wordItem{word: w}
	}
	s.words.ResetSelected()
	return s.words.SetItems(items)
}

func (s *dictScreen) View() string {
	header := s.input.View()
	if s.dict.IsLoading() {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", s.spinner.View(), styles.warn.Render(" Loading..."))
	}

	var body string
	switch {
	case s.dict.Len() == 0:
		body = styles.button.Render("Load data")
		if s.dict.IsLoading() {
			body = styles.help.Render("Loading...")
		}
	case len(s.words.Items()) == 0:
		body = styles.help.Render(fmt.Sprintf("No words match %q", s.dict.Filter()))
	default:
		body = s.words.View()
	}

	statusStyle := styles.help
	if len(s.words.Items()) > 0 {
		statusStyle = styles.ok
	}
	status := statusStyle.Render(fmt.Sprintf("%d of %d words", len(s.words.Items()), s.dict.Len()))
	if err := s.dict.Err(); err != nil {
		status = styles.err.Render(fmt.Sprintf("Load failed: %v", err))
	} else if s.err != nil {
		status = styles.err.Render(fmt.Sprintf("Add failed: %v", s.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, status)
}

func (s *dictScreen) Help() []key.Binding {
	if s.dict.Len() == 0 {
		return []key.Binding{s.keys.load}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		s.keys.add,
	}
}
