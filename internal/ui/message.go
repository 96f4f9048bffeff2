package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tiledict/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
//
// screen is the id of the screen a result belongs to; it is empty for navigation requests.
type Msg struct {
	kind   MsgKind
	screen string
	data   any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPush MsgKind = iota
	MsgPop
	MsgWordsLoaded
	MsgFilterSettled
	MsgTilesRestored
	MsgTilesSaved
	MsgWordAdded
)

type pushRequest struct {
	name string
	opts Options
}

type wordsLoaded struct {
	words []models.Word
	err   error
}

type filterSettled struct {
	seq   int
	query string
}

type wordAdded struct {
	word models.Word
	err  error
}

type tilesRestored struct {
	state map[string]bool
	err   error
}

// pushMsg is the constructor for [MsgPush]
func pushMsg(name string, opts Options) Msg {
	return Msg{kind: MsgPush, data: pushRequest{name: name, opts: opts}}
}

// popMsg is the constructor for [MsgPop]
func popMsg() Msg {
	return Msg{kind: MsgPop}
}

// wordsLoadedMsg is the constructor for [MsgWordsLoaded]
func wordsLoadedMsg(screen string, words []models.Word, err error) Msg {
	return Msg{kind: MsgWordsLoaded, screen: screen, data: wordsLoaded{words: words, err: err}}
}

// filterSettledMsg is the constructor for [MsgFilterSettled]
func filterSettledMsg(screen string, seq int, query string) Msg {
	return Msg{kind: MsgFilterSettled, screen: screen, data: filterSettled{seq: seq, query: query}}
}

// tilesRestoredMsg is the constructor for [MsgTilesRestored]
func tilesRestoredMsg(screen string, state map[string]bool, err error) Msg {
	return Msg{kind: MsgTilesRestored, screen: screen, data: tilesRestored{state: state, err: err}}
}

// tilesSavedMsg is the constructor for [MsgTilesSaved]
func tilesSavedMsg(screen string, err error) Msg {
	return Msg{kind: MsgTilesSaved, screen: screen, data: err}
}

// wordAddedMsg is the constructor for [MsgWordAdded]
func wordAddedMsg(screen string, word models.Word, err error) Msg {
	return Msg{kind: MsgWordAdded, screen: screen, data: wordAdded{word: word, err: err}}
}

// Push returns a command asking the navigator to open the named screen.
func Push(name, title string) tea.Cmd {
	return func() tea.Msg { return pushMsg(name, Options{Title: title}) }
}

// Pop returns a command asking the navigator to close the top screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return popMsg() }
}
