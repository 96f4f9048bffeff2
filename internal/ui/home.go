package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tiledict/internal/shared"
)

var _ list.DefaultItem = routeItem{}

// routeItem wraps a [Route] to implement [list.Item].
type routeItem struct {
	route Route
}

func (i routeItem) FilterValue() string { return i.route.Title }
func (i routeItem) Title() string       { return i.route.Title }
func (i routeItem) Description() string { return i.route.Description }

// homeScreen lists every other registered screen.
type homeScreen struct {
	id    string
	title string
	menu  list.Model
	keys  keyMap
}

func newHomeScreen(reg *Registry, self string) ScreenFactory {
	return func(opts Options) Screen {
		var items []list.Item
		for _, route := range reg.Routes() {
			if route.Name == self {
				continue
			}
			items = append(items, routeItem{route: route})
		}

		menu := list.New(items, list.NewDefaultDelegate(), 80, 20)
		menu.SetShowTitle(false)
		menu.SetShowHelp(false)
		menu.SetShowStatusBar(false)
		menu.SetFilteringEnabled(false)
		menu.DisableQuitKeybindings()

		return &homeScreen{id: shared.GenerateID(), title: opts.Title, menu: menu, keys: newKeyMap()}
	}
}

func (s *homeScreen) ID() string    { return s.id }
func (s *homeScreen) Title() string { return s.title }
func (s *homeScreen) Init() tea.Cmd { return nil }

func (s *homeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.menu.SetSize(msg.Width, msg.Height)
		return s, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.quit):
			return s, tea.Quit
		case key.Matches(msg, s.keys.enter):
			if item, ok := s.menu.SelectedItem().(routeItem); ok {
				return s, Push(item.route.Name, item.route.Title)
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *homeScreen) View() string { return s.menu.View() }

func (s *homeScreen) Help() []key.Binding {
	return []key.Binding{s.keys.up, s.keys.down, s.keys.enter, s.keys.quit}
}
