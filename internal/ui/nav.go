package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tiledict/internal/shared"
)

// chrome is the number of lines the navigator draws around a screen: title bar (with its margin) and help.
const chrome = 4

// Screen is one entry of the navigation stack.
type Screen interface {
	ID() string
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	Help() []key.Binding
}

// Options are passed to a screen when it is pushed.
type Options struct {
	Title string
}

// ScreenFactory builds a fresh screen instance.
type ScreenFactory func(opts Options) Screen

// Route is a named, registered screen.
type Route struct {
	Name        string
	Title       string
	Description string
	New         ScreenFactory
}

// Registry maps screen names to their factories, remembering registration order.
type Registry struct {
	routes map[string]Route
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{routes: make(map[string]Route)}
}

// Register adds or replaces a route.
func (r *Registry) Register(route Route) {
	if _, ok := r.routes[route.Name]; !ok {
		r.order = append(r.order, route.Name)
	}
	r.routes[route.Name] = route
}

// Lookup finds a route by name.
func (r *Registry) Lookup(name string) (Route, bool) {
	route, ok := r.routes[name]
	return route, ok
}

// Routes returns every route in registration order.
func (r *Registry) Routes() []Route {
	routes := make([]Route, 0, len(r.order))
	for _, name := range r.order {
		routes = append(routes, r.routes[name])
	}
	return routes
}

// Navigator is the root [tea.Model]: a stack of screens with a title bar and contextual help.
type Navigator struct {
	registry *Registry
	stack    []Screen
	width    int
	height   int
	help     help.Model
	keys     keyMap
	logger   *log.Logger
	err      error
}

var _ tea.Model = (*Navigator)(nil)

// NewNavigator creates a navigator whose stack starts with the named root screen.
func NewNavigator(reg *Registry, root string, opts Options, logger *log.Logger) (*Navigator, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	n := &Navigator{
		registry: reg,
		help:     help.New(),
		keys:     newKeyMap(),
		logger:   logger,
	}
	if _, err := n.Push(root, opts); err != nil {
		return nil, err
	}
	return n, nil
}

// Push builds the named screen and puts it on top of the stack, returning its init command.
func (n *Navigator) Push(name string, opts Options) (tea.Cmd, error) {
	route, ok := n.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrScreenNotFound, name)
	}
	if opts.Title == "" {
		opts.Title = route.Title
	}

	screen := route.New(opts)
	n.stack = append(n.stack, screen)
	n.logger.Debug("push screen", "name", name, "title", opts.Title, "depth", len(n.stack))

	cmds := []tea.Cmd{screen.Init()}
	if n.width > 0 {
		cmds = append(cmds, n.resize(len(n.stack)-1))
	}
	return tea.Batch(cmds...), nil
}

// Pop removes the top screen. The root screen is never removed; Pop reports false for it.
func (n *Navigator) Pop() bool {
	if len(n.stack) <= 1 {
		return false
	}
	top := n.Top()
	n.stack = n.stack[:len(n.stack)-1]
	n.logger.Debug("pop screen", "title", top.Title(), "depth", len(n.stack))
	return true
}

// Top returns the visible screen.
func (n *Navigator) Top() Screen {
	return n.stack[len(n.stack)-1]
}

// Depth returns the number of screens on the stack.
func (n *Navigator) Depth() int { return len(n.stack) }

// Init initializes the root screen.
func (n *Navigator) Init() tea.Cmd {
	return n.Top().Init()
}

// Update handles navigation keys and messages and forwards the rest to the top screen.
func (n *Navigator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		n.width = msg.Width
		n.height = msg.Height
		n.help.Width = msg.Width
		cmds := make([]tea.Cmd, 0, len(n.stack))
		for i := range n.stack {
			cmds = append(cmds, n.resize(i))
		}
		return n, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, n.keys.abort):
			return n, tea.Quit
		case key.Matches(msg, n.keys.back):
			if !n.Pop() {
				return n, tea.Quit
			}
			return n, nil
		}

	case Msg:
		switch msg.kind {
		case MsgPush:
			req := msg.data.(pushRequest)
			cmd, err := n.Push(req.name, req.opts)
			if err != nil {
				n.logger.Error("push failed", "name", req.name, "error", err)
				n.err = err
				return n, nil
			}
			n.err = nil
			return n, cmd
		case MsgPop:
			if !n.Pop() {
				return n, tea.Quit
			}
			return n, nil
		}
	}

	top, cmd := n.Top().Update(msg)
	n.stack[len(n.stack)-1] = top
	return n, cmd
}

// View renders the title bar, the top screen and its help line.
func (n *Navigator) View() string {
	var b strings.Builder

	titles := make([]string, len(n.stack))
	for i, s := range n.stack {
		titles[i] = s.Title()
	}
	b.WriteString(styles.title.Render(n.Top().Title()))
	if len(titles) > 1 {
		b.WriteString("  " + styles.crumbs.Render(strings.Join(titles[:len(titles)-1], " › ")))
	}
	b.WriteString("\n\n")

	b.WriteString(n.Top().View())
	b.WriteString("\n")

	if n.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", n.err)))
		b.WriteString("\n")
	}

	bindings := append(n.Top().Help(), n.keys.back, n.keys.abort)
	b.WriteString(n.help.ShortHelpView(bindings))
	return b.String()
}

// resize sends the content area size to the i-th screen.
func (n *Navigator) resize(i int) tea.Cmd {
	height := max(n.height-chrome, 1)
	screen, cmd := n.stack[i].Update(tea.WindowSizeMsg{Width: n.width, Height: height})
	n.stack[i] = screen
	return cmd
}
