package ui

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tiledict/internal/dict"
	"github.com/desertthunder/tiledict/internal/shared"
	"github.com/desertthunder/tiledict/internal/tiles"
)

// Screen names accepted by [NewApp] as the root.
const (
	ScreenHome  = "home"
	ScreenTiles = "tiles"
	ScreenDict  = "dict"
)

// AppOpts contains the dependencies of the TUI.
type AppOpts struct {
	Config    *shared.Config
	Source    dict.Source // Word source for the dictionary screen, defaults to the bundled asset
	TileStore TileStore   // Optional persistence for the tile board
	WordStore WordStore   // Optional persistence for words added in the dictionary screen
	Logger    *log.Logger
	Root      string // Overrides Config.UI.Root
}

// NewApp registers every screen and returns a navigator rooted at the configured screen.
func NewApp(ctx context.Context, opts AppOpts) (*Navigator, error) {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Source == nil {
		opts.Source = dict.Bundled()
	}

	count := opts.Config.Tiles.Count
	if count == 0 {
		count = tiles.DefaultCount
	}

	reg := NewRegistry()
	reg.Register(Route{
		Name:        ScreenHome,
		Title:       opts.Config.UI.Title,
		Description: "Screen list",
		New:         newHomeScreen(reg, ScreenHome),
	})
	reg.Register(Route{
		Name:        ScreenTiles,
		Title:       "Two columns",
		Description: "Toggle tiles between half and full width, rows repack",
		New:         newTilesScreen(ctx, count, opts.TileStore, opts.Logger),
	})
	reg.Register(Route{
		Name:        ScreenDict,
		Title:       "Dictionary",
		Description: "Filterable word list",
		New:         newDictScreen(ctx, opts.Source, opts.WordStore, opts.Config.Dict.Debounce(), opts.Logger),
	})

	root := opts.Root
	if root == "" {
		root = opts.Config.UI.Root
	}
	if root == "" {
		root = ScreenHome
	}

	return NewNavigator(reg, root, Options{}, opts.Logger)
}
