package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tiledict/internal/repositories"
	"github.com/desertthunder/tiledict/internal/shared"
	"github.com/desertthunder/tiledict/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/tiledict-tui.log"

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.Log.File
	if logPath == "" {
		logPath = defaultTUILog
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.ApplyLogLevel(fileLogger, r.config.Log.Level); err != nil {
		return err
	}
	r.SetLogger(shared.WithLogger(fileLogger, "session", shared.GenerateID()))

	src, release, err := r.wordSource("")
	if err != nil {
		return err
	}
	defer release()

	opts := ui.AppOpts{
		Config: r.config,
		Source: src,
		Logger: r.logger,
		Root:   cmd.String("screen"),
	}
	if store, ok := src.(ui.WordStore); ok {
		opts.WordStore = store
	}

	if !cmd.Bool("ephemeral") {
		if db, err := r.openDatabase(); err != nil {
			r.logger.Warn("tile state will not be saved", "error", err)
		} else {
			defer db.Close()
			opts.TileStore = repositories.NewTileStateRepository(db)
		}
	}

	nav, err := ui.NewApp(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to build TUI: %w", err)
	}

	p := tea.NewProgram(nav, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
