package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tiledict/internal/formatter"
	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/repositories"
	"github.com/desertthunder/tiledict/internal/tiles"
	"github.com/urfave/cli/v3"
)

// Tiles prints the packed board, optionally starting from the saved TUI state (or clearing it) and expanding the given ids.
func (r *Runner) Tiles(ctx context.Context, cmd *cli.Command) error {
	board := tiles.NewBoard(r.tileCount(int(cmd.Int("count"))))

	if cmd.Bool("saved") || cmd.Bool("reset") {
		db, err := r.openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		repo := repositories.NewTileStateRepository(db)
		if cmd.Bool("reset") {
			if err := repo.Clear(ctx); err != nil {
				return err
			}
			r.logger.Info("cleared saved tiles")
		}

		state, err := repo.Load(ctx)
		if err != nil {
			return err
		}
		r.logger.Debug("restored saved tiles", "changed", board.Restore(state))
	}

	for _, value := range cmd.StringSlice("expand") {
		for id := range strings.SplitSeq(value, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			item, err := board.Get(id)
			if err != nil {
				return err
			}
			if item.Expanded {
				continue
			}
			if _, err := board.Toggle(id); err != nil {
				return err
			}
		}
	}

	rows := board.Rows()
	if cmd.Bool("json") {
		return r.writeJSON(struct {
			Count int             `json:"count"`
			Rows  [][]models.Item `json:"rows"`
		}{Count: board.Len(), Rows: rows}, true)
	}

	r.writePlainHeader(fmt.Sprintf("%d tiles in %d rows", board.Len(), len(rows)))
	return r.writeBytes(formatter.RowsToText(rows))
}

// tileCount returns n, or the configured count when n is zero.
func (r *Runner) tileCount(n int) int {
	if n > 0 {
		return n
	}
	if r.config.Tiles.Count > 0 {
		return r.config.Tiles.Count
	}
	return tiles.DefaultCount
}
