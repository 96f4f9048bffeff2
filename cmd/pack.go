package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/tiledict/internal/formatter"
	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/packer"
	"github.com/desertthunder/tiledict/internal/shared"
	"github.com/desertthunder/tiledict/internal/tiles"
	"github.com/urfave/cli/v3"
)

// packResult is the JSON shape of the pack command.
type packResult struct {
	Input []models.Item   `json:"input"`
	Order []models.Item   `json:"order"`
	Rows  [][]models.Item `json:"rows"`
	Tight bool            `json:"tight"`
}

// Pack reorders the given widths and prints the order and resulting rows. Items are named A, B, ... Z, AA, ...
func (r *Runner) Pack(ctx context.Context, cmd *cli.Command) error {
	items, err := parseWidths(cmd.StringArg("widths"))
	if err != nil {
		return err
	}

	board, err := tiles.NewBoardFromItems(items)
	if err != nil {
		return err
	}
	order := board.Ordered()
	rows := board.Rows()
	r.logger.Debug("packed items", "count", len(items), "width", packer.TotalWidth(items), "rows", len(rows))

	if cmd.Bool("json") {
		return r.writeJSON(packResult{Input: items, Order: order, Rows: rows, Tight: packer.IsTight(order)}, true)
	}

	if err := r.writePlain("order: %s\n", itemLabels(order)); err != nil {
		return err
	}
	return r.writeBytes(formatter.RowsToText(rows))
}

// parseWidths reads a comma or space separated list of 1s and 2s.
func parseWidths(arg string) ([]models.Item, error) {
	fields := strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: widths", shared.ErrMissingArgument)
	}

	items := make([]models.Item, len(fields))
	for i, field := range fields {
		w, err := strconv.Atoi(field)
		if err != nil || (w != models.UnitWidth && w != models.ExpandedWidth) {
			return nil, fmt.Errorf("%w: width %q at position %d (want 1 or 2)", shared.ErrInvalidArgument, field, i+1)
		}
		items[i] = models.Item{ID: columnName(i), Expanded: w == models.ExpandedWidth}
	}
	return items, nil
}

// columnName returns the spreadsheet style name of the i-th (0-based) column.
func columnName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}

func itemLabels(items []models.Item) string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.ID
		if item.Expanded {
			labels[i] += "*"
		}
	}
	return strings.Join(labels, " ")
}
