package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tiledict/internal/dict"
	"github.com/desertthunder/tiledict/internal/formatter"
	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/repositories"
	"github.com/desertthunder/tiledict/internal/tasks"
	"github.com/urfave/cli/v3"
)

// WordsSearch lists words whose bare form contains the query, sorted by bare form.
func (r *Runner) WordsSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")

	src, release, err := r.wordSource(cmd.String("source"))
	if err != nil {
		return err
	}
	defer release()

	var words []models.Word
	if repo, ok := src.(*repositories.WordRepository); ok {
		words, err = repo.Search(ctx, query)
	} else {
		var all []models.Word
		if all, err = dict.Load(ctx, src); err == nil {
			words = dict.FilterWords(all, query)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to search words: %w", err)
	}
	r.logger.Debug("searched words", "query", query, "matches", len(words))

	data, err := formatter.ExportWords(cmd.String("format"), words)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// WordsImport replaces the database word list with the contents of an asset.
func (r *Runner) WordsImport(ctx context.Context, cmd *cli.Command) error {
	var src dict.Source = dict.Bundled()
	name := dict.AssetName
	if path := cmd.String("asset"); path != "" {
		src, name = dict.FileSource(path), path
	}

	words, err := dict.Load(ctx, src)
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := repositories.NewWordRepository(db).ReplaceAll(ctx, words)
	if err != nil {
		return fmt.Errorf("failed to import words: %w", err)
	}

	r.logger.Info("imported words", "asset", name, "count", n)
	return r.writePlain("Imported %d words from %s into %s\n", n, name, r.config.Database.Path)
}

// WordsAdd stores a single word.
func (r *Runner) WordsAdd(ctx context.Context, cmd *cli.Command) error {
	word := models.Word{
		ID:       int(cmd.Int("id")),
		Bare:     cmd.String("bare"),
		Accented: cmd.String("accented"),
		UsageEN:  cmd.String("usage"),
		Type:     cmd.String("type"),
		Level:    cmd.String("level"),
	}
	if word.Accented == "" {
		word.Accented = word.Bare
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewWordRepository(db).Create(ctx, &word); err != nil {
		return fmt.Errorf("failed to add word: %w", err)
	}

	r.logger.Info("added word", "id", word.ID, "bare", word.Bare)
	return r.writePlain("Added word #%d: %s\n", word.ID, word.Bare)
}

// WordsDelete removes one word from the store.
func (r *Runner) WordsDelete(ctx context.Context, cmd *cli.Command) error {
	id := int(cmd.Int("id"))

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewWordRepository(db).Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}

	r.logger.Info("deleted word", "id", id)
	return r.writePlain("Deleted word #%d\n", id)
}

// WordsExport writes every word from the selected source in the requested format.
func (r *Runner) WordsExport(ctx context.Context, cmd *cli.Command) error {
	src, release, err := r.wordSource(cmd.String("source"))
	if err != nil {
		return err
	}
	defer release()

	words, err := dict.Load(ctx, src)
	if err != nil {
		return err
	}

	if cmd.Bool("by-level") {
		return r.exportByLevel(ctx, cmd, words)
	}

	data, err := formatter.ExportWords(cmd.String("format"), words)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		return r.writeBytes(data)
	}

	if err := formatter.WriteFile(output, data); err != nil {
		return err
	}
	r.logger.Info("exported words", "count", len(words), "path", output)
	return r.writePlain("Exported %d words to %s\n", len(words), output)
}

// exportByLevel writes one file per level, logging progress as levels complete.
func (r *Runner) exportByLevel(ctx context.Context, cmd *cli.Command, words []models.Word) error {
	groups := len(tasks.GroupByLevel(words))
	prog := make(chan tasks.ProgressUpdate, groups+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range prog {
			r.logger.Info(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)
		}
	}()

	result, err := tasks.BulkExport(ctx, prog, words, tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlainHeader(fmt.Sprintf("Exported %d words to %s", result.TotalWords, result.OutputDirectory))
	for _, res := range result.Results {
		if res.Success {
			r.writePlain("✓ %-10s %4d  %s\n", res.Level, res.Count, res.File)
		} else {
			r.writePlain("✗ %-10s %4d  %s\n", res.Level, res.Count, res.ErrorMessage)
		}
	}
	if err := r.writePlain("Manifest: %s\n", result.ManifestPath); err != nil {
		return err
	}

	if result.FailedExports > 0 {
		return fmt.Errorf("%d of %d levels failed to export", result.FailedExports, result.TotalLevels)
	}
	return nil
}
