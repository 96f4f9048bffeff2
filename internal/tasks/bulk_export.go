package tasks

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/desertthunder/tiledict/internal/formatter"
	"github.com/desertthunder/tiledict/internal/models"
)

const (
	DefaultWorkers = 4
	MaxWorkers     = 8
	Unleveled      = "unleveled"            // Group name for words without a level
	ManifestName   = "export_manifest.json" // Written to the output directory
)

// BulkExportOpts contains configuration for bulk word exports.
type BulkExportOpts struct {
	Format     string // Export format: txt, csv, md, json
	OutputDir  string // Base output directory (default: words_export_{epoch})
	NumWorkers int    // Concurrent workers (default: 4)
}

// LevelExportJob is one group of words to write.
type LevelExportJob struct {
	Level string
	File  string // File name without extension, unique within the export
	Words []models.Word
}

// LevelExportResult reports the outcome of one [LevelExportJob].
type LevelExportResult struct {
	Level        string `json:"level"`
	Count        int    `json:"count"`
	File         string `json:"file,omitempty"`
	Success      bool   `json:"success"`
	Error        error  `json:"-"`
	ErrorMessage string `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export. It doubles as the manifest.
type BulkExportResult struct {
	Format            string              `json:"format"`
	TotalWords        int                 `json:"total_words"`
	TotalLevels       int                 `json:"total_levels"`
	SuccessfulExports int                 `json:"successful_exports"`
	FailedExports     int                 `json:"failed_exports"`
	OutputDirectory   string              `json:"output_directory"`
	ManifestPath      string              `json:"-"`
	Results           []LevelExportResult `json:"results"`
}

// GroupByLevel splits words by level. Groups are ordered by level name and keep the input order of their words.
//
// Each group gets a file name from [FileName]. Names are compared ignoring case, and a level whose name is
// already taken by an earlier group gets a numeric suffix.
func GroupByLevel(words []models.Word) []LevelExportJob {
	groups := map[string][]models.Word{}
	for _, w := range words {
		level := w.Level
		if level == "" {
			level = Unleveled
		}
		groups[level] = append(groups[level], w)
	}

	jobs := make([]LevelExportJob, 0, len(groups))
	for level, ws := range groups {
		jobs = append(jobs, LevelExportJob{Level: level, Words: ws})
	}
	slices.SortFunc(jobs, func(a, b LevelExportJob) int { return cmp.Compare(a.Level, b.Level) })

	taken := make(map[string]bool, len(jobs))
	for i := range jobs {
		base := FileName(jobs[i].Level)
		name := base
		for n := 2; taken[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		taken[strings.ToLower(name)] = true
		jobs[i].File = name
	}
	return jobs
}

// BulkExport writes one file per level concurrently and generates a manifest file summarizing the export.
func BulkExport(ctx context.Context, prog chan<- ProgressUpdate, words []models.Word, opts BulkExportOpts) (*BulkExportResult, error) {
	format, err := formatter.Canonical(opts.Format)
	if err != nil {
		return nil, err
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("words_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = DefaultWorkers
	}
	if opts.NumWorkers > MaxWorkers {
		opts.NumWorkers = MaxWorkers
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	groups := GroupByLevel(words)
	sendProgress(prog, groupedUpdate(len(words), len(groups)))

	result := &BulkExportResult{
		Format:          format,
		TotalWords:      len(words),
		TotalLevels:     len(groups),
		OutputDirectory: opts.OutputDir,
		Results:         make([]LevelExportResult, 0, len(groups)),
	}

	jobs := make(chan LevelExportJob, len(groups))
	results := make(chan LevelExportResult, len(groups))

	var wg sync.WaitGroup
	for range min(opts.NumWorkers, max(len(groups), 1)) {
		wg.Add(1)
		go exportWorker(ctx, &wg, jobs, results, format, opts.OutputDir)
	}

	for _, job := range groups {
		jobs <- job
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(groups), res))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(groups), res))
		}
	}
	slices.SortFunc(result.Results, func(a, b LevelExportResult) int { return cmp.Compare(a.Level, b.Level) })

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestName)
	data, err := formatter.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to encode manifest: %w", err)
	}
	if err := formatter.WriteFile(manifestPath, data); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports levels from the jobs channel.
func exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan LevelExportJob,
	results chan<- LevelExportResult,
	format, dir string,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- exportLevel(job, format, dir)
	}
}

// exportLevel renders a single level and writes it to {dir}/{file}.{format}.
func exportLevel(j LevelExportJob, format, dir string) LevelExportResult {
	result := LevelExportResult{Level: j.Level, Count: len(j.Words)}

	data, err := formatter.ExportWords(format, j.Words)
	if err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", format, err)
		result.ErrorMessage = result.Error.Error()
		return result
	}

	name := j.File
	if name == "" {
		name = FileName(j.Level)
	}
	path := filepath.Join(dir, name+"."+format)
	if err := formatter.WriteFile(path, data); err != nil {
		result.Error = err
		result.ErrorMessage = err.Error()
		return result
	}

	result.File = path
	result.Success = true
	return result
}

// FileName turns a level into a safe file name: anything but letters, digits, '-' and '_' becomes '_'.
func FileName(level string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, level)
}
