// package formatter renders word lists and tile boards as CSV, Markdown, plain text or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/shared"
)

// Supported export formats.
const (
	FormatText     = "txt"
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatJSON     = "json"
)

// Formats lists the names accepted by [ExportWords].
var Formats = []string{FormatText, FormatCSV, FormatMarkdown, FormatJSON}

// Canonical maps a format name or alias ("text", "markdown") to one of [Formats].
func Canonical(format string) (string, error) {
	switch f := strings.ToLower(format); f {
	case FormatText, "text":
		return FormatText, nil
	case FormatMarkdown, "markdown":
		return FormatMarkdown, nil
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// ExportWords renders words in the named format.
func ExportWords(format string, words []models.Word) ([]byte, error) {
	f, err := Canonical(format)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatCSV:
		return WordsToCSV(words)
	case FormatMarkdown:
		return WordsToMarkdown(words)
	case FormatJSON:
		return MarshalJSON(words, true)
	default:
		return WordsToText(words)
	}
}

// WordsToCSV converts words to CSV with columns: ID, Bare, Accented, Usage, Type, Level
func WordsToCSV(words []models.Word) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Bare", "Accented", "Usage", "Type", "Level"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, w := range words {
		record := []string{strconv.Itoa(w.ID), w.Bare, w.Accented, w.UsageEN, w.Type, w.Level}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WordsToMarkdown converts words to a Markdown table
func WordsToMarkdown(words []models.Word) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Words\n\n")
	buf.WriteString(fmt.Sprintf("**Count**: %d\n\n", len(words)))
	buf.WriteString("| Word | Accented | Usage | Type | Level |\n")
	buf.WriteString("|---|---|---|---|---|\n")
	for _, w := range words {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			escapeCell(w.Bare), escapeCell(w.Accented), escapeCell(w.UsageEN), escapeCell(w.Type), escapeCell(w.Level)))
	}

	return buf.Bytes(), nil
}

// WordsToText renders each word the way the dictionary screen does: "bare [accented]" then "type level".
func WordsToText(words []models.Word) ([]byte, error) {
	var buf bytes.Buffer
	for _, w := range words {
		buf.WriteString(fmt.Sprintf("%s [%s]\n", w.Bare, w.Accented))
		buf.WriteString(fmt.Sprintf("  %s %s", w.Type, w.Level))
		if w.UsageEN != "" {
			buf.WriteString(fmt.Sprintf(" - %s", w.UsageEN))
		}
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// RowsToText renders packed rows, one line per row, with expanded items marked by a trailing '*'.
func RowsToText(rows [][]models.Item) []byte {
	var buf bytes.Buffer
	for i, row := range rows {
		labels := make([]string, len(row))
		for j, item := range row {
			labels[j] = item.ID
			if item.Expanded {
				labels[j] += "*"
			}
		}
		buf.WriteString(fmt.Sprintf("%2d | %s\n", i+1, strings.Join(labels, " | ")))
	}
	return buf.Bytes()
}

// MarshalJSON encodes v, indented when pretty is set.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
