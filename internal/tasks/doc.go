// Package tasks runs long dictionary operations with real-time progress reporting.
//
// # Bulk Export
//
// [BulkExport] splits a word list by proficiency level and writes one file per level:
//   - Words are grouped with [GroupByLevel]; words without a level go to "unleveled"
//   - A pool of workers renders and writes each group through the formatter package
//   - A manifest (export_manifest.json) records every file, count and failure
//
// A failed level does not stop the others; it is reported in [BulkExportResult].
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
