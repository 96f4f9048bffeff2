package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	GroupWords Phase = iota
	ExportLevel
)

func (p Phase) String() string {
	switch p {
	case GroupWords:
		return "group_words"
	case ExportLevel:
		return "export_level"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func groupedUpdate(words, levels int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   GroupWords,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Grouped %d words into %d levels", words, levels),
	}
}

func exportCompletedUpdate(step, total int, res LevelExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportLevel,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exported %s (%d words)", res.Level, res.Count),
		Data:    res,
	}
}

func exportFailedUpdate(step, total int, res LevelExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportLevel,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Failed to export %s: %v", res.Level, res.Error),
		Data:    res,
	}
}
