package presentation

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatRuns formats a list of runs as JSON
func (f *Formatter) FormatRuns(runs []RunDTO) error {
	return f.encode(runs)
}

// FormatLinks formats a run's link records as JSON
func (f *Formatter) FormatLinks(links []LinkDTO) error {
	return f.encode(links)
}

// FormatBuildResult formats a build result as JSON
func (f *Formatter) FormatBuildResult(result BuildResultDTO) error {
	return f.encode(result)
}

// FormatProgress writes one progress event as a single JSON line
func (f *Formatter) FormatProgress(progress ProgressDTO) error {
	return json.NewEncoder(f.writer).Encode(progress)
}

// FormatLogEntry writes one log entry as a single JSON line
func (f *Formatter) FormatLogEntry(entry LogDTO) error {
	return json.NewEncoder(f.writer).Encode(entry)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func endpoint(node string, port uint32) string {
	if node == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", node, port)
}
