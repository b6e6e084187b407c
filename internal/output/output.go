// Package output provides consistent CLI output formatting for sync
// progress, reports and query results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mdquery/mdq/internal/note"
	"github.com/mdquery/mdq/internal/pipeline"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out     io.Writer
	verbose bool
}

// New creates a new output Writer.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// SetVerbose enables per-file progress echo.
func (w *Writer) SetVerbose(v bool) {
	w.verbose = v
}

// IsTTY reports whether the writer's destination is an interactive
// terminal.
func (w *Writer) IsTTY() bool {
	f, ok := w.out.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Outcome echoes one file's sync result. Only emitted in verbose mode;
// failures always print.
func (w *Writer) Outcome(path string, outcome pipeline.Outcome, err error) {
	if err != nil {
		w.Errorf("%s: %v", path, err)
		return
	}
	if w.verbose {
		w.Successf("%s (%s)", path, outcome)
	}
}

// Report prints the sync run summary.
func (w *Writer) Report(r *pipeline.Report) {
	w.Successf("indexed %d of %d files (%d new, %d updated, %d unchanged, %d failed)",
		r.Indexed(), r.Scanned, r.New, r.Updated, r.Unchanged, len(r.Failures))
	for _, f := range r.Failures {
		w.Errorf("%s: %v", f.Path, f.Reason)
	}
}

// Documents prints query results one JSON object per line, in rank
// order. Bodies are never part of results, so each line carries the
// note's metadata only.
func (w *Writer) Documents(docs []*note.Document) error {
	enc := json.NewEncoder(w.out)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}
	return nil
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}
