// Package pipeline drives the note-to-index synchronization pass: expand
// the source glob, parse each note's front matter, and reconcile the index
// and checksum store with what is on disk.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mdquery/mdq/internal/checksum"
	mdqerrors "github.com/mdquery/mdq/internal/errors"
	"github.com/mdquery/mdq/internal/note"
)

// Outcome classifies what the pipeline did with one file.
type Outcome int

const (
	// OutcomeNew means the file had no checksum entry and was indexed.
	OutcomeNew Outcome = iota
	// OutcomeUnchanged means the checksum matched and the file was skipped.
	OutcomeUnchanged
	// OutcomeUpdated means the file changed and its record was replaced.
	OutcomeUpdated
	// OutcomeFailed means the file could not be read or parsed; the run
	// continued without it.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNew:
		return "new"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeUpdated:
		return "updated"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Failure records one file the pipeline skipped and why.
type Failure struct {
	Path   string
	Reason error
}

// Report summarizes a sync run.
type Report struct {
	Scanned   int
	New       int
	Unchanged int
	Updated   int
	Failures  []Failure
}

// Indexed is the number of files written to the index this run.
func (r *Report) Indexed() int { return r.New + r.Updated }

func (r *Report) record(outcome Outcome) {
	switch outcome {
	case OutcomeNew:
		r.New++
	case OutcomeUnchanged:
		r.Unchanged++
	case OutcomeUpdated:
		r.Updated++
	}
}

// Engine is the write side of the index the pipeline needs.
type Engine interface {
	Add(doc *note.Document) error
	DeleteByPath(fullPath string)
	Commit() error
}

// Options tune a sync run.
type Options struct {
	// OnOutcome, when set, is called once per file as it is processed.
	// Used for verbose per-file echo.
	OnOutcome func(path string, outcome Outcome, err error)
	Logger    *slog.Logger
}

// Option configures a sync run.
type Option func(*Options)

// WithOnOutcome installs a per-file progress callback.
func WithOnOutcome(fn func(path string, outcome Outcome, err error)) Option {
	return func(o *Options) { o.OnOutcome = fn }
}

// WithLogger routes pipeline logging to the given logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// Sync reconciles the index and checksum store with the files matching
// pattern. Per-file read and parse errors are recorded in the report and
// never abort the run; only a bad glob or an index commit failure does.
// All staged writes land in one commit, and the checksum store is saved
// only after that commit succeeds, so an interrupted run can only leave
// files looking stale, never silently unindexed.
func Sync(ctx context.Context, pattern string, engine Engine, store *checksum.Store, opts ...Option) (*Report, error) {
	options := &Options{Logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	log := options.Logger

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeBadGlob, err).WithPath(pattern)
	}

	log.Debug("sync started", "pattern", pattern, "matches", len(paths))

	report := &Report{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Scanned++
		outcome, err := syncFile(path, engine, store)
		if err != nil {
			report.Failures = append(report.Failures, Failure{Path: path, Reason: err})
			log.Warn("file skipped", "path", path, "error", err)
		} else {
			report.record(outcome)
		}
		if options.OnOutcome != nil {
			options.OnOutcome(path, outcome, err)
		}
	}

	if err := engine.Commit(); err != nil {
		return report, err
	}
	if err := store.Save(); err != nil {
		return report, err
	}

	log.Info("sync finished",
		"scanned", report.Scanned,
		"new", report.New,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"failed", len(report.Failures))
	return report, nil
}

// syncFile runs one file through the read, parse and checksum gate. The
// checksum is taken over raw bytes before parsing, so a file only skips
// reparsing when its exact content was indexed before.
func syncFile(path string, engine Engine, store *checksum.Store) (Outcome, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return OutcomeFailed, mdqerrors.Wrap(mdqerrors.ErrCodeFileUnreadable, err).WithPath(path)
	}

	sum := checksum.Sum(raw)
	prev, seen := store.Get(path)
	if seen && prev == sum {
		return OutcomeUnchanged, nil
	}

	doc, err := note.Parse(raw)
	if err != nil {
		return OutcomeFailed, wrapPath(err, path)
	}
	doc.FullPath = path
	if doc.Filename == "" {
		doc.Filename = filepath.Base(path)
	}
	doc.Checksum = sum

	// Validate the date before staging anything, so a bad date cannot
	// leave a path deleted with no replacement.
	if _, err := note.ParseDate(doc.Date); err != nil {
		return OutcomeFailed, wrapPath(err, path)
	}

	outcome := OutcomeNew
	if seen {
		outcome = OutcomeUpdated
		engine.DeleteByPath(path)
	}
	if err := engine.Add(doc); err != nil {
		return OutcomeFailed, wrapPath(err, path)
	}
	store.Set(path, sum)
	return outcome, nil
}

func wrapPath(err error, path string) error {
	var merr *mdqerrors.MdqError
	if errors.As(err, &merr) {
		return merr.WithPath(path)
	}
	return mdqerrors.Wrap(mdqerrors.ErrCodeInternal, err).WithPath(path)
}
