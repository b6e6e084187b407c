package cmd

import (
	"context"
	"log/slog"

	"github.com/gofrs/flock"

	"github.com/mdquery/mdq/internal/checksum"
	"github.com/mdquery/mdq/internal/config"
	mdqerrors "github.com/mdquery/mdq/internal/errors"
	"github.com/mdquery/mdq/internal/index"
	"github.com/mdquery/mdq/internal/pipeline"
	"github.com/mdquery/mdq/internal/query"
)

// app bundles the opened index, checksum store and executor for one
// command invocation.
type app struct {
	cfg      *config.Config
	engine   *index.Engine
	store    *checksum.Store
	executor *query.Executor

	lock *flock.Flock
}

// openApp loads config, takes the index lock and opens the engine and
// checksum store. Every returned error here is a fatal setup error.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	// One writer per index directory. In-memory indexes need no lock.
	if cfg.IndexPath != "" {
		a.lock = flock.New(cfg.IndexPath + ".lock")
		locked, err := a.lock.TryLock()
		if err != nil {
			return nil, mdqerrors.Wrap(mdqerrors.ErrCodeIndexLocked, err).WithPath(cfg.IndexPath)
		}
		if !locked {
			return nil, mdqerrors.Newf(mdqerrors.ErrCodeIndexLocked,
				"index %s is in use by another mdq process", cfg.IndexPath)
		}
	}

	a.engine, err = index.Open(cfg.IndexPath)
	if err != nil {
		a.unlock()
		return nil, err
	}

	a.store, err = checksum.Load(cfg.ChecksumPath)
	if err != nil {
		_ = a.engine.Close()
		a.unlock()
		return nil, err
	}

	a.executor = query.New(a.engine, query.WithLimit(cfg.Limit))
	return a, nil
}

// sync runs one pipeline pass and invalidates cached query results.
func (a *app) sync(ctx context.Context, opts ...pipeline.Option) (*pipeline.Report, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	report, err := pipeline.Sync(ctx, a.cfg.SourceGlob, a.engine, a.store, opts...)
	if err != nil {
		return report, err
	}
	a.executor.Invalidate()
	return report, nil
}

func (a *app) unlock() {
	if a.lock != nil {
		if err := a.lock.Unlock(); err != nil {
			slog.Warn("failed to release index lock", "error", err)
		}
	}
}

// close releases the engine and index lock.
func (a *app) close() {
	if err := a.engine.Close(); err != nil {
		slog.Warn("failed to close index", "error", err)
	}
	a.unlock()
}
