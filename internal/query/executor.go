// Package query executes search queries against the index and projects
// engine hits back into note metadata.
package query

import (
	"strings"

	"github.com/blevesearch/bleve/v2/search"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mdquery/mdq/internal/index"
	"github.com/mdquery/mdq/internal/note"
)

// DefaultLimit caps result sets when the caller does not ask for a size.
const DefaultLimit = 100

// cacheSize bounds the per-process result cache. Interactive search
// re-runs nearby queries constantly (each keystroke is a query), so a
// small LRU absorbs most of the back-and-forth of editing.
const cacheSize = 128

// Engine is the read side of the index the executor needs.
type Engine interface {
	ParseQuery(q string) (blevequery.Query, error)
	Search(q blevequery.Query, limit int) ([]*search.DocumentMatch, error)
}

var _ Engine = (*index.Engine)(nil)

type cacheKey struct {
	query string
	limit int
}

// Executor parses and runs queries with a bounded result limit and a
// small LRU cache of recent result sets.
type Executor struct {
	engine Engine
	limit  int
	cache  *lru.Cache[cacheKey, []*note.Document]
}

// Option configures an Executor.
type Option func(*Executor)

// WithLimit overrides the default result cap.
func WithLimit(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.limit = n
		}
	}
}

// New builds an Executor over the given engine.
func New(engine Engine, opts ...Option) *Executor {
	cache, _ := lru.New[cacheKey, []*note.Document](cacheSize)
	e := &Executor{
		engine: engine,
		limit:  DefaultLimit,
		cache:  cache,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute parses and runs a single query. A blank query returns an empty
// result set without touching the engine; a malformed query returns a
// query-parse error and no results. Results never include note bodies.
func (e *Executor) Execute(raw string) ([]*note.Document, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return nil, nil
	}

	key := cacheKey{query: q, limit: e.limit}
	if docs, ok := e.cache.Get(key); ok {
		return docs, nil
	}

	parsed, err := e.engine.ParseQuery(q)
	if err != nil {
		return nil, err
	}

	hits, err := e.engine.Search(parsed, e.limit)
	if err != nil {
		return nil, err
	}

	docs := make([]*note.Document, 0, len(hits))
	for _, hit := range hits {
		docs = append(docs, project(hit))
	}
	e.cache.Add(key, docs)
	return docs, nil
}

// Invalidate drops all cached result sets. Called after every index
// commit so readers never see pre-commit results.
func (e *Executor) Invalidate() {
	e.cache.Purge()
}

// project rebuilds note metadata from a hit's stored fields. Body is
// never stored, so projected documents carry none.
func project(hit *search.DocumentMatch) *note.Document {
	return &note.Document{
		Filename: fieldString(hit.Fields, index.FieldFilename),
		FullPath: hit.ID,
		Author:   fieldString(hit.Fields, index.FieldAuthor),
		Date:     fieldString(hit.Fields, index.FieldDate),
		Tags:     fieldStrings(hit.Fields, index.FieldTags),
		Title:    fieldString(hit.Fields, index.FieldTitle),
	}
}

func fieldString(fields map[string]interface{}, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}

// fieldStrings handles Bleve's flattening of stored arrays: a
// single-element list comes back as a bare string, longer lists as
// []interface{}.
func fieldStrings(fields map[string]interface{}, name string) []string {
	switch v := fields[name].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
