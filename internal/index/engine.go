// Package index wraps the Bleve engine behind the narrow write/read
// contract the sync pipeline and query executor consume. Query-language
// grammar, ranking and inverted-index construction are the engine's
// business, not reimplemented here.
package index

import (
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"

	mdqerrors "github.com/mdquery/mdq/internal/errors"
	"github.com/mdquery/mdq/internal/note"
)

// Field names in the index schema. All metadata fields are stored and
// retrievable on query; body is indexed for matching only.
const (
	FieldFilename = "filename"
	FieldFullPath = "full_path"
	FieldAuthor   = "author"
	FieldDate     = "date"
	FieldTags     = "tags"
	FieldTitle    = "title"
	FieldBody     = "body"
)

// StoredFields lists the fields a search projects back out of the index.
var StoredFields = []string{
	FieldFilename, FieldFullPath, FieldAuthor, FieldDate, FieldTags, FieldTitle,
}

// Engine owns a Bleve index and a pending write batch. Adds and deletes are
// staged into the batch and become visible to readers only when Commit
// executes it; the engine is the sole writer for the duration of a sync run.
type Engine struct {
	mu     sync.Mutex
	index  bleve.Index
	batch  *bleve.Batch
	path   string
	closed bool
}

// Open opens the index at path, creating it if absent. An empty path yields
// an in-memory index, used by tests and runs with no index location.
func Open(path string) (*Engine, error) {
	im := buildMapping()

	var idx bleve.Index
	var err error
	if path == "" {
		idx, err = bleve.NewMemOnly(im)
	} else {
		idx, err = bleve.Open(path)
		if err == bleve.ErrorIndexPathDoesNotExist {
			idx, err = bleve.New(path, im)
		}
	}
	if err != nil {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeIndexOpen, err)
	}

	return &Engine{
		index: idx,
		batch: idx.NewBatch(),
		path:  path,
	}, nil
}

// buildMapping declares the document schema: metadata fields text+stored,
// date a typed stored+indexed timestamp, full_path an exact keyword, and
// body text-indexed-only.
func buildMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Analyzer = standard.Name

	keyword := bleve.NewKeywordFieldMapping()

	date := bleve.NewDateTimeFieldMapping()

	body := bleve.NewTextFieldMapping()
	body.Analyzer = standard.Name
	body.Store = false

	dm := bleve.NewDocumentMapping()
	dm.AddFieldMappingsAt(FieldFilename, text)
	dm.AddFieldMappingsAt(FieldFullPath, keyword)
	dm.AddFieldMappingsAt(FieldAuthor, text)
	dm.AddFieldMappingsAt(FieldDate, date)
	dm.AddFieldMappingsAt(FieldTags, text)
	dm.AddFieldMappingsAt(FieldTitle, text)
	dm.AddFieldMappingsAt(FieldBody, body)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = dm
	im.DefaultAnalyzer = standard.Name
	return im
}

// Add stages a document into the pending batch. Documents are keyed by
// FullPath, so a later add for the same path replaces the staged record.
// The date must already have passed note.ParseDate.
func (e *Engine) Add(doc *note.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return mdqerrors.Newf(mdqerrors.ErrCodeIndexWrite, "index is closed")
	}

	t, err := note.ParseDate(doc.Date)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		FieldFilename: doc.Filename,
		FieldFullPath: doc.FullPath,
		FieldAuthor:   doc.Author,
		FieldDate:     t,
		FieldTags:     doc.Tags,
		FieldTitle:    doc.Title,
		FieldBody:     doc.Body,
	}
	if err := e.batch.Index(doc.FullPath, fields); err != nil {
		return mdqerrors.Wrap(mdqerrors.ErrCodeIndexWrite, err)
	}
	return nil
}

// DeleteByPath stages removal of the record whose full_path equals the
// given value. Records are keyed by full_path, so this is an ID delete.
func (e *Engine) DeleteByPath(fullPath string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.batch.Delete(fullPath)
}

// Commit executes all staged adds and deletes atomically and starts a
// fresh batch. Safe to call with an empty batch. Bleve read handles see
// the new generation on their next search; no explicit reader reload is
// needed.
func (e *Engine) Commit() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return mdqerrors.Newf(mdqerrors.ErrCodeIndexWrite, "index is closed")
	}

	if err := e.index.Batch(e.batch); err != nil {
		return mdqerrors.Wrap(mdqerrors.ErrCodeIndexWrite, err)
	}
	e.batch = e.index.NewBatch()
	return nil
}

// ParseQuery validates a query string against the engine's grammar
// (free text plus field:value qualifiers, boolean operators, phrases).
func (e *Engine) ParseQuery(q string) (query.Query, error) {
	parsed, err := bleve.NewQueryStringQuery(q).Parse()
	if err != nil {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeQueryParse, err)
	}
	return parsed, nil
}

// Search runs a parsed query and returns up to limit ranked hits with
// their stored fields loaded.
func (e *Engine) Search(q query.Query, limit int) ([]*search.DocumentMatch, error) {
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	req.Fields = StoredFields

	res, err := e.index.Search(req)
	if err != nil {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeQueryParse, err)
	}
	return res.Hits, nil
}

// DocCount returns the number of committed documents.
func (e *Engine) DocCount() (uint64, error) {
	return e.index.DocCount()
}

// CountByPath returns how many committed records carry the given full_path.
// After a delete-then-add commit this is always zero or one.
func (e *Engine) CountByPath(fullPath string) (int, error) {
	tq := bleve.NewTermQuery(fullPath)
	tq.SetField(FieldFullPath)

	req := bleve.NewSearchRequest(tq)
	req.Size = 0

	res, err := e.index.Search(req)
	if err != nil {
		return 0, err
	}
	return int(res.Total), nil
}

// Close closes the underlying index. Pending uncommitted staged writes are
// discarded.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	return e.index.Close()
}
