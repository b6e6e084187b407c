// Package note defines the canonical document model for Markdown files
// carrying YAML front matter, and the parser that extracts it.
package note

// Document is the in-memory representation of one indexed Markdown note.
//
// An example note:
//
//	---
//	author: Ada Lovelace
//	date: 2021-06-22T12:48:16-0400
//	tags:
//	- analytical-engine
//	title: An example note
//	---
//
//	Some note here formatted with Markdown syntax
type Document struct {
	// Filename is the base name of the source file. Defaults to the last
	// path segment of the source path when the front matter omits it; that
	// default is applied by the sync pipeline, not the parser.
	Filename string `json:"filename" yaml:"filename"`

	// FullPath is the resolved source path. It is the identity used for
	// delete/replace operations in the index and is never read from front
	// matter.
	FullPath string `json:"full_path" yaml:"-"`

	// Author is optional front-matter metadata.
	Author string `json:"author" yaml:"author"`

	// Date is the note's timestamp as written in the front matter. It must
	// parse via ParseDate before the note reaches the index.
	Date string `json:"date" yaml:"date"`

	// Tags accepts either a single scalar or a sequence in the front
	// matter; order is preserved and duplicates are allowed.
	Tags []string `json:"tags" yaml:"tags"`

	// Title is required front-matter metadata.
	Title string `json:"title" yaml:"title"`

	// Body is everything after the front-matter block. It is indexed for
	// full-text matching but never stored, so query projections leave it
	// empty.
	Body string `json:"-" yaml:"-"`

	// Checksum is an Adler-32 hash of the entire raw file, used only for
	// change detection against the checksum store.
	Checksum uint32 `json:"-" yaml:"-"`
}
