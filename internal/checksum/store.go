// Package checksum persists the path-to-checksum table that gates
// reindexing. The table is the single source of truth for "has this file
// changed since it was last indexed"; the checksums are for change
// detection only, never integrity verification.
package checksum

import (
	"bytes"
	"errors"
	"hash/adler32"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	mdqerrors "github.com/mdquery/mdq/internal/errors"
)

// Sum computes the content checksum over the entire raw file.
func Sum(data []byte) uint32 {
	return adler32.Checksum(data)
}

// Store is an in-memory path→checksum table backed by a flat YAML document
// on disk. It is loaded once at the start of an indexing run, mutated in
// memory, and written back wholesale at the end of a successful run.
type Store struct {
	path    string
	entries map[string]uint32
}

// New returns an empty store with no backing file. Save on such a store is
// a no-op; it exists for tests and in-memory runs.
func New() *Store {
	return &Store{entries: make(map[string]uint32)}
}

// Load reads a persisted table from path. A non-existent or empty file
// yields an empty store, not an error.
func Load(path string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]uint32),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeChecksumStore, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	if err := yaml.Unmarshal(data, &s.entries); err != nil {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeChecksumStore, err)
	}
	return s, nil
}

// Get returns the stored checksum for fullPath, if any.
func (s *Store) Get(fullPath string) (uint32, bool) {
	sum, ok := s.entries[fullPath]
	return sum, ok
}

// Set upserts the checksum for fullPath.
func (s *Store) Set(fullPath string, sum uint32) {
	s.entries[fullPath] = sum
}

// Delete removes the entry for fullPath.
func (s *Store) Delete(fullPath string) {
	delete(s.entries, fullPath)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Save serializes the full table back to the path it was loaded from,
// replacing the previous contents wholesale. The write goes through a
// temp file and rename so a crash never leaves a half-written table.
//
// Save must be called only after all index mutations for the run have been
// committed; until then the on-disk table keeps describing the previous
// committed state.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}

	data, err := yaml.Marshal(s.entries)
	if err != nil {
		return mdqerrors.Wrap(mdqerrors.ErrCodeChecksumStore, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return mdqerrors.Wrap(mdqerrors.ErrCodeChecksumStore, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return mdqerrors.Wrap(mdqerrors.ErrCodeChecksumStore, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return mdqerrors.Wrap(mdqerrors.ErrCodeChecksumStore, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return mdqerrors.Wrap(mdqerrors.ErrCodeChecksumStore, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return mdqerrors.Wrap(mdqerrors.ErrCodeChecksumStore, err)
	}
	return nil
}
