package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdqerrors "github.com/mdquery/mdq/internal/errors"
	"github.com/mdquery/mdq/internal/note"
)

func memEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func testDoc(path, title string) *note.Document {
	return &note.Document{
		Filename: "note.md",
		FullPath: path,
		Author:   "douglass",
		Date:     "2021-06-22T16:48:16+00:00",
		Tags:     []string{"mdq", "search"},
		Title:    title,
		Body:     "If there is no struggle, there is no progress.",
	}
}

func TestAddCommitSearch(t *testing.T) {
	eng := memEngine(t)

	require.NoError(t, eng.Add(testDoc("/notes/a.md", "struggle and progress")))
	require.NoError(t, eng.Commit())

	q, err := eng.ParseQuery("progress")
	require.NoError(t, err)

	hits, err := eng.Search(q, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "/notes/a.md", hits[0].ID)
	assert.Equal(t, "struggle and progress", hits[0].Fields[FieldTitle])
	// Body is match-only, never projected.
	assert.NotContains(t, hits[0].Fields, FieldBody)
}

func TestAddInvisibleBeforeCommit(t *testing.T) {
	eng := memEngine(t)

	require.NoError(t, eng.Add(testDoc("/notes/a.md", "pending")))

	n, err := eng.DocCount()
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, eng.Commit())

	n, err = eng.DocCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestDeleteByPath(t *testing.T) {
	eng := memEngine(t)

	require.NoError(t, eng.Add(testDoc("/notes/a.md", "one")))
	require.NoError(t, eng.Add(testDoc("/notes/b.md", "two")))
	require.NoError(t, eng.Commit())

	eng.DeleteByPath("/notes/a.md")
	require.NoError(t, eng.Commit())

	count, err := eng.CountByPath("/notes/a.md")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = eng.CountByPath("/notes/b.md")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateKeepsSingleRecordPerPath(t *testing.T) {
	eng := memEngine(t)

	require.NoError(t, eng.Add(testDoc("/notes/a.md", "first draft")))
	require.NoError(t, eng.Commit())

	eng.DeleteByPath("/notes/a.md")
	require.NoError(t, eng.Add(testDoc("/notes/a.md", "second draft")))
	require.NoError(t, eng.Commit())

	count, err := eng.CountByPath("/notes/a.md")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	q, err := eng.ParseQuery(`title:"second draft"`)
	require.NoError(t, err)
	hits, err := eng.Search(q, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "second draft", hits[0].Fields[FieldTitle])
}

func TestParseQueryRejectsMalformed(t *testing.T) {
	eng := memEngine(t)

	_, err := eng.ParseQuery("title:")
	require.Error(t, err)
	assert.Equal(t, mdqerrors.ErrCodeQueryParse, mdqerrors.GetCode(err))
}

func TestFieldQualifiedQuery(t *testing.T) {
	eng := memEngine(t)

	a := testDoc("/notes/a.md", "gardening notes")
	a.Author = "hamilton"
	b := testDoc("/notes/b.md", "cooking notes")
	b.Author = "douglass"
	require.NoError(t, eng.Add(a))
	require.NoError(t, eng.Add(b))
	require.NoError(t, eng.Commit())

	q, err := eng.ParseQuery("author:hamilton")
	require.NoError(t, err)
	hits, err := eng.Search(q, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "/notes/a.md", hits[0].ID)
}

func TestAddRejectsBadDate(t *testing.T) {
	eng := memEngine(t)

	doc := testDoc("/notes/a.md", "bad date")
	doc.Date = "June 22nd, 2021"
	err := eng.Add(doc)
	require.Error(t, err)
	assert.Equal(t, mdqerrors.ErrCodeBadDate, mdqerrors.GetCode(err))
}

func TestOpenCreatesAndReopens(t *testing.T) {
	dir := t.TempDir() + "/index.bleve"

	eng, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, eng.Add(testDoc("/notes/a.md", "persisted")))
	require.NoError(t, eng.Commit())
	require.NoError(t, eng.Close())

	eng, err = Open(dir)
	require.NoError(t, err)
	defer eng.Close()

	n, err := eng.DocCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestClosedEngineRefusesWrites(t *testing.T) {
	eng, err := Open("")
	require.NoError(t, err)
	require.NoError(t, eng.Close())

	err = eng.Add(testDoc("/notes/a.md", "late"))
	require.Error(t, err)
	assert.Equal(t, mdqerrors.ErrCodeIndexWrite, mdqerrors.GetCode(err))
	require.Error(t, eng.Commit())
	require.NoError(t, eng.Close())
}
