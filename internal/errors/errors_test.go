package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryAndSeverity(t *testing.T) {
	err := New(ErrCodeMissingField, "front matter is missing 'title'", nil)

	require.NotNil(t, err)
	assert.Equal(t, CategoryParse, err.Category)
	assert.Equal(t, SeverityError, err.Severity)
	assert.Contains(t, err.Error(), "ERR_302_MISSING_FIELD")
}

func TestNew_SetupErrorsAreFatal(t *testing.T) {
	for _, code := range []string{
		ErrCodeBadGlob,
		ErrCodeChecksumStore,
		ErrCodeIndexOpen,
		ErrCodeIndexLocked,
	} {
		err := New(code, "boom", nil)
		assert.True(t, IsFatal(err), "code %s should be fatal", code)
	}
}

func TestNew_PerFileErrorsAreRecoverable(t *testing.T) {
	for _, code := range []string{
		ErrCodeFileUnreadable,
		ErrCodeNoFrontMatter,
		ErrCodeMissingField,
		ErrCodeBadDate,
		ErrCodeQueryParse,
	} {
		err := New(code, "boom", nil)
		assert.False(t, IsFatal(err), "code %s should not be fatal", code)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("open /tmp/notes.md: permission denied")
	err := Wrap(ErrCodeFileUnreadable, cause)

	require.NotNil(t, err)
	assert.Equal(t, cause, stderrors.Unwrap(err))
	assert.Contains(t, err.Error(), "permission denied")
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeFileUnreadable, nil))
}

func TestIs_MatchesByCode(t *testing.T) {
	a := New(ErrCodeBadDate, "cannot parse '2021-13-99'", nil)
	b := New(ErrCodeBadDate, "different message", nil)
	c := New(ErrCodeNoFrontMatter, "no block", nil)

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestWithPath_IncludedInMessage(t *testing.T) {
	base := New(ErrCodeNoFrontMatter, "no delimited block found", nil)
	err := base.WithPath("notes/a.md")
	assert.Contains(t, err.Error(), "notes/a.md")
	assert.Equal(t, "notes/a.md", err.Path)
	// Sentinels handed out by value stay path-free.
	assert.Empty(t, base.Path)
}

func TestGetCode_NonMdqError(t *testing.T) {
	assert.Equal(t, "", GetCode(fmt.Errorf("plain")))
	assert.Equal(t, Category(""), GetCategory(fmt.Errorf("plain")))
}
