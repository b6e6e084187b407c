package note

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdqerrors "github.com/mdquery/mdq/internal/errors"
)

func TestParseDate_BothLayoutsYieldSameInstant(t *testing.T) {
	rfc, err := ParseDate("2021-06-22T12:48:16-04:00")
	require.NoError(t, err)

	fallback, err := ParseDate("2021-06-22T12:48:16-0400")
	require.NoError(t, err)

	want := time.Date(2021, 6, 22, 16, 48, 16, 0, time.UTC)
	assert.True(t, rfc.Equal(want), "rfc3339 parsed to %v", rfc)
	assert.True(t, fallback.Equal(want), "fallback parsed to %v", fallback)
	assert.Equal(t, time.UTC, rfc.Location())
	assert.Equal(t, time.UTC, fallback.Location())
}

func TestParseDate_ZuluTime(t *testing.T) {
	got, err := ParseDate("2019-04-01T14:02:03Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 4, 1, 14, 2, 3, 0, time.UTC), got)
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{
		"",
		"2021-06-22",
		"June 22nd 2021",
		"2021-13-99T00:00:00Z",
	} {
		_, err := ParseDate(s)
		require.Error(t, err, "input %q", s)
		assert.Equal(t, mdqerrors.ErrCodeBadDate, mdqerrors.GetCode(err))
	}
}
