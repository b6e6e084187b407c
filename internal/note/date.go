package note

import (
	"time"

	mdqerrors "github.com/mdquery/mdq/internal/errors"
)

// offsetLayout is the fallback timestamp pattern: RFC 3339 without the colon
// in the zone offset (e.g. "2021-06-22T12:48:16-0400").
const offsetLayout = "2006-01-02T15:04:05-0700"

// ParseDate parses a front-matter date string, accepting RFC 3339 first and
// the colon-less offset layout as a fallback. The result is normalized to
// UTC so both spellings of the same instant index identically.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(offsetLayout, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, mdqerrors.Newf(mdqerrors.ErrCodeBadDate, "cannot parse date %q", s)
}
