package note

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	mdqerrors "github.com/mdquery/mdq/internal/errors"
)

// delimiter terminates and opens the YAML front-matter block.
const delimiter = "---"

// ErrNoFrontMatter is returned when a file has no delimited front-matter block.
var ErrNoFrontMatter = mdqerrors.New(mdqerrors.ErrCodeNoFrontMatter, "no front-matter block found", nil)

// MissingFieldError reports a required front-matter field that is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("front matter is missing required field %q", e.Field)
}

// StringList accepts either a single YAML scalar or a sequence of scalars.
// A scalar decodes to a one-element list; a sequence decodes as-is with
// order preserved. This is an explicit two-branch decode, not reflection.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			// A bare "tags:" key carries no value; leave the list nil so
			// the caller reports the field as missing.
			return nil
		}
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*s = StringList{single}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		if many == nil {
			many = []string{}
		}
		*s = StringList(many)
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", value.Line)
	}
}

// frontMatter is the raw YAML shape of the metadata block. Tags is a pointer
// so an absent key can be told apart from an explicit empty sequence.
type frontMatter struct {
	Filename string      `yaml:"filename"`
	Author   string      `yaml:"author"`
	Date     string      `yaml:"date"`
	Tags     *StringList `yaml:"tags"`
	Title    string      `yaml:"title"`
}

// Parse extracts a Document from the raw bytes of a Markdown file.
//
// It is a pure function: FullPath and Checksum are left zero for the caller
// to fill in, and Filename is empty unless the front matter declares one.
// The date string is carried through unvalidated; callers gate on ParseDate.
func Parse(raw []byte) (*Document, error) {
	block, body, err := splitFrontMatter(string(raw))
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeBadYAML, err)
	}

	if fm.Title == "" {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeMissingField, &MissingFieldError{Field: "title"})
	}
	if fm.Date == "" {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeMissingField, &MissingFieldError{Field: "date"})
	}
	if fm.Tags == nil {
		return nil, mdqerrors.Wrap(mdqerrors.ErrCodeMissingField, &MissingFieldError{Field: "tags"})
	}

	return &Document{
		Filename: fm.Filename,
		Author:   fm.Author,
		Date:     fm.Date,
		Tags:     []string(*fm.Tags),
		Title:    fm.Title,
		Body:     body,
	}, nil
}

// splitFrontMatter splits raw file content into the YAML block between the
// opening and closing delimiter lines, and the body after the closing one.
func splitFrontMatter(s string) (block, body string, err error) {
	rest, ok := strings.CutPrefix(s, delimiter+"\n")
	if !ok {
		rest, ok = strings.CutPrefix(s, delimiter+"\r\n")
	}
	if !ok {
		return "", "", ErrNoFrontMatter
	}

	// The closing delimiter must sit on its own line.
	for _, marker := range []string{"\n" + delimiter + "\n", "\n" + delimiter + "\r\n"} {
		if i := strings.Index(rest, marker); i >= 0 {
			return rest[:i], rest[i+len(marker):], nil
		}
	}
	if trimmed, ok := strings.CutSuffix(rest, "\n"+delimiter); ok {
		return trimmed, "", nil
	}

	return "", "", ErrNoFrontMatter
}
