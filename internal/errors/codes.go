// Package errors provides structured error handling for mdq.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (files, checksum store, index storage)
//   - 3XX: Document parse errors (front matter, dates)
//   - 4XX: Query errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file, checksum-store and index I/O errors.
	CategoryIO Category = "IO"
	// CategoryParse indicates per-document parse errors.
	CategoryParse Category = "PARSE"
	// CategoryQuery indicates query-string errors.
	CategoryQuery Category = "QUERY"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates an unrecoverable setup error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates the operation failed but the run can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"
	ErrCodeBadGlob        = "ERR_103_BAD_GLOB"

	// IO errors (200-299)
	ErrCodeFileUnreadable = "ERR_201_FILE_UNREADABLE"
	ErrCodeChecksumStore  = "ERR_202_CHECKSUM_STORE"
	ErrCodeIndexOpen      = "ERR_203_INDEX_OPEN"
	ErrCodeIndexWrite     = "ERR_204_INDEX_WRITE"
	ErrCodeIndexLocked    = "ERR_205_INDEX_LOCKED"

	// Parse errors (300-399)
	ErrCodeNoFrontMatter = "ERR_301_NO_FRONT_MATTER"
	ErrCodeMissingField  = "ERR_302_MISSING_FIELD"
	ErrCodeBadDate       = "ERR_303_BAD_DATE"
	ErrCodeBadYAML       = "ERR_304_BAD_YAML"

	// Query errors (400-499)
	ErrCodeQueryParse = "ERR_401_QUERY_PARSE"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract the leading digit of the numeric portion (e.g. "1" from "ERR_101_...")
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryParse
	case '4':
		return CategoryQuery
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// Setup-time failures are fatal; per-file and query failures are not.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeConfigNotFound, ErrCodeConfigInvalid, ErrCodeBadGlob,
		ErrCodeChecksumStore, ErrCodeIndexOpen, ErrCodeIndexWrite, ErrCodeIndexLocked:
		return SeverityFatal
	}
	return SeverityError
}
