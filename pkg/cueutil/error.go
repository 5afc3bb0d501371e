// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

var (
	// ErrInvalidDocument is the sentinel wrapped by ValidationError and
	// DocumentError.
	ErrInvalidDocument = errors.New("invalid CUE document")
	// ErrFileTooLarge is the sentinel wrapped by FileTooLargeError.
	ErrFileTooLarge = errors.New("file too large")
)

type (
	// ValidationError represents a single CUE validation error with context.
	ValidationError struct {
		// FilePath is the file being validated.
		FilePath string

		// CUEPath is the JSON path to the invalid value (e.g., "settings.debug_verbosity").
		CUEPath CUEPath

		// Message is the validation error message.
		Message string

		// Suggestion is an optional hint for fixing the error.
		Suggestion string
	}

	// DocumentError collects every validation error reported for one document.
	DocumentError struct {
		FilePath string
		Issues   []*ValidationError
	}

	// FileTooLargeError is returned when a document exceeds the size limit.
	FileTooLargeError struct {
		FilePath string
		Size     int64
		Max      int64
	}

	// Suggester returns a fix hint for an invalid value at path, or "".
	Suggester func(path CUEPath) string
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.CUEPath != "" {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.CUEPath, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// Unwrap returns ErrInvalidDocument for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrInvalidDocument }

// Error implements the error interface.
func (e *DocumentError) Error() string {
	if len(e.Issues) == 1 {
		return e.Issues[0].Error()
	}
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		if issue.CUEPath != "" {
			lines[i] = fmt.Sprintf("%s: %s", issue.CUEPath, issue.Message)
		} else {
			lines[i] = issue.Message
		}
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(lines, "\n  "))
}

// Unwrap returns ErrInvalidDocument for errors.Is() compatibility.
func (e *DocumentError) Unwrap() error { return ErrInvalidDocument }

// Suggestions returns the non-empty suggestions of every issue, deduplicated.
func (e *DocumentError) Suggestions() []string {
	var out []string
	seen := make(map[string]bool)
	for _, issue := range e.Issues {
		if issue.Suggestion != "" && !seen[issue.Suggestion] {
			seen[issue.Suggestion] = true
			out = append(out, issue.Suggestion)
		}
	}
	return out
}

// Error implements the error interface.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.FilePath, e.Size, e.Max)
}

// Unwrap returns ErrFileTooLarge for errors.Is() compatibility.
func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// FormatError formats a CUE error with JSON path prefixes for clear error messages.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - manifest.cue: settings.debug_check_level: invalid value 12 (out of bound <=9)
//   - config.cue: output.format: conflicting values "text" and "xml"
//
// CUE errors become a *DocumentError; any other error is wrapped with the
// file path.
func FormatError(err error, filePath string) error {
	return formatError(err, filePath, nil)
}

func formatError(err error, filePath string, suggest Suggester) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	doc := &DocumentError{FilePath: filePath}
	for _, e := range cueErrs {
		path := CUEPath(formatPath(cueerrors.Path(e)))
		msg := e.Error()

		// CUE sometimes repeats the path at the start of the message.
		if path != "" && strings.HasPrefix(msg, string(path)) {
			msg = strings.TrimPrefix(msg, string(path))
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		issue := &ValidationError{FilePath: filePath, CUEPath: path, Message: msg}
		if suggest != nil && path != "" {
			issue.Suggestion = suggest(path)
		}
		doc.Issues = append(doc.Issues, issue)
	}
	return doc
}

// formatPath converts a CUE error path to JSON-path notation. CUE reports
// paths as flat segments where list indices are numeric, e.g.
// ["packages", "2"] becomes "packages[2]".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
			continue
		}
		if i > 0 {
			result.WriteString(".")
		}
		result.WriteString(part)
	}
	return result.String()
}

func isIndex(part string) bool {
	if part == "" {
		return false
	}
	for _, c := range part {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize returns a *FileTooLargeError when data exceeds maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if size := int64(len(data)); size > maxSize {
		return &FileTooLargeError{FilePath: filename, Size: size, Max: maxSize}
	}
	return nil
}
