package fileops

import (
	"errors"
	"fmt"
)

// Sentinel errors for the primitive failure taxonomy. Failures that need a
// payload (occurrence counts, line bounds) use the struct errors below.
var (
	// ErrNotFound is returned when the target file does not exist.
	ErrNotFound = errors.New("file does not exist")

	// ErrNotAFile is returned when the target is a directory.
	ErrNotAFile = errors.New("path is a directory")

	// ErrAlreadyExists is returned by Create when the target is present.
	ErrAlreadyExists = errors.New("file already exists")

	// ErrTextNotFound is returned by Replace when old_text has no match.
	ErrTextNotFound = errors.New("text to replace was not found")
)

// AmbiguousError is returned by Replace when old_text matches more than
// once. Count lets the caller supply more context and retry.
type AmbiguousError struct {
	Path  string
	Count int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("found %d occurrences of the text to replace in %q", e.Count, e.Path)
}

// RangeError is returned by Read when a requested line bound falls outside
// the file.
type RangeError struct {
	Bound      string // "start_line" or "end_line"
	Value      int
	TotalLines int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range: file has %d lines", e.Bound, e.Value, e.TotalLines)
}
