package fileops

import (
	"errors"
	"fmt"
	"os"

	"filewright/internal/workspace"
)

// FormatFailure renders a primitive failure as the structured outcome string
// handed back to the conversation loop. Every message names the operation,
// the path, and the specific reason, so the caller can self-correct and
// retry. Nothing here is ever raised as an unhandled fault.
func FormatFailure(operation, path string, err error) string {
	var secErr *workspace.SecurityError
	if errors.As(err, &secErr) {
		return fmt.Sprintf("SecurityError: Cannot %s '%s' - %s", operation, path, secErr.Reason)
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return fmt.Sprintf("FileNotFoundError: Cannot %s '%s' - file does not exist", operation, path)
	case errors.Is(err, ErrNotAFile):
		return fmt.Sprintf("IsADirectoryError: Cannot %s '%s' - path is a directory", operation, path)
	case errors.Is(err, ErrAlreadyExists):
		return fmt.Sprintf("Error: File '%s' already exists. Use replace_content to modify existing files.", path)
	case errors.Is(err, ErrTextNotFound):
		return fmt.Sprintf("Error: The specified text to replace was not found in '%s'. Please check the exact text including whitespace and indentation.", path)
	}

	var ambiguous *AmbiguousError
	if errors.As(err, &ambiguous) {
		return fmt.Sprintf("Error: Found %d occurrences of the text to replace in '%s'. Please provide more specific context to ensure unique replacement.", ambiguous.Count, path)
	}

	var rangeErr *RangeError
	if errors.As(err, &rangeErr) {
		return fmt.Sprintf("Error: Cannot %s '%s' - %s", operation, path, rangeErr.Error())
	}

	if errors.Is(err, os.ErrPermission) {
		return fmt.Sprintf("PermissionError: Cannot %s '%s' - insufficient permissions", operation, path)
	}

	return fmt.Sprintf("UnexpectedError: Cannot %s '%s' - %v", operation, path, err)
}
