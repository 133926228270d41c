// Package fileops implements the three file-mutation primitives: Read,
// Create, and Replace. Every primitive validates its path against the
// workspace root before touching the filesystem and returns a typed result
// or an error from the package taxonomy; nothing here panics on I/O
// failure.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filewright/internal/logging"
	"filewright/internal/workspace"
)

// writeReplaced performs the Replace write step. A variable so tests can
// inject write failures and exercise the backup/restore path.
var writeReplaced = func(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// ReadResult is the outcome of a successful Read.
type ReadResult struct {
	Path       workspace.ValidatedPath
	Content    string
	LineCount  int // lines returned, for caller verification
	TotalLines int
}

// CreateResult is the outcome of a successful Create.
type CreateResult struct {
	Path  workspace.ValidatedPath
	Chars int
}

// ReplaceResult is the outcome of a successful Replace. BackupPath names the
// retained recovery artifact; removing it is the caller's responsibility.
type ReplaceResult struct {
	Path       workspace.ValidatedPath
	BackupPath string
	OldLines   int
	NewLines   int
}

// ReadRange restricts a Read to a 1-based inclusive line range. Each bound
// applies only when its Set flag is on, so an explicit zero is validated
// against the file rather than treated as unset.
type ReadRange struct {
	Start    int
	End      int
	StartSet bool
	EndSet   bool
}

// Read returns file content, optionally restricted to a line range.
func Read(root *workspace.Root, path string, rng ReadRange) (*ReadResult, error) {
	vp, err := root.Validate(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(vp.Resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", path, ErrNotFound)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q: %w", path, ErrNotAFile)
	}

	data, err := os.ReadFile(vp.Resolved)
	if err != nil {
		return nil, err
	}
	content := decode(data)

	lines := splitLines(content)
	total := len(lines)

	if rng.StartSet || rng.EndSet {
		startIdx := 0
		if rng.StartSet {
			startIdx = rng.Start - 1
		}
		endIdx := total
		if rng.EndSet {
			endIdx = rng.End
		}

		if startIdx < 0 || startIdx >= total {
			return nil, &RangeError{Bound: "start_line", Value: rng.Start, TotalLines: total}
		}
		if endIdx > total {
			return nil, &RangeError{Bound: "end_line", Value: rng.End, TotalLines: total}
		}
		if endIdx < startIdx {
			endIdx = startIdx
		}
		lines = lines[startIdx:endIdx]
	}

	logging.FileOps("read %s (%d/%d lines)", vp.Resolved, len(lines), total)
	return &ReadResult{
		Path:       vp,
		Content:    strings.Join(lines, ""),
		LineCount:  len(lines),
		TotalLines: total,
	}, nil
}

// Create writes a new file. It never overwrites: an existing target fails
// with ErrAlreadyExists and is left untouched. Missing parent directories
// are created. The write goes through a same-directory temp file and rename
// so a reader never observes a half-written file.
func Create(root *workspace.Root, path, content string) (*CreateResult, error) {
	vp, err := root.Validate(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Lstat(vp.Resolved); err == nil {
		return nil, fmt.Errorf("%q: %w", path, ErrAlreadyExists)
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	dir := filepath.Dir(vp.Resolved)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".filewright-*")
	if err != nil {
		return nil, fmt.Errorf("failed to stage file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return nil, err
	}
	if err := os.Rename(tmpName, vp.Resolved); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	logging.FileOps("created %s (%d chars)", vp.Resolved, len(content))
	return &CreateResult{Path: vp, Chars: len(content)}, nil
}

// Replace performs a surgical edit: oldText must occur in the file exactly
// once, as a literal match. A backup copy is taken before the write; on
// write failure the original bytes are restored and the backup removed, so
// the visible file is always either the old content or the new content. On
// success the backup is retained as a recovery artifact.
func Replace(root *workspace.Root, path, oldText, newText string) (*ReplaceResult, error) {
	vp, err := root.Validate(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(vp.Resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", path, ErrNotFound)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q: %w", path, ErrNotAFile)
	}

	data, err := os.ReadFile(vp.Resolved)
	if err != nil {
		return nil, err
	}
	content := decode(data)

	switch count := strings.Count(content, oldText); {
	case count == 0:
		return nil, fmt.Errorf("%q: %w", path, ErrTextNotFound)
	case count > 1:
		return nil, &AmbiguousError{Path: path, Count: count}
	}

	backup, err := newBackup(vp.Resolved)
	if err != nil {
		return nil, err
	}

	newContent := strings.Replace(content, oldText, newText, 1)
	if err := writeReplaced(vp.Resolved, []byte(newContent), info.Mode().Perm()); err != nil {
		// The backup is only discarded once the original bytes are back in
		// place. If the restore fails too, the backup is the sole surviving
		// copy, so it is retained and named in the error.
		if restoreErr := backup.Restore(); restoreErr != nil {
			logging.FileOpsWarn("restore after failed write also failed: %v", restoreErr)
			return nil, fmt.Errorf("failed to write file: %w (original content preserved at %s)", err, backup.Path)
		}
		if discardErr := backup.Discard(); discardErr != nil {
			logging.FileOpsWarn("failed to remove backup %s: %v", backup.Path, discardErr)
		}
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	logging.FileOps("replaced content in %s (backup %s)", vp.Resolved, backup.Path)
	return &ReplaceResult{
		Path:       vp,
		BackupPath: backup.Path,
		OldLines:   strings.Count(oldText, "\n") + 1,
		NewLines:   strings.Count(newText, "\n") + 1,
	}, nil
}

// splitLines splits content into newline-terminated slices. The terminator
// stays attached, so "foo\nbar\n" is two lines and "foo\nbar" is also two.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
