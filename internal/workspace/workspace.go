// Package workspace enforces path confinement for every file operation.
//
// A Root is fixed at engine construction. Validate is the single trust
// boundary: no code may open a file using a caller-supplied string that has
// not passed through it.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"filewright/internal/logging"
)

// Root is the directory the engine is confined to. Immutable after creation.
type Root struct {
	dir string
}

// NewRoot resolves dir into an absolute, symlink-free workspace root.
// An empty dir means the current working directory.
func NewRoot(dir string) (*Root, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = cwd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root %q: %w", dir, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace root %q is not usable: %w", dir, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("workspace root %q is not usable: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace root %q is not a directory", dir)
	}

	return &Root{dir: resolved}, nil
}

// Dir returns the resolved workspace root directory.
func (r *Root) Dir() string {
	return r.dir
}

// ValidatedPath is the proven-safe result of Validate. Resolved is absolute,
// symlink-resolved, and inside the root. Raw keeps the caller's original
// string for error messages.
type ValidatedPath struct {
	Resolved string
	Raw      string
}

// Validate resolves raw against the root and authorizes it.
//
// Relative paths are joined under the root; absolute paths must still land
// inside it. Containment is decided on the canonical (symlink-resolved) form,
// never on string prefixes. The original string is additionally screened
// against a denylist of sensitive location markers, so an input crafted to
// exploit resolution quirks still fails even when canonicalization alone
// would have passed.
func (r *Root) Validate(raw string) (ValidatedPath, error) {
	if strings.TrimSpace(raw) == "" {
		return ValidatedPath{}, &SecurityError{Path: raw, Reason: "empty path"}
	}

	candidate := raw
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(r.dir, candidate)
	}

	resolved, err := canonicalize(candidate)
	if err != nil {
		return ValidatedPath{}, &SecurityError{Path: raw, Reason: fmt.Sprintf("cannot resolve path: %v", err)}
	}

	if !contains(r.dir, resolved) {
		logging.WorkspaceWarn("confinement violation: %q resolves to %q outside %q", raw, resolved, r.dir)
		return ValidatedPath{}, &SecurityError{
			Path:   raw,
			Reason: fmt.Sprintf("path is outside the allowed workspace: %s", r.dir),
		}
	}

	if pattern := matchDenylist(raw); pattern != "" {
		logging.WorkspaceWarn("denylist violation: %q matched %q", raw, pattern)
		return ValidatedPath{}, &SecurityError{
			Path:   raw,
			Reason: fmt.Sprintf("path contains potentially dangerous pattern: %s", pattern),
		}
	}

	// SecureJoin re-resolves the relative remainder under the root, so the
	// returned path cannot point outside it even if a component is replaced
	// by a symlink between validation steps.
	rel, err := filepath.Rel(r.dir, resolved)
	if err != nil {
		return ValidatedPath{}, &SecurityError{Path: raw, Reason: fmt.Sprintf("cannot resolve path: %v", err)}
	}
	final, err := securejoin.SecureJoin(r.dir, rel)
	if err != nil {
		return ValidatedPath{}, &SecurityError{Path: raw, Reason: fmt.Sprintf("cannot resolve path: %v", err)}
	}

	logging.WorkspaceDebug("validated %q -> %q", raw, final)
	return ValidatedPath{Resolved: final, Raw: raw}, nil
}

// canonicalize resolves symlinks and collapses dot segments. The target may
// not exist yet (Create), so symlinks are evaluated on the longest existing
// ancestor and the remainder is appended cleaned.
func canonicalize(path string) (string, error) {
	cleaned := filepath.Clean(path)

	resolved, err := filepath.EvalSymlinks(cleaned)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	dir := cleaned
	var tail []string
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Hit the filesystem root without finding an existing ancestor.
			return cleaned, nil
		}
		tail = append([]string{filepath.Base(dir)}, tail...)
		dir = parent

		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			return filepath.Join(append([]string{resolved}, tail...)...), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
	}
}

// contains reports whether target equals root or is a descendant of it.
// Both arguments must already be canonical.
func contains(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
