package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) *Root {
	t.Helper()
	root, err := NewRoot(t.TempDir())
	require.NoError(t, err)
	return root
}

func TestNewRoot(t *testing.T) {
	t.Run("resolves relative input to absolute", func(t *testing.T) {
		dir := t.TempDir()
		root, err := NewRoot(dir)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(root.Dir()))
	})

	t.Run("rejects missing directory", func(t *testing.T) {
		_, err := NewRoot(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("rejects regular file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "f.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
		_, err := NewRoot(file)
		assert.Error(t, err)
	})
}

func TestValidateConfinement(t *testing.T) {
	root := newTestRoot(t)

	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"simple relative", "notes.txt", true},
		{"nested relative", "src/app/main.py", true},
		{"dot prefixed", "./notes.txt", true},
		{"nonexistent target", "not/yet/created.txt", true},
		{"empty path", "", false},
		{"whitespace path", "   ", false},
		{"parent traversal", "../outside.txt", false},
		{"deep traversal", "a/b/../../../outside.txt", false},
		{"absolute outside", "/etc/passwd", false},
		{"system directory", "/usr/local/bin/sh", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp, err := root.Validate(tt.raw)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, IsSecurityError(err), "want SecurityError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(vp.Resolved))
			rel, err := filepath.Rel(root.Dir(), vp.Resolved)
			require.NoError(t, err)
			assert.NotContains(t, rel, "..")
			assert.Equal(t, tt.raw, vp.Raw)
		})
	}
}

func TestValidateAbsoluteInsideRoot(t *testing.T) {
	root := newTestRoot(t)

	vp, err := root.Validate(filepath.Join(root.Dir(), "inside.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root.Dir(), "inside.txt"), vp.Resolved)
}

func TestValidateSymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("s"), 0644))

	root := newTestRoot(t)
	link := filepath.Join(root.Dir(), "escape")
	require.NoError(t, os.Symlink(outside, link))

	_, err := root.Validate("escape/secret.txt")
	require.Error(t, err)
	assert.True(t, IsSecurityError(err))
}

func TestValidateSymlinkInsideRoot(t *testing.T) {
	root := newTestRoot(t)
	target := filepath.Join(root.Dir(), "real")
	require.NoError(t, os.MkdirAll(target, 0755))
	require.NoError(t, os.Symlink(target, filepath.Join(root.Dir(), "alias")))

	vp, err := root.Validate("alias/file.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(target, "file.txt"), vp.Resolved)
}

func TestDenylist(t *testing.T) {
	tests := []struct {
		raw     string
		pattern string
	}{
		{"../peer.txt", "../"},
		{"docs/../../up.txt", "../"},
		{"backup/shadow.bak", "shadow"},
		{"fake/etc/shadow", "/etc/"},
		{"my/passwd.txt", "passwd"},
		{"PASSWD", "passwd"},
		{"notes/hosts", "hosts"},
		{"backup/.ssh/id_rsa", ".ssh/"},
		{"safe/notes.txt", ""},
		{"password.txt", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.pattern, matchDenylist(tt.raw))
		})
	}
}

func TestDenylistEnvLocalException(t *testing.T) {
	assert.Equal(t, "", matchDenylist("../.env.local"))
	assert.Equal(t, "", matchDenylist("../config/.env.local"))
	// The exception only lifts the traversal pattern, nothing else.
	assert.Equal(t, "/etc/", matchDenylist("/etc/.env.local"))
	assert.Equal(t, "../", matchDenylist("../other.txt"))
}

func TestSecurityErrorMessage(t *testing.T) {
	root := newTestRoot(t)
	_, err := root.Validate("../outside.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SecurityError")
	assert.Contains(t, err.Error(), `"../outside.txt"`)
}
