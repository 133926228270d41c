package fileops

import (
	"fmt"
	"io"
	"os"

	"filewright/internal/logging"
)

// BackupSuffix is appended to the edited file's name to form its sibling
// backup path.
const BackupSuffix = ".backup"

// BackupRecord is a point-in-time copy of a file taken immediately before a
// mutating write. It lives only within a single Replace invocation: restored
// and discarded on write failure, retained as a recovery artifact on success.
type BackupRecord struct {
	Target string // the file being edited
	Path   string // the sibling copy
}

// newBackup copies target to target+BackupSuffix, preserving permissions.
func newBackup(target string) (*BackupRecord, error) {
	backupPath := target + BackupSuffix
	if err := copyFile(target, backupPath); err != nil {
		return nil, fmt.Errorf("failed to create backup: %w", err)
	}
	logging.FileOpsDebug("backup created: %s", backupPath)
	return &BackupRecord{Target: target, Path: backupPath}, nil
}

// Restore writes the backed-up bytes over the target.
func (b *BackupRecord) Restore() error {
	if err := copyFile(b.Path, b.Target); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	logging.FileOps("restored %s from %s", b.Target, b.Path)
	return nil
}

// Discard removes the backup file.
func (b *BackupRecord) Discard() error {
	return os.Remove(b.Path)
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
