package tools

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"filewright/internal/fileops"
	"filewright/internal/logging"
	"filewright/internal/workspace"
)

// Dispatcher executes tool calls against one workspace root. Every outcome,
// success or failure, is a structured string; the conversation loop never
// sees a fault it has to recover from.
type Dispatcher struct {
	root *workspace.Root
}

// NewDispatcher creates a dispatcher confined to root.
func NewDispatcher(root *workspace.Root) *Dispatcher {
	return &Dispatcher{root: root}
}

// Dispatch resolves name against the closed operation set and executes it.
// An unknown name is a security-relevant event, not a generic error: the
// caller is operating outside the declared capability surface.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) string {
	op, ok := opByName(name)
	if !ok {
		logging.ToolsWarn("unknown tool requested: %q", name)
		return fmt.Sprintf("SecurityError: Unknown tool '%s'. Available tools: [%s]",
			name, strings.Join(Names(), " "))
	}

	start := time.Now()
	logging.ToolsDebug("executing %s", name)

	var outcome string
	switch op {
	case OpReadFile:
		outcome = d.readFile(args)
	case OpCreateFile:
		outcome = d.createFile(args)
	case OpReplaceContent:
		outcome = d.replaceContent(args)
	}

	logging.Tools("%s completed in %v (%d bytes)", name, time.Since(start), len(outcome))
	return outcome
}

func (d *Dispatcher) readFile(args map[string]any) string {
	path, err := stringArg(args, "file_path")
	if err != nil {
		return fmt.Sprintf("Error: Cannot read file - %v", err)
	}
	var rng fileops.ReadRange
	rng.Start, rng.StartSet, err = intArg(args, "start_line")
	if err != nil {
		return fmt.Sprintf("Error: Cannot read '%s' - %v", path, err)
	}
	rng.End, rng.EndSet, err = intArg(args, "end_line")
	if err != nil {
		return fmt.Sprintf("Error: Cannot read '%s' - %v", path, err)
	}

	result, err := fileops.Read(d.root, path, rng)
	if err != nil {
		return fileops.FormatFailure("read", path, err)
	}

	return fmt.Sprintf("Successfully read %s (%d lines)\nContent:\n%s",
		filepath.Base(result.Path.Resolved), result.LineCount, result.Content)
}

func (d *Dispatcher) createFile(args map[string]any) string {
	path, err := stringArg(args, "file_path")
	if err != nil {
		return fmt.Sprintf("Error: Cannot create file - %v", err)
	}
	content, err := stringArg(args, "content")
	if err != nil {
		return fmt.Sprintf("Error: Cannot create '%s' - %v", path, err)
	}

	result, err := fileops.Create(d.root, path, content)
	if err != nil {
		return fileops.FormatFailure("create", path, err)
	}

	return fmt.Sprintf("Successfully created file '%s' with %d characters",
		filepath.Base(result.Path.Resolved), result.Chars)
}

func (d *Dispatcher) replaceContent(args map[string]any) string {
	path, err := stringArg(args, "file_path")
	if err != nil {
		return fmt.Sprintf("Error: Cannot replace content - %v", err)
	}
	oldString, err := stringArg(args, "old_string")
	if err != nil {
		return fmt.Sprintf("Error: Cannot replace content in '%s' - %v", path, err)
	}
	newString, err := stringArg(args, "new_string")
	if err != nil {
		return fmt.Sprintf("Error: Cannot replace content in '%s' - %v", path, err)
	}

	result, err := fileops.Replace(d.root, path, oldString, newString)
	if err != nil {
		return fileops.FormatFailure("replace content in", path, err)
	}

	return fmt.Sprintf("Successfully replaced content in '%s'. Changed %d lines to %d lines. Backup created at '%s'.",
		filepath.Base(result.Path.Resolved), result.OldLines, result.NewLines, filepath.Base(result.BackupPath))
}
