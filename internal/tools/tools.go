// Package tools exposes the engine's capability surface to the reasoning
// call: three file operations, each with a machine-readable schema, and a
// single exhaustive dispatch over them.
//
// The set is a closed enumeration rather than an open registry: adding a
// tool means extending the Op list and the dispatch switch, which keeps the
// whole security review surface in one place.
package tools

import "filewright/internal/llm"

// Op identifies one of the registered operations.
type Op int

const (
	OpReadFile Op = iota
	OpCreateFile
	OpReplaceContent
)

// Tool names as exposed to the reasoning call.
const (
	NameReadFile       = "read_file"
	NameCreateFile     = "create_file"
	NameReplaceContent = "replace_content"
)

// Ops lists every registered operation.
var Ops = []Op{OpReadFile, OpCreateFile, OpReplaceContent}

// Name returns the wire name of the operation.
func (op Op) Name() string {
	switch op {
	case OpReadFile:
		return NameReadFile
	case OpCreateFile:
		return NameCreateFile
	case OpReplaceContent:
		return NameReplaceContent
	}
	return "unknown"
}

// Names returns the wire names of all registered operations, in order.
func Names() []string {
	names := make([]string, len(Ops))
	for i, op := range Ops {
		names[i] = op.Name()
	}
	return names
}

// Definition returns the operation's schema for the reasoning call.
func (op Op) Definition() llm.ToolDefinition {
	switch op {
	case OpReadFile:
		return llm.ToolDefinition{
			Name:        NameReadFile,
			Description: "Read the contents of a file, optionally specifying line ranges. Use this to understand file structure before making changes.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"file_path": map[string]any{
						"type":        "string",
						"description": "Path to the file to read (must be within workspace)",
					},
					"start_line": map[string]any{
						"type":        "integer",
						"description": "Starting line number (1-based, optional)",
					},
					"end_line": map[string]any{
						"type":        "integer",
						"description": "Ending line number (1-based, inclusive, optional)",
					},
				},
				"required": []string{"file_path"},
			},
		}
	case OpCreateFile:
		return llm.ToolDefinition{
			Name:        NameCreateFile,
			Description: "Create a new file with specified content. Fails if the file already exists to prevent accidental overwrites.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"file_path": map[string]any{
						"type":        "string",
						"description": "Path to the new file to create",
					},
					"content": map[string]any{
						"type":        "string",
						"description": "Content to write to the new file",
					},
				},
				"required": []string{"file_path", "content"},
			},
		}
	case OpReplaceContent:
		return llm.ToolDefinition{
			Name:        NameReplaceContent,
			Description: "Surgically replace specific content in a file. Provide the exact text to replace (including indentation/whitespace) and the new text. This is safer than rewriting entire files.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"file_path": map[string]any{
						"type":        "string",
						"description": "Path to the file to edit",
					},
					"old_string": map[string]any{
						"type":        "string",
						"description": "Exact string to find and replace (must match exactly including whitespace)",
					},
					"new_string": map[string]any{
						"type":        "string",
						"description": "String to replace the old string with",
					},
				},
				"required": []string{"file_path", "old_string", "new_string"},
			},
		}
	}
	return llm.ToolDefinition{}
}

// Definitions returns the schemas for all registered operations, in order.
func Definitions() []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, len(Ops))
	for i, op := range Ops {
		defs[i] = op.Definition()
	}
	return defs
}

// opByName resolves a wire name against the closed set.
func opByName(name string) (Op, bool) {
	for _, op := range Ops {
		if op.Name() == name {
			return op, true
		}
	}
	return 0, false
}
