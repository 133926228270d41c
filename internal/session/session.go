// Package session persists conversation transcripts as append-only JSONL
// files under <workspace>/.filewright/sessions. The transcript is a
// convenience artifact: writes are best-effort and never interrupt the
// conversation loop.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"filewright/internal/logging"
)

// ToolCallRecord mirrors one tool invocation on an assistant turn.
type ToolCallRecord struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Record is one transcript line.
type Record struct {
	Role       string           `json:"role"`
	Content    string           `json:"content"`
	ToolCalls  []ToolCallRecord `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
	ToolName   string           `json:"tool_name,omitempty"`
	CreatedAt  string           `json:"created_at"`
}

// Store appends records for a single session.
type Store struct {
	path string
	file *os.File
}

// NewStore opens (creating as needed) the transcript file for sessionID.
func NewStore(workspaceDir, sessionID string) (*Store, error) {
	dir := filepath.Join(workspaceDir, ".filewright", "sessions")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	path := filepath.Join(dir, sessionID+".jsonl")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}

	logging.Session("transcript opened: %s", path)
	return &Store{path: path, file: file}, nil
}

// Path returns the transcript file path.
func (s *Store) Path() string {
	return s.path
}

// Append writes one record. CreatedAt is stamped if unset.
func (s *Store) Append(rec Record) error {
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript record: %w", err)
	}
	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append transcript record: %w", err)
	}
	return nil
}

// Close closes the transcript file.
func (s *Store) Close() error {
	return s.file.Close()
}
