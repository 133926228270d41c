// Package llm defines the reasoning-call boundary: the message types the
// conversation loop exchanges with an external model and the client that
// carries them over the wire.
package llm

import "context"

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one turn in the conversation history.
type Message struct {
	Role    string
	Content string

	// ToolCalls is set on assistant turns that request tool invocations.
	ToolCalls []ToolCall

	// ToolCallID and Name are set on tool turns, pairing the result with
	// the call it answers.
	ToolCallID string
	Name       string
}

// ToolDefinition describes a tool the model may invoke.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any // JSON Schema for parameters
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// Usage captures token usage metrics from the model.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ToolResponse is the model's answer to one reasoning call: either final
// text, or one or more tool calls to execute before the next call.
type ToolResponse struct {
	Text       string
	ToolCalls  []ToolCall
	StopReason string // "stop" or "tool_calls"
	Usage      Usage
}

// Client is the interface the conversation loop drives. Implementations
// must send the full ordered history plus the tool schemas and return the
// assistant's next turn.
type Client interface {
	ChatWithTools(ctx context.Context, messages []Message, tools []ToolDefinition) (*ToolResponse, error)
}
