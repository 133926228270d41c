package engine

import (
	"context"
	"testing"

	"filewright/internal/llm"
)

// scriptStep is one pre-programmed model turn.
type scriptStep struct {
	resp *llm.ToolResponse
	err  error
	// check, when set, inspects the history the loop sent for this turn.
	check func(t *testing.T, messages []llm.Message)
}

// scriptedClient plays back a fixed sequence of model turns. When the
// script runs out the last step repeats, which lets a single tool-calling
// step drive the loop into its iteration ceiling.
type scriptedClient struct {
	t     *testing.T
	steps []scriptStep
	calls int
}

func (c *scriptedClient) ChatWithTools(ctx context.Context, messages []llm.Message, tools []llm.ToolDefinition) (*llm.ToolResponse, error) {
	c.t.Helper()
	if len(c.steps) == 0 {
		c.t.Fatal("scripted client called with empty script")
	}
	idx := c.calls
	if idx >= len(c.steps) {
		idx = len(c.steps) - 1
	}
	c.calls++

	step := c.steps[idx]
	if step.check != nil {
		step.check(c.t, messages)
	}
	return step.resp, step.err
}

func textTurn(text string) scriptStep {
	return scriptStep{resp: &llm.ToolResponse{Text: text, StopReason: "stop"}}
}

func toolTurn(calls ...llm.ToolCall) scriptStep {
	return scriptStep{resp: &llm.ToolResponse{ToolCalls: calls, StopReason: "tool_calls"}}
}
