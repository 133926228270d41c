// Package engine runs the conversation loop: it feeds the dialogue history
// to the model, dispatches any tool calls the model requests, and keeps
// going until the model answers in plain text or the iteration ceiling is
// reached.
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"filewright/internal/llm"
	"filewright/internal/logging"
	"filewright/internal/session"
	"filewright/internal/tools"
	"filewright/internal/workspace"
)

// DefaultMaxIterations bounds the number of model round-trips per turn.
const DefaultMaxIterations = 10

// Config tunes an Engine. Zero values fall back to defaults.
type Config struct {
	// MaxIterations caps model round-trips within a single Chat call.
	MaxIterations int
	// Transcript, when set, receives a write-through copy of every turn.
	Transcript *session.Store
}

// Result summarizes one completed Chat call.
type Result struct {
	// FinalAnswer is the model's closing text, or the ceiling notice when
	// LimitReached is set.
	FinalAnswer  string
	Iterations   int
	ToolCalls    int
	LimitReached bool
}

// Engine owns the dialogue history for one session. It is not safe for
// concurrent use; callers serialize Chat calls.
type Engine struct {
	root          *workspace.Root
	client        llm.Client
	dispatcher    *tools.Dispatcher
	transcript    *session.Store
	history       []llm.Message
	sessionID     string
	maxIterations int
	state         State
}

// New builds an Engine rooted at root, talking to client.
func New(root *workspace.Root, client llm.Client, cfg Config) *Engine {
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Engine{
		root:          root,
		client:        client,
		dispatcher:    tools.NewDispatcher(root),
		transcript:    cfg.Transcript,
		sessionID:     uuid.NewString(),
		maxIterations: maxIterations,
		state:         StateIdle,
	}
}

// SessionID returns the identifier assigned to this engine's dialogue.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// AttachTranscript sets the write-through transcript store. Callers use
// this when the store is named after the engine's own session ID.
func (e *Engine) AttachTranscript(store *session.Store) {
	e.transcript = store
}

// State reports the loop phase. Outside of Chat this is StateIdle.
func (e *Engine) State() State {
	return e.state
}

// History returns a copy of the dialogue so far, system turn included.
// A turn that failed mid-flight keeps its messages, so a follow-up Chat
// resumes from the full record.
func (e *Engine) History() []llm.Message {
	out := make([]llm.Message, len(e.history))
	copy(out, e.history)
	return out
}

// Chat runs one user turn to completion. A transport fault surfaces as an
// error with the history preserved; hitting the iteration ceiling is a
// normal result, not an error.
func (e *Engine) Chat(ctx context.Context, userMessage string) (*Result, error) {
	if len(e.history) == 0 {
		e.appendTurn(llm.Message{Role: llm.RoleSystem, Content: buildSystemPrompt(e.root.Dir())})
	}
	e.appendTurn(llm.Message{Role: llm.RoleUser, Content: userMessage})

	result := &Result{}
	defer e.setState(StateIdle)

	for iteration := 1; iteration <= e.maxIterations; iteration++ {
		result.Iterations = iteration
		e.setState(StateAwaitingModel)
		logging.EngineDebug("session %s iteration %d/%d", e.sessionID, iteration, e.maxIterations)

		resp, err := e.client.ChatWithTools(ctx, e.History(), tools.Definitions())
		if err != nil {
			logging.EngineError("session %s model call failed: %v", e.sessionID, err)
			return nil, fmt.Errorf("model call failed: %w", err)
		}

		e.appendTurn(llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		if len(resp.ToolCalls) == 0 {
			e.setState(StateResponding)
			result.FinalAnswer = resp.Text
			logging.Engine("session %s finished in %d iteration(s), %d tool call(s)",
				e.sessionID, result.Iterations, result.ToolCalls)
			return result, nil
		}

		e.setState(StateToolDispatch)
		for _, call := range resp.ToolCalls {
			outcome := e.dispatcher.Dispatch(ctx, call.Name, call.Arguments)
			result.ToolCalls++
			e.appendTurn(llm.Message{
				Role:       llm.RoleTool,
				Content:    outcome,
				ToolCallID: call.ID,
				Name:       call.Name,
			})
		}
	}

	result.LimitReached = true
	result.FinalAnswer = fmt.Sprintf("Maximum iterations (%d) reached", e.maxIterations)
	logging.EngineWarn("session %s hit iteration ceiling (%d)", e.sessionID, e.maxIterations)
	return result, nil
}

func (e *Engine) setState(s State) {
	e.state = s
}

func (e *Engine) appendTurn(msg llm.Message) {
	e.history = append(e.history, msg)
	if e.transcript == nil {
		return
	}
	rec := session.Record{
		Role:       msg.Role,
		Content:    msg.Content,
		ToolCallID: msg.ToolCallID,
		ToolName:   msg.Name,
	}
	for _, call := range msg.ToolCalls {
		rec.ToolCalls = append(rec.ToolCalls, session.ToolCallRecord{
			ID:        call.ID,
			Name:      call.Name,
			Arguments: call.Arguments,
		})
	}
	if err := e.transcript.Append(rec); err != nil {
		logging.SessionWarn("transcript write failed: %v", err)
	}
}
