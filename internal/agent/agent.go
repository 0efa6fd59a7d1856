// Package agent defines debate participants: their static definitions,
// the roster they speak from, and the LLM-backed reply capability.
package agent

import (
	"context"
	"fmt"
	"strings"

	"roundtable/internal/chat"
	"roundtable/internal/llm"
)

// Agent is a debate participant able to reply given the transcript so far.
type Agent interface {
	Name() string
	Description() string
	Respond(ctx context.Context, history []chat.Message) (chat.Message, error)
}

// ChatAgent is an LLM-backed Agent built from a Definition.
type ChatAgent struct {
	def    Definition
	client llm.Client
}

func NewChatAgent(def Definition, client llm.Client) (*ChatAgent, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("agent %s: nil llm client", def.Name)
	}
	return &ChatAgent{def: def, client: client}, nil
}

func (a *ChatAgent) Name() string        { return a.def.Name }
func (a *ChatAgent) Description() string { return a.def.Description }

// Respond generates the agent's contribution conditioned on the full history.
func (a *ChatAgent) Respond(ctx context.Context, history []chat.Message) (chat.Message, error) {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(a.def.Instructions))
	b.WriteString("\n\n# CONVERSATION SO FAR\n\n")
	b.WriteString(chat.RenderHistory(history))
	b.WriteString("\n")
	b.WriteString(a.def.Name)
	b.WriteString(":")

	ctx = llm.WithPhase(ctx, a.def.Name)
	if a.def.Temperature != nil {
		ctx = llm.WithSettings(ctx, llm.Settings{Temperature: a.def.Temperature})
	}
	text, err := a.client.GenerateText(ctx, b.String())
	if err != nil {
		return chat.Message{}, fmt.Errorf("agent %s: %w", a.def.Name, err)
	}
	return chat.Message{
		Role:    chat.RoleAssistant,
		Name:    a.def.Name,
		Content: text,
	}, nil
}
