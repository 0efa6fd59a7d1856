package debate

import (
	"roundtable/internal/agent"
	"roundtable/internal/llm"
)

// Default prompt templates for the Writer/Critic blog debate. The
// structural speaking rules here are instructions to the selection model,
// enforced only by the first-agent fallback.
const (
	blogSpeakerSelectionPrompt = `
You are the debate orchestrator for a blog writing session.

- Return ONLY an agent name from the list of available agents below.
- Return the agent name exactly as shown, without any other text.
- The names are case-sensitive.
- Based on the history, select the most appropriate next speaker:
  * Writer goes first to draft or revise the blog post
  * Critic reviews the latest draft and gives an overall score from 1 to 10
  * After a review, Writer revises the draft using the feedback
- The Critic must never speak first.
- Never let the same agent speak twice in a row.

# AVAILABLE AGENTS

{{$agents}}

# CHAT HISTORY

{{$history}}
`

	blogNextActionPrompt = `
Based on the chat history below, describe the next action in the writing session.

Provide a brief (3-5 word) description of what's happening next.
Always include the agent name, for example: "Writer: Revising the draft"

If the Critic has given an overall score of 8 or higher, respond with "Critic: Approves the draft".

AGENTS:
- Writer: Drafts and revises the blog post
- Critic: Reviews drafts and scores them on a scale of 1-10

CHAT HISTORY: {{$history}}
`

	blogTerminationPrompt = `
Extract the numerical score from the critic's message.
Return only the number, nothing else.
{{$evaluation}}
`
)

// BlogPrompts returns the control prompts for the default blog debate.
func BlogPrompts() Prompts {
	return Prompts{
		SpeakerSelection: blogSpeakerSelectionPrompt,
		NextAction:       blogNextActionPrompt,
		Termination:      blogTerminationPrompt,
	}
}

// BlogConfig assembles the default Writer/Critic debate configuration:
// the Critic's turns gate termination and the final artifact is the
// Writer's latest draft. Callers may set hooks before handing it to New.
func BlogConfig(client llm.Client, writer, critic agent.Agent, maxIterations int, threshold float64) (Config, error) {
	roster, err := agent.NewRoster(writer, critic)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Client:  client,
		Roster:  roster,
		Prompts: BlogPrompts(),
		Settings: Settings{
			Selection:   llm.Temp(0),
			NextAction:  llm.Temp(0),
			Termination: llm.Temp(0),
		},
		MaximumIterations: maxIterations,
		TerminationAgents: []string{critic.Name()},
		ScoreThreshold:    threshold,
		InitialStatus:     "Writer: Starting the blog post",
	}, nil
}

// NewBlogDebate builds an orchestrator from BlogConfig unchanged.
func NewBlogDebate(client llm.Client, writer, critic agent.Agent, maxIterations int, threshold float64) (*Orchestrator, error) {
	cfg, err := BlogConfig(client, writer, critic, maxIterations, threshold)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}
