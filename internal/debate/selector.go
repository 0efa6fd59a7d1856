package debate

import (
	"context"
	"log"
	"strings"

	"roundtable/internal/agent"
	"roundtable/internal/chat"
	"roundtable/internal/llm"
)

// speakerSelector maps (roster, transcript) to the next speaker. The
// selection policy lives in the prompt text; the selector's only mechanical
// rule is the fallback: any decision that is not exactly one roster name
// resolves to the first roster member. Structural rules in the prompt
// ("the evaluator must not open, never the same speaker twice") are
// advisory to the model, a best-effort ordering, not an invariant.
type speakerSelector struct {
	client   llm.Client
	prompt   string
	settings llm.Settings
}

// selectNext returns the chosen agent and whether the fallback was applied.
// Backend transport failures are returned as-is; they are fatal for the
// session, unlike an unusable decision.
func (s *speakerSelector) selectNext(ctx context.Context, roster *agent.Roster, history []chat.Message) (agent.Agent, bool, error) {
	prompt := renderPrompt(s.prompt, map[string]string{
		"agents":  roster.Describe(),
		"history": chat.RenderHistory(history),
	})
	ctx = llm.WithPhase(ctx, "selection")
	ctx = llm.WithSettings(ctx, s.settings)
	out, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, false, err
	}

	name := strings.TrimSpace(out)
	if a, ok := roster.Get(name); ok {
		log.Printf("------- Speaker selected: %s", name)
		return a, false, nil
	}
	// Unparseable or unknown name: documented default, not an error.
	// Surfaced in the log because it signals a broken selection policy.
	first := roster.First()
	log.Printf("selector: unusable decision %q, falling back to %s", name, first.Name())
	return first, true, nil
}
