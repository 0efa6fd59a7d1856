package llm

import (
	"context"
	"fmt"
	"sync"
)

// FakeClient produces deterministic replies per phase for offline runs and
// demos. It drives the default Writer/Critic debate to a scored stop without
// touching a real backend.
type FakeClient struct {
	mu    sync.Mutex
	turns int
	evals int
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	phase := PhaseFrom(ctx)
	if hook := HookFrom(ctx); hook != nil {
		hook.Before(ctx, phase, prompt)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out string
	switch phase {
	case "selection":
		if f.turns%2 == 0 {
			out = "Writer"
		} else {
			out = "Critic"
		}
		f.turns++
	case "termination":
		f.evals++
		// First evaluation falls short, second clears the default threshold.
		if f.evals < 2 {
			out = "5"
		} else {
			out = "9"
		}
	case "next_action":
		out = "Debate: preparing next contribution"
	default:
		out = fmt.Sprintf("%s: fake contribution %d", phase, f.turns)
	}
	if hook := HookFrom(ctx); hook != nil {
		hook.After(ctx, phase, out, nil)
	}
	return out, nil
}
