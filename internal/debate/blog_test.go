package debate

import (
	"context"
	"testing"
)

func TestBlogConfig_GatesOnCritic(t *testing.T) {
	writer := &stubAgent{name: "Writer", desc: "writes"}
	critic := &stubAgent{name: "Critic", desc: "reviews"}
	client := newFakeLLM(func(string, int) (string, error) { return "", nil })

	cfg, err := BlogConfig(client, writer, critic, 6, 8.0)
	if err != nil {
		t.Fatalf("BlogConfig: %v", err)
	}
	if len(cfg.TerminationAgents) != 1 || cfg.TerminationAgents[0] != "Critic" {
		t.Fatalf("termination agents: %v", cfg.TerminationAgents)
	}
	if cfg.Roster.First().Name() != "Writer" {
		t.Fatalf("primary agent: %s", cfg.Roster.First().Name())
	}
	if _, err := New(cfg); err != nil {
		t.Fatalf("config must validate: %v", err)
	}
}

// With the Critic gating termination, Writer scores are never requested
// and the debate stops once the Critic clears the threshold.
func TestBlogDebate_EndToEnd(t *testing.T) {
	writer := &stubAgent{name: "Writer", desc: "writes", replies: []string{"draft", "revised draft"}}
	critic := &stubAgent{name: "Critic", desc: "reviews", replies: []string{"**Overall Score: 9**"}}

	client := newFakeLLM(func(phase string, n int) (string, error) {
		switch phase {
		case "selection":
			if n%2 == 0 {
				return "Writer", nil
			}
			return "Critic", nil
		case "termination":
			return "9", nil
		default:
			return "Critic: Approves the draft", nil
		}
	})

	orch, err := NewBlogDebate(client, writer, critic, 6, 8.0)
	if err != nil {
		t.Fatalf("NewBlogDebate: %v", err)
	}

	events := collect(t, orch.Run(context.Background(), "u", seedMessages()))
	if events[0].Status != "Writer: Starting the blog post" {
		t.Fatalf("initial status: %+v", events[0])
	}
	// Writer, Critic(9) -> stop. Only the Critic turn is evaluated.
	if writer.calls != 1 || critic.calls != 1 {
		t.Fatalf("turns: writer=%d critic=%d", writer.calls, critic.calls)
	}
	if client.count("termination") != 1 {
		t.Fatalf("evaluations: %d", client.count("termination"))
	}
	artifact := decodeArtifact(t, events[len(events)-1])
	if artifact.Name != "Writer" || artifact.Content != "draft" {
		t.Fatalf("artifact: %+v", artifact)
	}
}
