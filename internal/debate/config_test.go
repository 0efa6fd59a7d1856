package debate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtable/internal/agent"
)

func mustRoster(t *testing.T, agents ...agent.Agent) *agent.Roster {
	t.Helper()
	r, err := agent.NewRoster(agents...)
	if err != nil {
		t.Fatalf("NewRoster: %v", err)
	}
	return r
}

func validConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Client:  newFakeLLM(func(string, int) (string, error) { return "", nil }),
		Roster:  mustRoster(t, &stubAgent{name: "Writer", desc: "writes"}),
		Prompts: testPrompts(),
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	cfg := validConfig(t)
	orch, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaximumIterations, orch.cfg.MaximumIterations)
	assert.Equal(t, DefaultScoreThreshold, orch.cfg.ScoreThreshold)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nil client", func(c *Config) { c.Client = nil }},
		{"nil roster", func(c *Config) { c.Roster = nil }},
		{"missing selection prompt", func(c *Config) { c.Prompts.SpeakerSelection = "" }},
		{"missing next action prompt", func(c *Config) { c.Prompts.NextAction = "" }},
		{"negative iteration bound", func(c *Config) { c.MaximumIterations = -1 }},
		{"negative threshold", func(c *Config) { c.ScoreThreshold = -1 }},
		{"termination agent not in roster", func(c *Config) { c.TerminationAgents = []string{"Ghost"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(&cfg)
			_, err := New(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNew_AcceptsTerminationAgentInRoster(t *testing.T) {
	cfg := validConfig(t)
	cfg.Roster = mustRoster(t,
		&stubAgent{name: "Writer", desc: "writes"},
		&stubAgent{name: "Critic", desc: "reviews"},
	)
	cfg.TerminationAgents = []string{"Critic"}
	_, err := New(cfg)
	require.NoError(t, err)
}

// A termination prompt is optional: without one the debate runs on the
// iteration ceiling alone.
func TestNew_TerminationPromptOptional(t *testing.T) {
	cfg := validConfig(t)
	cfg.Prompts.Termination = ""
	_, err := New(cfg)
	require.NoError(t, err)
}
