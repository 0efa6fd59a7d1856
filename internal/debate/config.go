package debate

import (
	"context"
	"errors"
	"fmt"

	"roundtable/internal/agent"
	"roundtable/internal/chat"
	"roundtable/internal/llm"
)

// ErrInvalidConfig wraps every configuration validation failure. Invalid
// configurations fail at construction, never mid-debate.
var ErrInvalidConfig = errors.New("debate: invalid configuration")

func errField(field string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, field)
}

const (
	// DefaultMaximumIterations bounds a debate when the caller does not.
	DefaultMaximumIterations = 6
	// DefaultScoreThreshold is the stop bar on the 1-10 evaluation scale.
	DefaultScoreThreshold = 8.0
)

// Settings carries per-call execution settings for each control prompt.
type Settings struct {
	Selection   llm.Settings
	NextAction  llm.Settings
	Termination llm.Settings
}

// Result is handed to the completion hook after extraction.
type Result struct {
	SessionID  string
	UserID     string
	Transcript []chat.Message
	Artifact   []byte
}

// Config assembles one debate: the roster, the control prompts, the
// termination policy and the extraction policy. It is validated once by
// New and shared read-only afterwards.
type Config struct {
	Client llm.Client
	Roster *agent.Roster

	Prompts  Prompts
	Settings Settings

	// MaximumIterations is the hard turn ceiling guaranteeing liveness.
	// Zero selects DefaultMaximumIterations.
	MaximumIterations int

	// TerminationAgents names the roster subset whose turns trigger score
	// evaluation. Empty means every agent's turn is evaluated.
	TerminationAgents []string

	// ScoreThreshold is the stop bar for the score-based termination path.
	// Zero selects DefaultScoreThreshold.
	ScoreThreshold float64

	// ResultExtractor overrides the default extraction policy. Failures
	// degrade to the default policy; they never surface to the caller.
	ResultExtractor Extractor

	// InitialStatus, when set, is emitted as the first status event.
	InitialStatus string

	// OnComplete is invoked once per completed session, before the final
	// artifact event. Best-effort; errors are logged, never streamed.
	OnComplete func(ctx context.Context, res Result) error
}

// normalize fills defaulted fields in place.
func (c *Config) normalize() {
	if c.MaximumIterations == 0 {
		c.MaximumIterations = DefaultMaximumIterations
	}
	if c.ScoreThreshold == 0 {
		c.ScoreThreshold = DefaultScoreThreshold
	}
}

// Validate enforces the configuration invariants: a usable backend, a
// non-empty roster, non-empty control prompts, a positive iteration bound
// and termination-agent referential integrity.
func (c *Config) Validate() error {
	if c.Client == nil {
		return errField("client")
	}
	if c.Roster == nil || c.Roster.Len() == 0 {
		return errField("roster")
	}
	if err := c.Prompts.Validate(); err != nil {
		return err
	}
	if c.MaximumIterations < 1 {
		return errField("maximum_iterations")
	}
	if c.ScoreThreshold < 0 {
		return errField("score_threshold")
	}
	for _, name := range c.TerminationAgents {
		if !c.Roster.Contains(name) {
			return fmt.Errorf("%w: termination agent %q not in roster", ErrInvalidConfig, name)
		}
	}
	return nil
}
