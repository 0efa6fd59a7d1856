package debate

import (
	"context"
	"log"
	"strconv"
	"strings"

	"roundtable/internal/chat"
	"roundtable/internal/llm"
)

// Reason records why a verdict stopped the debate.
type Reason string

const (
	ReasonNone  Reason = ""
	ReasonScore Reason = "score"
	ReasonLimit Reason = "iteration_limit"
)

// Verdict is the termination decision for one turn. Once Stop is true the
// strategy is absorbing: every later verdict repeats the stop.
type Verdict struct {
	Stop      bool
	Iteration int
	Reason    Reason
	Score     float64
}

// scoreTermination decides after each turn whether the debate must stop.
// With a termination prompt configured it scores the latest message and
// stops at the threshold; without one it stops only at the iteration
// ceiling. The ceiling applies on both paths regardless of scores.
type scoreTermination struct {
	client        llm.Client
	prompt        string
	settings      llm.Settings
	threshold     float64
	maxIterations int
	agents        map[string]struct{}

	iteration int
	final     *Verdict
}

func newScoreTermination(cfg *Config) *scoreTermination {
	gate := make(map[string]struct{}, len(cfg.TerminationAgents))
	for _, name := range cfg.TerminationAgents {
		gate[strings.TrimSpace(name)] = struct{}{}
	}
	return &scoreTermination{
		client:        cfg.Client,
		prompt:        strings.TrimSpace(cfg.Prompts.Termination),
		settings:      cfg.Settings.Termination,
		threshold:     cfg.ScoreThreshold,
		maxIterations: cfg.MaximumIterations,
		agents:        gate,
	}
}

// shouldTerminate evaluates the turn just completed by speaker. Only the
// most recent message is scored, keeping the check O(1) per turn.
func (s *scoreTermination) shouldTerminate(ctx context.Context, speaker string, last chat.Message) (Verdict, error) {
	if s.final != nil {
		return *s.final, nil
	}
	s.iteration++
	log.Printf("Iteration: %d of %d", s.iteration, s.maxIterations)

	v := Verdict{Iteration: s.iteration}
	if s.prompt != "" && s.gateOpen(speaker) {
		score, ok, err := s.evaluate(ctx, last)
		if err != nil {
			return v, err
		}
		if ok {
			v.Score = score
			if score >= s.threshold {
				v.Stop = true
				v.Reason = ReasonScore
			}
		}
	}
	if !v.Stop && s.iteration >= s.maxIterations {
		v.Stop = true
		v.Reason = ReasonLimit
	}
	if v.Stop {
		final := v
		s.final = &final
	}
	return v, nil
}

// gateOpen reports whether this speaker's turns trigger score evaluation.
func (s *scoreTermination) gateOpen(speaker string) bool {
	if len(s.agents) == 0 {
		return true
	}
	_, ok := s.agents[strings.TrimSpace(speaker)]
	return ok
}

// evaluate runs the scoring prompt over the latest message. A non-numeric
// evaluator output is fail-safe: it never terminates the debate, only logs.
func (s *scoreTermination) evaluate(ctx context.Context, last chat.Message) (float64, bool, error) {
	prompt := renderPrompt(s.prompt, map[string]string{"evaluation": last.Content})
	ctx = llm.WithPhase(ctx, "termination")
	ctx = llm.WithSettings(ctx, s.settings)
	out, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		return 0, false, err
	}
	log.Printf("Critic Evaluation: %s", out)

	score, perr := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if perr != nil {
		log.Printf("termination: unparseable score %q, continuing", out)
		return 0, false, nil
	}
	return score, true, nil
}
