// Package debate implements the turn-taking controller coordinating a
// bounded multi-party conversation between LLM-backed agents: speaker
// selection, score-based termination, result extraction and progress
// streaming.
package debate

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"roundtable/internal/chat"
	"roundtable/internal/llm"
)

// Orchestrator drives debates for one validated configuration. It is
// stateless across sessions; per-session state (transcript, termination
// counters) is created inside Run, so independent sessions may run
// concurrently.
type Orchestrator struct {
	cfg      Config
	selector *speakerSelector
	tracer   trace.Tracer
}

// New validates the configuration and builds an orchestrator. Validation
// failures here are the only way a debate refuses to start.
func New(cfg Config) (*Orchestrator, error) {
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Orchestrator{
		cfg: cfg,
		selector: &speakerSelector{
			client:   cfg.Client,
			prompt:   cfg.Prompts.SpeakerSelection,
			settings: cfg.Settings.Selection,
		},
		tracer: otel.Tracer("roundtable/debate"),
	}, nil
}

// SessionID derives the trace-correlation identifier for one run.
func SessionID(userID string, now time.Time) string {
	return fmt.Sprintf("%s-%s", userID, now.Format("2006-01-02_15:04:05"))
}

// Run starts one debate session seeded with the caller's messages and
// returns its event stream. The stream is finite: it ends with exactly one
// artifact event on completion, or a failure event on an unrecoverable
// error, and the channel is closed either way. Abandoning the stream
// cancels the session cooperatively through ctx.
func (o *Orchestrator) Run(ctx context.Context, userID string, seed []chat.Message) <-chan Event {
	events := make(chan Event, 16)
	go o.run(ctx, userID, seed, events)
	return events
}

func (o *Orchestrator) run(ctx context.Context, userID string, seed []chat.Message, events chan<- Event) {
	defer close(events)

	emit := func(ev Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	tr := chat.NewTranscript(o.cfg.MaximumIterations)
	for _, m := range seed {
		if chat.SeedRole(m.Role) {
			_ = tr.Append(m)
		}
	}

	sessionID := SessionID(userID, time.Now())
	ctx, span := o.tracer.Start(ctx, "debate.session",
		trace.WithAttributes(
			attribute.String("debate.session.id", sessionID),
			attribute.String("debate.user.id", userID),
		))
	defer span.End()

	fail := func(err error) {
		log.Printf("debate %s failed: %v", sessionID, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		emit(failureEvent(err))
	}

	if o.cfg.InitialStatus != "" {
		if !emit(statusEvent(o.cfg.InitialStatus)) {
			return
		}
	}

	term := newScoreTermination(&o.cfg)
	for tr.CanAdvance() {
		speaker, _, err := o.selector.selectNext(ctx, o.cfg.Roster, tr.Snapshot())
		if err != nil {
			fail(fmt.Errorf("speaker selection: %w", err))
			return
		}

		msg, err := speaker.Respond(ctx, tr.Snapshot())
		if err != nil {
			fail(err)
			return
		}
		if err := tr.Append(msg); err != nil {
			fail(err)
			return
		}
		if err := tr.IncrementTurn(); err != nil {
			// Safety net; CanAdvance is the primary control.
			fail(err)
			return
		}
		log.Printf("Agent %s spoke (turn %d/%d)", speaker.Name(), tr.Turns(), tr.MaxTurns())

		if !emit(statusEvent(o.describeNextAction(ctx, tr.Snapshot()))) {
			return
		}

		verdict, err := term.shouldTerminate(ctx, speaker.Name(), msg)
		if err != nil {
			fail(fmt.Errorf("termination evaluation: %w", err))
			return
		}
		if verdict.Stop {
			log.Printf("debate %s stopping at iteration %d (%s)", sessionID, verdict.Iteration, verdict.Reason)
			break
		}
	}
	tr.Close()

	artifact := extract(o.cfg.ResultExtractor, o.cfg.Roster.First().Name(), tr.Snapshot())

	if o.cfg.OnComplete != nil {
		res := Result{
			SessionID:  sessionID,
			UserID:     userID,
			Transcript: tr.Snapshot(),
			Artifact:   artifact,
		}
		if err := o.cfg.OnComplete(ctx, res); err != nil {
			log.Printf("debate %s completion hook: %v", sessionID, err)
		}
	}

	emit(artifactEvent(artifact))
}

// describeNextAction produces the streamed status line for the turn just
// completed. It is a secondary generation call with no control-flow role;
// failures degrade to a generic line.
func (o *Orchestrator) describeNextAction(ctx context.Context, history []chat.Message) string {
	prompt := renderPrompt(o.cfg.Prompts.NextAction, map[string]string{
		"history": chat.RenderHistory(history),
	})
	ctx = llm.WithPhase(ctx, "next_action")
	ctx = llm.WithSettings(ctx, o.cfg.Settings.NextAction)
	out, err := o.cfg.Client.GenerateText(ctx, prompt)
	if err != nil || out == "" {
		last := ""
		if len(history) > 0 {
			last = history[len(history)-1].Name
		}
		if err != nil {
			log.Printf("next action description failed: %v", err)
		}
		return fmt.Sprintf("%s: responded", last)
	}
	return out
}
