package main

import (
	"context"
	"fmt"
	"log"

	"roundtable/internal/agent"
	"roundtable/internal/chat"
	"roundtable/internal/config"
	"roundtable/internal/debate"
	"roundtable/internal/llm"
	"roundtable/internal/session"
	"roundtable/internal/store/artifactstore"
	"roundtable/internal/store/transcriptstore"
)

// debateService owns the wiring of one deployment: the shared LLM client,
// the Writer/Critic roster, run tracking and archival stores. Each debate
// session gets its own orchestrator state; the service itself is shared
// read-only across requests.
type debateService struct {
	client      llm.Client
	writer      agent.Agent
	critic      agent.Agent
	cfg         *config.Config
	registry    *session.Registry
	transcripts *transcriptstore.Store
	artifacts   *artifactstore.S3Store // nil when object storage is not configured
}

func newDebateService(
	cfg *config.Config,
	client llm.Client,
	writer, critic agent.Agent,
	registry *session.Registry,
	transcripts *transcriptstore.Store,
	artifacts *artifactstore.S3Store,
) *debateService {
	return &debateService{
		client:      client,
		writer:      writer,
		critic:      critic,
		cfg:         cfg,
		registry:    registry,
		transcripts: transcripts,
		artifacts:   artifacts,
	}
}

func (s *debateService) seed(topic string) []chat.Message {
	return []chat.Message{{
		Role:    chat.RoleUser,
		Name:    "user",
		Content: fmt.Sprintf("Write a blog post about %s.", topic),
	}}
}

func (s *debateService) newOrchestrator(runID string) (*debate.Orchestrator, error) {
	cfg, err := debate.BlogConfig(
		s.client, s.writer, s.critic,
		s.cfg.Debate.MaximumIterations, s.cfg.Debate.ScoreThreshold,
	)
	if err != nil {
		return nil, err
	}
	cfg.OnComplete = s.archiveHook(runID)
	return debate.New(cfg)
}

// archiveHook persists the finished debate. Best-effort: archival failure
// never blocks the caller's final artifact event.
func (s *debateService) archiveHook(runID string) func(context.Context, debate.Result) error {
	return func(ctx context.Context, res debate.Result) error {
		rec := transcriptstore.Record{
			SessionID: res.SessionID,
			RunID:     runID,
			UserID:    res.UserID,
			Messages:  res.Transcript,
			Artifact:  res.Artifact,
		}
		if err := s.transcripts.Save(ctx, rec); err != nil {
			log.Printf("archive transcript %s: %v", res.SessionID, err)
		}
		if s.artifacts != nil {
			if err := s.artifacts.Put(ctx, res.SessionID, res.Artifact); err != nil {
				log.Printf("archive artifact %s: %v", res.SessionID, err)
			}
		}
		return nil
	}
}

// Stream runs one debate inline, bound to the request context.
func (s *debateService) Stream(ctx context.Context, topic, userID string) (<-chan debate.Event, error) {
	orch, err := s.newOrchestrator("")
	if err != nil {
		return nil, err
	}
	return orch.Run(ctx, userID, s.seed(topic)), nil
}

// Start launches a detached run and returns its run ID. Events fan out
// through the run's feed, so SSE and websocket watchers each see the full
// stream independently.
func (s *debateService) Start(topic, userID string) (string, error) {
	runID, feed := s.registry.NewRun(64)
	orch, err := s.newOrchestrator(runID)
	if err != nil {
		return "", err
	}

	go func() {
		defer feed.Close()
		defer s.registry.ScheduleCleanup(runID)
		for ev := range orch.Run(context.Background(), userID, s.seed(topic)) {
			if ev.Kind == debate.EventArtifact {
				s.registry.StoreResult(runID, ev.Artifact)
			}
			feed.Publish(ev)
		}
	}()
	return runID, nil
}
