package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"roundtable/internal/agent"
	"roundtable/internal/config"
	"roundtable/internal/llm"
	"roundtable/internal/observability"
	"roundtable/internal/session"
	"roundtable/internal/store/artifactstore"
	"roundtable/internal/store/transcriptstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	shutdownTracing, err := observability.Setup("roundtable")
	if err != nil {
		log.Fatalf("tracing setup: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := buildClient(ctx, cfg)
	if err != nil {
		log.Fatalf("llm client: %v", err)
	}
	defer client.Close()

	writer, critic, err := buildAgents(cfg, client)
	if err != nil {
		log.Fatalf("agents: %v", err)
	}

	registry, err := session.NewRegistry()
	if err != nil {
		log.Fatalf("session registry: %v", err)
	}

	transcripts := transcriptstore.NewFromEnv()
	defer transcripts.Close()

	var artifacts *artifactstore.S3Store
	if cfg.Artifact.Enabled {
		artifacts, err = artifactstore.NewS3Store(artifactstore.S3Config{
			Endpoint:  cfg.Artifact.Endpoint,
			Region:    cfg.Artifact.Region,
			AccessKey: cfg.Artifact.AccessKey,
			SecretKey: cfg.Artifact.SecretKey,
			Bucket:    cfg.Artifact.Bucket,
			UseSSL:    cfg.Artifact.UseSSL,
		})
		if err != nil {
			log.Printf("artifact store disabled: %v", err)
			artifacts = nil
		}
	}

	svc := newDebateService(cfg, client, writer, critic, registry, transcripts, artifacts)
	srv := NewServer(cfg.Port, buildMux(newAPIServer(svc)))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
}

func buildClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.LLM.Fake {
		log.Printf("Using FakeLLM (LLM_FAKE=1)")
		return llm.NewFakeClient(), nil
	}
	return llm.NewGeminiClient(ctx, cfg.LLM.Model)
}

// buildAgents loads writer.yaml and critic.yaml from the agents directory,
// falling back to the built-in pair when a file is missing or invalid.
func buildAgents(cfg *config.Config, client llm.Client) (agent.Agent, agent.Agent, error) {
	load := func(file string, builtin agent.Definition) agent.Definition {
		def, err := agent.LoadDefinition(filepath.Join(cfg.Debate.AgentsDir, file))
		if err != nil {
			log.Printf("agent definition %s unavailable (%v), using built-in %s", file, err, builtin.Name)
			return builtin
		}
		return def
	}
	writer, err := agent.NewChatAgent(load("writer.yaml", builtinWriter), client)
	if err != nil {
		return nil, nil, err
	}
	critic, err := agent.NewChatAgent(load("critic.yaml", builtinCritic), client)
	if err != nil {
		return nil, nil, err
	}
	return writer, critic, nil
}

func temp(t float32) *float32 { return &t }

var builtinWriter = agent.Definition{
	Name:        "Writer",
	Description: "Drafts and revises the blog post",
	Instructions: `You are a professional blog writer. Draft a well-structured
blog post on the requested topic. When the Critic has given feedback,
revise the latest draft to address every point raised. Always reply with
the full current draft, nothing else.`,
	Temperature: temp(0.7),
}

var builtinCritic = agent.Definition{
	Name:        "Critic",
	Description: "Reviews drafts and scores them on a scale of 1-10",
	Instructions: `You are an exacting editorial critic. Review the latest
draft for clarity, structure, accuracy and style. List concrete
improvements, then end your review with a line of the form
'**Overall Score: N**' where N is an integer from 1 to 10.`,
	Temperature: temp(0.2),
}
