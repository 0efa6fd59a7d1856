package llm

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
	rl    *rpsLimiter
}

func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	// Optional RPS limiter via env: LLM_RPS/GEMINI_RPS and LLM_BURST/GEMINI_BURST
	var rps float64
	var burst int
	for _, key := range []string{"LLM_RPS", "GEMINI_RPS"} {
		if rps != 0 {
			break
		}
		if v := os.Getenv(key); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				rps = f
			}
		}
	}
	for _, key := range []string{"LLM_BURST", "GEMINI_BURST"} {
		if burst != 0 {
			break
		}
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				burst = n
			}
		}
	}
	return &GeminiClient{cli: cli, model: model, rl: newRPSLimiter(rps, burst)}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error {
	g.rl.Stop()
	return nil
}

// GenerateText sends the prompt and returns the model's plain-text reply.
// The prompt is fully rendered by the caller; settings and phase travel on
// the context.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	phase := PhaseFrom(ctx)
	if hook := HookFrom(ctx); hook != nil {
		hook.Before(ctx, phase, prompt)
	}
	log.Printf("LLM request (%s): %d bytes", phase, len(prompt))

	cfg := &genai.GenerateContentConfig{}
	if s := SettingsFrom(ctx); s.Temperature != nil {
		cfg.Temperature = s.Temperature
	}

	const maxAttempts = 3
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		// Respect RPS limiter per attempt (each API call consumes a token).
		if err := g.rl.Acquire(ctx); err != nil {
			lastErr = err
			break
		}
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
			cfg,
		)
		if err != nil {
			lastErr = err
		} else if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = ErrEmptyResponse
		} else {
			txt := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
			if hook := HookFrom(ctx); hook != nil {
				hook.After(ctx, phase, txt, nil)
			}
			return txt, nil
		}
		if attempt == maxAttempts-1 {
			break
		}
		if err := retryBackoff(ctx, attempt); err != nil {
			lastErr = err
			break
		}
	}
	if hook := HookFrom(ctx); hook != nil {
		hook.After(ctx, phase, "", lastErr)
	}
	return "", lastErr
}

// retryBackoff waits 300ms doubling per attempt, or returns early when the
// context is cancelled.
func retryBackoff(ctx context.Context, attempt int) error {
	timer := time.NewTimer(time.Duration(300*(1<<attempt)) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
