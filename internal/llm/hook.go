package llm

import "context"

// PromptHook observes generation calls without affecting them.
type PromptHook interface {
	Before(ctx context.Context, phase, prompt string)
	After(ctx context.Context, phase, output string, err error)
}

type ctxKeyHook struct{}
type ctxKeyPhase struct{}
type ctxKeySettings struct{}

// WithHook attaches a PromptHook to every call made through the returned client.
func WithHook(base Client, hook PromptHook) Client {
	return &hooked{base: base, hook: hook}
}

type hooked struct {
	base Client
	hook PromptHook
}

func (h *hooked) Name() string { return h.base.Name() }
func (h *hooked) Close() error { return h.base.Close() }

func (h *hooked) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx = context.WithValue(ctx, ctxKeyHook{}, h.hook)
	return h.base.GenerateText(ctx, prompt)
}

// WithPhase tags the context with the orchestration phase making the call
// (selection, termination, next_action, or an agent name).
func WithPhase(ctx context.Context, phase string) context.Context {
	return context.WithValue(ctx, ctxKeyPhase{}, phase)
}

// PhaseFrom returns the phase string stored in the context.
func PhaseFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyPhase{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}

// HookFrom returns the hook stored in the context.
func HookFrom(ctx context.Context) PromptHook {
	if v := ctx.Value(ctxKeyHook{}); v != nil {
		if h, ok := v.(PromptHook); ok {
			return h
		}
	}
	return nil
}

// Settings carries per-call execution settings. The zero value means
// provider defaults.
type Settings struct {
	Temperature *float32
}

// Temp is a convenience constructor for a fixed-temperature Settings.
func Temp(t float32) Settings { return Settings{Temperature: &t} }

// WithSettings tags the context with execution settings for the next call.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, ctxKeySettings{}, s)
}

// SettingsFrom returns the settings stored in the context, if any.
func SettingsFrom(ctx context.Context) Settings {
	if v := ctx.Value(ctxKeySettings{}); v != nil {
		if s, ok := v.(Settings); ok {
			return s
		}
	}
	return Settings{}
}
