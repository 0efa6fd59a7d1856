package agent

import (
	"context"
	"strings"
	"testing"

	"roundtable/internal/chat"
)

type namedAgent struct {
	name, desc string
}

func (a namedAgent) Name() string        { return a.name }
func (a namedAgent) Description() string { return a.desc }
func (a namedAgent) Respond(ctx context.Context, history []chat.Message) (chat.Message, error) {
	return chat.Message{Role: chat.RoleAssistant, Name: a.name}, nil
}

func TestNewRoster(t *testing.T) {
	r, err := NewRoster(namedAgent{"Writer", "writes"}, namedAgent{"Critic", "reviews"})
	if err != nil {
		t.Fatalf("NewRoster: %v", err)
	}
	if r.Len() != 2 || r.First().Name() != "Writer" {
		t.Fatalf("roster: len=%d first=%s", r.Len(), r.First().Name())
	}
	if got := r.Names(); got[0] != "Writer" || got[1] != "Critic" {
		t.Fatalf("names: %v", got)
	}
}

func TestNewRoster_Rejections(t *testing.T) {
	if _, err := NewRoster(); err == nil {
		t.Fatal("empty roster must fail")
	}
	if _, err := NewRoster(namedAgent{"", "x"}); err == nil {
		t.Fatal("empty name must fail")
	}
	if _, err := NewRoster(namedAgent{"Writer", "a"}, namedAgent{"Writer", "b"}); err == nil {
		t.Fatal("duplicate name must fail")
	}
}

func TestRoster_GetTrimsLookup(t *testing.T) {
	r, err := NewRoster(namedAgent{"Writer", "writes"})
	if err != nil {
		t.Fatalf("NewRoster: %v", err)
	}
	if _, ok := r.Get(" Writer "); !ok {
		t.Fatal("lookup must trim whitespace")
	}
	if r.Contains("Critic") {
		t.Fatal("unexpected member")
	}
}

func TestRoster_Describe(t *testing.T) {
	r, err := NewRoster(namedAgent{"Writer", "drafts"}, namedAgent{"Critic", "reviews"})
	if err != nil {
		t.Fatalf("NewRoster: %v", err)
	}
	desc := r.Describe()
	if !strings.Contains(desc, "- Writer: drafts") || !strings.Contains(desc, "- Critic: reviews") {
		t.Fatalf("describe: %q", desc)
	}
}
