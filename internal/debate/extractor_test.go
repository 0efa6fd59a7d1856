package debate

import (
	"encoding/json"
	"errors"
	"testing"

	"roundtable/internal/chat"
)

func history() []chat.Message {
	return []chat.Message{
		{Role: chat.RoleUser, Name: "user", Content: "topic", Order: 0},
		{Role: chat.RoleAssistant, Name: "Writer", Content: "draft one", Order: 1},
		{Role: chat.RoleAssistant, Name: "Critic", Content: "needs work", Order: 2},
		{Role: chat.RoleAssistant, Name: "Writer", Content: "draft two", Order: 3},
		{Role: chat.RoleAssistant, Name: "Critic", Content: "approved", Order: 4},
	}
}

func contentOf(t *testing.T, raw json.RawMessage) chat.Message {
	t.Helper()
	var m chat.Message
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal artifact: %v", err)
	}
	return m
}

func TestDefaultExtractor_MostRecentPrimaryMessage(t *testing.T) {
	raw, err := DefaultExtractor("Writer")(history())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got := contentOf(t, raw); got.Content != "draft two" {
		t.Fatalf("got %+v", got)
	}
}

func TestDefaultExtractor_FallsBackToLastMessage(t *testing.T) {
	raw, err := DefaultExtractor("Moderator")(history())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got := contentOf(t, raw); got.Content != "approved" {
		t.Fatalf("got %+v", got)
	}
}

func TestDefaultExtractor_EmptyTranscriptSentinel(t *testing.T) {
	raw, err := DefaultExtractor("Writer")(nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(raw) != string(emptyResultSentinel) {
		t.Fatalf("got %s", raw)
	}
}

// Extraction is read-only: repeated runs over the same transcript agree.
func TestDefaultExtractor_Idempotent(t *testing.T) {
	h := history()
	ex := DefaultExtractor("Writer")
	first, _ := ex(h)
	second, _ := ex(h)
	if string(first) != string(second) {
		t.Fatalf("extraction not idempotent: %s vs %s", first, second)
	}
}

func TestExtract_CustomExtractorWins(t *testing.T) {
	custom := func(h []chat.Message) (json.RawMessage, error) {
		return json.RawMessage(`{"content":"custom"}`), nil
	}
	raw := extract(custom, "Writer", history())
	if string(raw) != `{"content":"custom"}` {
		t.Fatalf("got %s", raw)
	}
}

func TestExtract_CustomErrorDegradesToDefault(t *testing.T) {
	custom := func(h []chat.Message) (json.RawMessage, error) {
		return nil, errors.New("no extractable content")
	}
	raw := extract(custom, "Writer", history())
	if got := contentOf(t, raw); got.Content != "draft two" {
		t.Fatalf("got %+v", got)
	}
}

func TestExtract_CustomPanicDegradesToDefault(t *testing.T) {
	custom := func(h []chat.Message) (json.RawMessage, error) {
		panic("boom")
	}
	raw := extract(custom, "Writer", history())
	if got := contentOf(t, raw); got.Content != "draft two" {
		t.Fatalf("got %+v", got)
	}
}

func TestExtract_NilExtractorUsesDefault(t *testing.T) {
	raw := extract(nil, "Critic", history())
	if got := contentOf(t, raw); got.Content != "approved" {
		t.Fatalf("got %+v", got)
	}
}
