package session

import (
	"encoding/json"
	"testing"

	"roundtable/internal/debate"
)

func TestRegistry_NewRunAndLookup(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	runID, feed := reg.NewRun(4)
	if runID == "" {
		t.Fatal("empty run id")
	}
	got, ok := reg.Feed(runID)
	if !ok || got != feed {
		t.Fatal("lookup did not return the run feed")
	}
	if _, ok := reg.Feed("not-a-run"); ok {
		t.Fatal("unknown run id must miss")
	}

	otherID, _ := reg.NewRun(4)
	if otherID == runID {
		t.Fatal("run ids must be unique")
	}
}

func TestRegistry_FeedTrimsID(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	runID, _ := reg.NewRun(1)
	if _, ok := reg.Feed("  " + runID + "\n"); !ok {
		t.Fatal("lookup must trim the run id")
	}
}

func TestRegistry_ResultCache(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	runID, _ := reg.NewRun(1)
	if _, ok := reg.Result(runID); ok {
		t.Fatal("result before completion")
	}
	artifact := json.RawMessage(`{"content":"final"}`)
	reg.StoreResult(runID, artifact)
	got, ok := reg.Result(runID)
	if !ok || string(got) != string(artifact) {
		t.Fatalf("cached result: %s (ok=%v)", got, ok)
	}
}

func drainFeed(t *testing.T, ch <-chan debate.Event) []debate.Event {
	t.Helper()
	var out []debate.Event
	for ev := range ch {
		out = append(out, ev)
	}
	return out
}

// Two watchers on the same run each receive the full stream; events are
// fanned out, not competed for.
func TestFeed_FanOutToMultipleSubscribers(t *testing.T) {
	feed := newFeed(4)
	first, cancelFirst := feed.Subscribe()
	defer cancelFirst()
	second, cancelSecond := feed.Subscribe()
	defer cancelSecond()

	feed.Publish(debate.Event{Kind: debate.EventStatus, Status: "working"})
	feed.Publish(debate.Event{Kind: debate.EventArtifact, Artifact: json.RawMessage(`{}`)})
	feed.Close()

	for i, ch := range []<-chan debate.Event{first, second} {
		events := drainFeed(t, ch)
		if len(events) != 2 {
			t.Fatalf("subscriber %d: got %d events, want 2", i, len(events))
		}
		if events[0].Status != "working" || events[1].Kind != debate.EventArtifact {
			t.Fatalf("subscriber %d: events %+v", i, events)
		}
	}
}

// A watcher attaching mid-run receives the backlog before live events.
func TestFeed_LateSubscriberGetsBacklog(t *testing.T) {
	feed := newFeed(4)
	feed.Publish(debate.Event{Kind: debate.EventStatus, Status: "first"})
	feed.Publish(debate.Event{Kind: debate.EventStatus, Status: "second"})

	ch, cancel := feed.Subscribe()
	defer cancel()
	feed.Publish(debate.Event{Kind: debate.EventStatus, Status: "third"})
	feed.Close()

	events := drainFeed(t, ch)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, want := range []string{"first", "second", "third"} {
		if events[i].Status != want {
			t.Fatalf("event %d: %+v", i, events[i])
		}
	}
}

// Subscribing after completion replays the backlog and closes immediately.
func TestFeed_SubscribeAfterClose(t *testing.T) {
	feed := newFeed(4)
	feed.Publish(debate.Event{Kind: debate.EventStatus, Status: "done"})
	feed.Close()

	ch, cancel := feed.Subscribe()
	defer cancel()
	events := drainFeed(t, ch)
	if len(events) != 1 || events[0].Status != "done" {
		t.Fatalf("events: %+v", events)
	}
}

// Cancelling a subscription stops delivery to that watcher only.
func TestFeed_CancelStopsOneSubscriber(t *testing.T) {
	feed := newFeed(4)
	first, cancelFirst := feed.Subscribe()
	second, cancelSecond := feed.Subscribe()
	defer cancelSecond()

	cancelFirst()
	feed.Publish(debate.Event{Kind: debate.EventStatus, Status: "after cancel"})
	feed.Close()

	if events := drainFeed(t, first); len(events) != 0 {
		t.Fatalf("cancelled subscriber received %+v", events)
	}
	events := drainFeed(t, second)
	if len(events) != 1 || events[0].Status != "after cancel" {
		t.Fatalf("remaining subscriber: %+v", events)
	}
}
