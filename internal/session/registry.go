// Package session tracks live debate runs, fans their event streams out to
// watchers, and caches recently completed results.
package session

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"roundtable/internal/debate"
)

// completedRunRetention is how long a finished run's feed survives so late
// watchers still see the backlog and the close.
const completedRunRetention = 30 * time.Second

// Feed is one run's event stream. A single producer publishes; any number
// of watchers subscribe independently, each receiving the full backlog
// followed by live events on its own channel.
type Feed struct {
	buffer int

	mu      sync.Mutex
	backlog []debate.Event
	subs    map[int]chan debate.Event
	nextSub int
	closed  bool
}

func newFeed(buffer int) *Feed {
	if buffer <= 0 {
		buffer = 16
	}
	return &Feed{buffer: buffer, subs: make(map[int]chan debate.Event)}
}

// Publish records the event and delivers it to every subscriber. A watcher
// that is not draining loses the event rather than stalling the run; the
// backlog still holds it for later subscribers.
func (f *Feed) Publish(ev debate.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.backlog = append(f.backlog, ev)
	for id, ch := range f.subs {
		select {
		case ch <- ev:
		default:
			log.Printf("run feed: dropping %s event for slow watcher %d", ev.Kind, id)
		}
	}
}

// Close ends the stream for every current and future subscriber.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for _, ch := range f.subs {
		close(ch)
	}
	f.subs = nil
}

// Subscribe returns a channel carrying the backlog followed by live events,
// and a cancel function releasing the subscription. The channel is closed
// when the run completes or cancel is called.
func (f *Feed) Subscribe() (<-chan debate.Event, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan debate.Event, len(f.backlog)+f.buffer)
	for _, ev := range f.backlog {
		ch <- ev
	}
	if f.closed {
		close(ch)
		return ch, func() {}
	}

	id := f.nextSub
	f.nextSub++
	f.subs[id] = ch
	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Registry maps run IDs to live feeds. Insert/remove are exclusive, reads
// are shared.
type Registry struct {
	mu      sync.RWMutex
	runs    map[string]*Feed
	results *lru.Cache[string, json.RawMessage]
}

func NewRegistry() (*Registry, error) {
	results, err := lru.New[string, json.RawMessage](256)
	if err != nil {
		return nil, err
	}
	return &Registry{
		runs:    make(map[string]*Feed),
		results: results,
	}, nil
}

// NewRun allocates a run ID and its event feed.
func (r *Registry) NewRun(buffer int) (string, *Feed) {
	runID := uuid.NewString()
	feed := newFeed(buffer)
	r.mu.Lock()
	r.runs[runID] = feed
	r.mu.Unlock()
	return runID, feed
}

// Feed returns the feed for a run, if any.
func (r *Registry) Feed(runID string) (*Feed, bool) {
	r.mu.RLock()
	feed, ok := r.runs[strings.TrimSpace(runID)]
	r.mu.RUnlock()
	return feed, ok
}

// StoreResult caches a completed run's final artifact.
func (r *Registry) StoreResult(runID string, artifact json.RawMessage) {
	r.results.Add(strings.TrimSpace(runID), artifact)
}

// Result returns a completed run's final artifact from the cache.
func (r *Registry) Result(runID string) (json.RawMessage, bool) {
	return r.results.Get(strings.TrimSpace(runID))
}

// ScheduleCleanup drops the run's feed after the retention window. The
// cached result outlives the feed.
func (r *Registry) ScheduleCleanup(runID string) {
	time.AfterFunc(completedRunRetention, func() {
		r.mu.Lock()
		delete(r.runs, strings.TrimSpace(runID))
		r.mu.Unlock()
	})
}
