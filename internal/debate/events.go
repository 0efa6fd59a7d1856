package debate

import "encoding/json"

// EventKind discriminates the event union streamed to the caller.
type EventKind string

const (
	// EventStatus is a human-readable description of the current action.
	EventStatus EventKind = "status"
	// EventArtifact carries the final deliverable. Exactly one is emitted
	// per completed session, always last.
	EventArtifact EventKind = "artifact"
	// EventFailure terminates the stream on an unrecoverable session error.
	EventFailure EventKind = "failure"
)

// Event is one element of a debate's output stream. Events are produced by
// a single goroutine per session and the channel is closed on completion.
type Event struct {
	Kind     EventKind       `json:"kind"`
	Status   string          `json:"status,omitempty"`
	Artifact json.RawMessage `json:"artifact,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func statusEvent(s string) Event    { return Event{Kind: EventStatus, Status: s} }
func failureEvent(err error) Event  { return Event{Kind: EventFailure, Error: err.Error()} }
func artifactEvent(raw json.RawMessage) Event {
	return Event{Kind: EventArtifact, Artifact: raw}
}
