package chat

import "errors"

var (
	// ErrTranscriptClosed is returned when appending to a terminated transcript.
	ErrTranscriptClosed = errors.New("chat: transcript is closed")
	// ErrIterationLimit is returned when advancing past the configured maximum.
	ErrIterationLimit = errors.New("chat: iteration limit exceeded")
)

// Transcript is the append-only record of one debate session: the ordered
// messages plus the completed-turn counter. A transcript belongs to a single
// session and is driven sequentially by its controller, so it carries no lock.
type Transcript struct {
	messages []Message
	turns    int
	maxTurns int
	closed   bool
}

// NewTranscript returns an empty transcript bounded by maxTurns completed
// turns. maxTurns values below 1 are clamped to 1.
func NewTranscript(maxTurns int) *Transcript {
	if maxTurns < 1 {
		maxTurns = 1
	}
	return &Transcript{maxTurns: maxTurns}
}

// Append adds a message to the transcript, stamping its order.
func (t *Transcript) Append(msg Message) error {
	if t.closed {
		return ErrTranscriptClosed
	}
	msg.Order = len(t.messages)
	t.messages = append(t.messages, msg)
	return nil
}

// Snapshot returns a copy of the ordered messages. Callers may hold or
// mutate the slice freely without affecting the transcript.
func (t *Transcript) Snapshot() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Last returns the most recently appended message.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

func (t *Transcript) Len() int      { return len(t.messages) }
func (t *Transcript) Turns() int    { return t.turns }
func (t *Transcript) MaxTurns() int { return t.maxTurns }

// CanAdvance reports whether another turn may be completed. The controller
// checks this before each turn; IncrementTurn is the safety net.
func (t *Transcript) CanAdvance() bool {
	return !t.closed && t.turns < t.maxTurns
}

// IncrementTurn advances the completed-turn counter by one.
func (t *Transcript) IncrementTurn() error {
	if t.closed {
		return ErrTranscriptClosed
	}
	if t.turns >= t.maxTurns {
		return ErrIterationLimit
	}
	t.turns++
	return nil
}

// Close marks the transcript terminated. Further appends fail with
// ErrTranscriptClosed. Closing is irreversible.
func (t *Transcript) Close() {
	t.closed = true
}

// Closed reports whether the transcript has been terminated.
func (t *Transcript) Closed() bool { return t.closed }
