package chat

// Role identifies the author of a message in the conversation transcript.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// SeedRole reports whether a role is accepted from caller-supplied seed
// messages. Other roles are filtered out, not rejected.
func SeedRole(r Role) bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one entry in a debate transcript. Messages are immutable once
// appended; Order is assigned by the transcript.
type Message struct {
	Role    Role   `json:"role"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}
