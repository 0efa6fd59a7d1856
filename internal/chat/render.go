package chat

import (
	"fmt"
	"strings"
)

// RenderHistory formats the transcript for inclusion in a prompt. One line
// per message: "name (role): content", with the role standing in for a
// missing name.
func RenderHistory(msgs []Message) string {
	var b strings.Builder
	for _, m := range msgs {
		name := m.Name
		if name == "" {
			name = string(m.Role)
		}
		fmt.Fprintf(&b, "%s (%s): %s\n", name, m.Role, m.Content)
	}
	return b.String()
}
