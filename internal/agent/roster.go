package agent

import (
	"fmt"
	"strings"
)

// Roster is the fixed, ordered set of agents eligible to speak in a debate.
// Names are unique; the first member is the debate's primary agent.
type Roster struct {
	agents []Agent
	byName map[string]Agent
}

func NewRoster(agents ...Agent) (*Roster, error) {
	if len(agents) == 0 {
		return nil, fmt.Errorf("roster: at least one agent is required")
	}
	byName := make(map[string]Agent, len(agents))
	for _, a := range agents {
		name := strings.TrimSpace(a.Name())
		if name == "" {
			return nil, fmt.Errorf("roster: agent with empty name")
		}
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("roster: duplicate agent name %q", name)
		}
		byName[name] = a
	}
	return &Roster{agents: agents, byName: byName}, nil
}

func (r *Roster) Len() int     { return len(r.agents) }
func (r *Roster) First() Agent { return r.agents[0] }

func (r *Roster) Get(name string) (Agent, bool) {
	a, ok := r.byName[strings.TrimSpace(name)]
	return a, ok
}

func (r *Roster) Contains(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Agents returns the roster in speaking-priority order.
func (r *Roster) Agents() []Agent {
	out := make([]Agent, len(r.agents))
	copy(out, r.agents)
	return out
}

func (r *Roster) Names() []string {
	out := make([]string, len(r.agents))
	for i, a := range r.agents {
		out[i] = a.Name()
	}
	return out
}

// Describe renders the roster for the selection prompt, one agent per line.
func (r *Roster) Describe() string {
	var b strings.Builder
	for _, a := range r.agents {
		fmt.Fprintf(&b, "- %s: %s\n", a.Name(), a.Description())
	}
	return b.String()
}
