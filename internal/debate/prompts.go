package debate

import "strings"

// Prompts holds the templates governing the debate's control flow.
// Templates use {{$name}} placeholders; available variables are $agents,
// $history and, for the termination template, $evaluation.
type Prompts struct {
	// SpeakerSelection decides the next speaker. Must resolve to exactly
	// one roster name; anything else takes the first-agent fallback.
	SpeakerSelection string
	// NextAction describes the upcoming step for UX streaming. No effect
	// on control flow.
	NextAction string
	// Termination extracts a numeric score from the latest message.
	// Empty selects the iteration-only termination path.
	Termination string
}

// Validate rejects empty required templates before any turn executes.
func (p Prompts) Validate() error {
	if strings.TrimSpace(p.SpeakerSelection) == "" {
		return errField("prompts.speaker_selection")
	}
	if strings.TrimSpace(p.NextAction) == "" {
		return errField("prompts.next_action")
	}
	return nil
}

// renderPrompt substitutes {{$key}} placeholders in a template.
func renderPrompt(tpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{$"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}
