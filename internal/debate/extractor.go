package debate

import (
	"encoding/json"
	"log"

	"roundtable/internal/chat"
)

// Extractor selects the final deliverable from the full transcript. The
// most recent matching message wins; implementations scan accordingly.
type Extractor func(history []chat.Message) (json.RawMessage, error)

// emptyResultSentinel is emitted when the transcript holds nothing to extract.
var emptyResultSentinel = json.RawMessage(`{"content":"No results available"}`)

// DefaultExtractor returns the extraction policy used when none is
// configured: the most recent message authored by primary, else the most
// recent message overall, else the empty-result sentinel.
func DefaultExtractor(primary string) Extractor {
	return func(history []chat.Message) (json.RawMessage, error) {
		for i := len(history) - 1; i >= 0; i-- {
			if history[i].Name == primary {
				return marshalMessage(history[i]), nil
			}
		}
		if len(history) > 0 {
			return marshalMessage(history[len(history)-1]), nil
		}
		return emptyResultSentinel, nil
	}
}

// extract runs the configured extractor, degrading any failure (error or
// panic) to the default policy. A final artifact is always produced.
func extract(ex Extractor, primary string, history []chat.Message) json.RawMessage {
	fallback := DefaultExtractor(primary)
	if ex == nil {
		out, _ := fallback(history)
		return out
	}
	out, err := runGuarded(ex, history)
	if err != nil || len(out) == 0 {
		if err != nil {
			log.Printf("extractor failed, using default policy: %v", err)
		}
		out, _ = fallback(history)
	}
	return out
}

func runGuarded(ex Extractor, history []chat.Message) (out json.RawMessage, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, panicError{r}
		}
	}()
	return ex(history)
}

type panicError struct{ v any }

func (p panicError) Error() string { return "extractor panic" }

func marshalMessage(m chat.Message) json.RawMessage {
	raw, err := json.Marshal(m)
	if err != nil {
		return emptyResultSentinel
	}
	return raw
}
