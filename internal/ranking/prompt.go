package ranking

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const systemPromptStandard = `You rank a user's uncompleted reminders by urgency and importance.

Consider, in combination:
- how close each reminder's due date and time are to now
- the user's stated priority level
- tag and list context (work, health, deadlines and similar signals)
- the qualitative impact of finishing the item against the effort it takes

If the user supplies extra context, treat it as a re-weighting signal on top
of the rules above.

Return a single JSON object with a "rankings" array holding exactly one entry
per input reminder id. Each entry has "id" (the reminder id, unchanged),
"rank" (a number strictly within 0.0 to 1.0, 1.0 meaning most urgent) and
"priority" (your recomputed "high", "medium" or "low"). Do not include any
other fields and do not wrap the JSON in markdown.`

const systemPromptDebug = systemPromptStandard + `

Additionally include a "reasoning" field on each entry: one short sentence
explaining the placement.`

// BuildRequest assembles the model payload for a projected reminder set. The
// caller is expected to short-circuit on an empty set before reaching this
// point; an empty set here is rejected without any provider call.
func BuildRequest(projected []ProjectedReminder, directive Directive) (Request, error) {
	if len(projected) == 0 {
		return Request{}, errors.New("no reminders to rank")
	}
	mode := ModeFor(directive.Debug)
	system := systemPromptStandard
	if mode == ModeDebug {
		system = systemPromptDebug
	}

	records, err := json.Marshal(projected)
	if err != nil {
		return Request{}, fmt.Errorf("encode reminders: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current time: %s\n\n", time.Now().UTC().Format(time.RFC3339))
	if ctx := strings.TrimSpace(directive.Context); ctx != "" {
		fmt.Fprintf(&b, "User context: %s\n\n", ctx)
	}
	fmt.Fprintf(&b, "Reminders (%d):\n%s", len(projected), records)

	return Request{
		System:  system,
		User:    b.String(),
		Mode:    mode,
		Records: projected,
	}, nil
}
