package ranking

import (
	"context"
)

// Mode selects the response contract expected from the model. The two modes
// differ only in whether a per-item reasoning string is requested; the mode is
// chosen once when the request is built and threaded through gateway parsing
// and the merge.
type Mode int

const (
	ModeStandard Mode = iota
	ModeDebug
)

func ModeFor(debug bool) Mode {
	if debug {
		return ModeDebug
	}
	return ModeStandard
}

func (m Mode) String() string {
	if m == ModeDebug {
		return "debug"
	}
	return "standard"
}

// ProjectedReminder is the minimal ranking-relevant subset of a reminder.
// It exists only for the duration of one ranking call and is the only
// reminder data that crosses the boundary to the model provider.
type ProjectedReminder struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Priority string `json:"priority,omitempty"`
	Tag      string `json:"tag,omitempty"`
	List     string `json:"list,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Directive is the per-request ranking input supplied by the caller.
type Directive struct {
	Context string
	Debug   bool
}

// Request is the payload handed to a Ranker. System and User are the rendered
// prompt halves; Records carries the projected reminders for providers that
// score locally instead of calling out. Model may be set by provider routing
// to override an adapter's default model.
type Request struct {
	System  string
	User    string
	Mode    Mode
	Model   string
	Records []ProjectedReminder
}

// Entry is one item of the model's ranking output, keyed by reminder id.
// Priority is empty when the model returned a value outside the three stored
// levels; the merger keeps the stored priority in that case.
type Entry struct {
	ID        string  `json:"id"`
	Rank      float64 `json:"rank"`
	Priority  string  `json:"priority"`
	Reasoning string  `json:"reasoning,omitempty"`
}

// Ranker is the capability boundary around the model provider. Any failure is
// reported as an error; recovery is the caller's fallback policy, never a
// retry inside the adapter.
type Ranker interface {
	Rank(ctx context.Context, req Request) ([]Entry, error)
}
