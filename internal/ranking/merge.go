package ranking

import (
	"sort"

	"github.com/Junyu06/DynamicDo-Backend/internal/state"
)

// FallbackRank is assigned whenever the model supplied no usable entry for a
// record. It is fixed regardless of the record's stored priority, and the
// stored priority is left untouched.
const FallbackRank = 0.5

// RankedReminder is a full-fidelity reminder with the model's verdict merged
// on. Every stored field survives unchanged except Priority, which the model
// may overwrite.
type RankedReminder struct {
	Record    state.ReminderRecord
	Rank      float64
	Reasoning string
}

// Merge reconciles model entries with the original records by id. Entries for
// unknown ids are ignored and duplicate entries for one id resolve to the
// last seen. Records without an entry get the fallback rank; missing reports
// how many. The result is sorted by rank descending, ties keeping the
// original fetch order.
func Merge(originals []state.ReminderRecord, entries []Entry, mode Mode) (ranked []RankedReminder, missing int) {
	byID := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	ranked = make([]RankedReminder, 0, len(originals))
	for _, rec := range originals {
		entry, ok := byID[rec.ID]
		if !ok {
			missing++
			ranked = append(ranked, RankedReminder{Record: rec, Rank: FallbackRank})
			continue
		}
		out := RankedReminder{Record: rec, Rank: clampRank(entry.Rank)}
		if entry.Priority != "" {
			out.Record.Priority = entry.Priority
		}
		if mode == ModeDebug && entry.Reasoning != "" {
			out.Reasoning = entry.Reasoning
		}
		ranked = append(ranked, out)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank > ranked[j].Rank
	})
	return ranked, missing
}

// Fallback produces the whole-batch default ranking: every record at the
// fallback rank with its stored priority, in original fetch order.
func Fallback(originals []state.ReminderRecord) []RankedReminder {
	ranked, _ := Merge(originals, nil, ModeStandard)
	return ranked
}
