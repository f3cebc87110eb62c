package ranking

import (
	"fmt"

	"github.com/Junyu06/DynamicDo-Backend/internal/state"
)

// Project reduces full reminder records to the fields the model needs,
// preserving order and cardinality. Completion state, timestamps, the owning
// user and the url never leave the service. A record without an id is a
// programming-contract violation, not a runtime condition.
func Project(recs []state.ReminderRecord) ([]ProjectedReminder, error) {
	out := make([]ProjectedReminder, 0, len(recs))
	for i, rec := range recs {
		if rec.ID == "" {
			return nil, fmt.Errorf("reminder at index %d has no id", i)
		}
		out = append(out, ProjectedReminder{
			ID:       rec.ID,
			Title:    rec.Title,
			Date:     rec.Date,
			Time:     rec.Time,
			Priority: rec.Priority,
			Tag:      rec.Tag,
			List:     rec.List,
			Notes:    rec.Notes,
		})
	}
	return out, nil
}
