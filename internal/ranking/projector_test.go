package ranking

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/Junyu06/DynamicDo-Backend/internal/state"
)

func TestProjectKeepsRankingFieldsOnly(t *testing.T) {
	recs := []state.ReminderRecord{
		{
			ID:       "r1",
			UserID:   "u1",
			Title:    "file taxes",
			Notes:    "need W-2",
			URL:      "https://irs.gov",
			Date:     "2026-04-15",
			Time:     "09:00",
			Priority: state.PriorityHigh,
			Tag:      "finance",
			List:     "personal",
		},
		{ID: "r2", UserID: "u1", Title: "water plants"},
	}

	got, err := Project(recs)
	require.NoError(t, err)

	want := []ProjectedReminder{
		{
			ID:       "r1",
			Title:    "file taxes",
			Date:     "2026-04-15",
			Time:     "09:00",
			Priority: "high",
			Tag:      "finance",
			List:     "personal",
			Notes:    "need W-2",
		},
		{ID: "r2", Title: "water plants"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectEmptyInput(t *testing.T) {
	got, err := Project(nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestProjectRejectsMissingID(t *testing.T) {
	_, err := Project([]state.ReminderRecord{
		{ID: "r1", Title: "ok"},
		{Title: "no id"},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "index 1")
}
