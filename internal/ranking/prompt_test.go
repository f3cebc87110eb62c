package ranking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildRequestStandard(t *testing.T) {
	projected := []ProjectedReminder{
		{ID: "a", Title: "renew passport", Priority: "high"},
		{ID: "b", Title: "buy milk"},
	}

	req, err := BuildRequest(projected, Directive{})
	require.NoError(t, err)
	require.Equal(t, ModeStandard, req.Mode)
	require.Equal(t, systemPromptStandard, req.System)
	require.Contains(t, req.User, "Current time:")
	require.Contains(t, req.User, "Reminders (2):")
	require.Contains(t, req.User, `"id":"a"`)
	require.NotContains(t, req.User, "User context:")
	require.Equal(t, projected, req.Records)
}

func TestBuildRequestDebugWithContext(t *testing.T) {
	req, err := BuildRequest(
		[]ProjectedReminder{{ID: "a", Title: "pack bags"}},
		Directive{Context: "I fly out tomorrow morning", Debug: true},
	)
	require.NoError(t, err)
	require.Equal(t, ModeDebug, req.Mode)
	require.Equal(t, systemPromptDebug, req.System)
	require.Contains(t, req.System, "reasoning")
	require.Contains(t, req.User, "User context: I fly out tomorrow morning")
}

func TestBuildRequestIgnoresBlankContext(t *testing.T) {
	req, err := BuildRequest(
		[]ProjectedReminder{{ID: "a", Title: "x"}},
		Directive{Context: "   "},
	)
	require.NoError(t, err)
	require.NotContains(t, req.User, "User context:")
}

func TestBuildRequestRejectsEmptySet(t *testing.T) {
	_, err := BuildRequest(nil, Directive{})
	require.Error(t, err)
}
