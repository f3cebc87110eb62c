package ranking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEntriesStandard(t *testing.T) {
	doc := `{"rankings":[
		{"id":"a","rank":0.9,"priority":"high"},
		{"id":"b","rank":0.2,"priority":"low"}
	]}`

	entries, err := ParseEntries([]byte(doc), ModeStandard)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, Entry{ID: "a", Rank: 0.9, Priority: "high"}, entries[0])
	require.Equal(t, Entry{ID: "b", Rank: 0.2, Priority: "low"}, entries[1])
}

func TestParseEntriesClampsRank(t *testing.T) {
	doc := `{"rankings":[
		{"id":"a","rank":1.7,"priority":"high"},
		{"id":"b","rank":-0.3,"priority":"low"}
	]}`

	entries, err := ParseEntries([]byte(doc), ModeStandard)
	require.NoError(t, err)
	require.Equal(t, 1.0, entries[0].Rank)
	require.Equal(t, 0.0, entries[1].Rank)
}

func TestParseEntriesDiscardsUnknownPriority(t *testing.T) {
	doc := `{"rankings":[{"id":"a","rank":0.5,"priority":"urgent"}]}`

	entries, err := ParseEntries([]byte(doc), ModeStandard)
	require.NoError(t, err)
	require.Equal(t, "", entries[0].Priority)
}

func TestParseEntriesNormalizesPriorityCase(t *testing.T) {
	doc := `{"rankings":[{"id":"a","rank":0.5,"priority":" High "}]}`

	entries, err := ParseEntries([]byte(doc), ModeStandard)
	require.NoError(t, err)
	require.Equal(t, "high", entries[0].Priority)
}

func TestParseEntriesDebugReasoning(t *testing.T) {
	doc := `{"rankings":[
		{"id":"a","rank":0.8,"priority":"high","reasoning":"due today"},
		{"id":"b","rank":0.1,"priority":"low"}
	]}`

	entries, err := ParseEntries([]byte(doc), ModeDebug)
	require.NoError(t, err)
	require.Equal(t, "due today", entries[0].Reasoning)
	require.Equal(t, "", entries[1].Reasoning)
}

func TestParseEntriesRejectsInvalidJSON(t *testing.T) {
	_, err := ParseEntries([]byte(`not json`), ModeStandard)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not valid JSON")
}

func TestParseEntriesRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing rankings":    `{"items":[]}`,
		"missing id":          `{"rankings":[{"rank":0.5,"priority":"low"}]}`,
		"rank not a number":   `{"rankings":[{"id":"a","rank":"high","priority":"low"}]}`,
		"reasoning in strict": `{"rankings":[{"id":"a","rank":0.5,"priority":"low","reasoning":"x"}]}`,
		"extra top-level key": `{"rankings":[],"debug":true}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseEntries([]byte(doc), ModeStandard)
			require.Error(t, err)
		})
	}
}

func TestModeSchemaJSONRoundTrip(t *testing.T) {
	// Both schema documents must stay compilable; compilation happens at
	// package init, so reaching this test at all proves it. Spot-check the
	// mode selection instead.
	require.NotEqual(t, ModeStandard.SchemaJSON(), ModeDebug.SchemaJSON())
	require.Contains(t, ModeDebug.SchemaJSON(), "reasoning")
	require.NotContains(t, ModeStandard.SchemaJSON(), "reasoning")
}
