package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace_Record(t *testing.T) {
	var tr Trace

	start := time.Now().Add(-50 * time.Millisecond)
	tr.Record("plan", "planner", start, nil, "planned 3 stages")
	tr.Record("write", "writer", time.Now(), errors.New("model unavailable"), "")

	entries := tr.Entries()
	require.Len(t, entries, 2)

	assert.Equal(t, "plan", entries[0].Stage)
	assert.Equal(t, "planner", entries[0].Agent)
	assert.Equal(t, StageCompleted, entries[0].Status)
	assert.Equal(t, "planned 3 stages", entries[0].Detail)
	assert.Empty(t, entries[0].Error)
	assert.GreaterOrEqual(t, entries[0].Duration, 50*time.Millisecond)

	assert.Equal(t, StageError, entries[1].Status)
	assert.Equal(t, "model unavailable", entries[1].Error)
}

func TestTrace_Skip(t *testing.T) {
	var tr Trace
	tr.Skip("research", "plan ruled research out")

	entries := tr.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, StageSkipped, entries[0].Status)
	assert.Equal(t, "plan ruled research out", entries[0].Detail)
	assert.Empty(t, entries[0].Agent)
}

func TestTrace_Find(t *testing.T) {
	var tr Trace
	tr.Record("plan", "planner", time.Now(), nil, "")
	tr.Record("write", "writer", time.Now(), nil, "first draft")
	tr.Record("write", "writer", time.Now(), nil, "revision 1")

	e, ok := tr.Find("write")
	require.True(t, ok)
	assert.Equal(t, "first draft", e.Detail, "Find returns the first matching entry")

	_, ok = tr.Find("synthesize")
	assert.False(t, ok)
}

func TestTrace_HasErrors(t *testing.T) {
	var tr Trace
	tr.Record("plan", "planner", time.Now(), nil, "")
	tr.Skip("research", "not needed")
	assert.False(t, tr.HasErrors())

	tr.Record("write", "writer", time.Now(), errors.New("boom"), "")
	assert.True(t, tr.HasErrors())
}

func TestTrace_EntriesSnapshot(t *testing.T) {
	var tr Trace
	tr.Record("plan", "planner", time.Now(), nil, "")

	snap := tr.Entries()
	snap[0].Stage = "mutated"

	fresh := tr.Entries()
	assert.Equal(t, "plan", fresh[0].Stage, "Entries returns a copy")
}
