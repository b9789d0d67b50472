package devices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_UpsertAndSnapshot(t *testing.T) {
	table := NewTable()
	base := time.Unix(1700000000, 0)

	table.Upsert("abc", "a", base)
	table.Upsert("abc", "b", base.Add(3*time.Second))

	snapshot := table.Snapshot(base.Add(3 * time.Second))
	require.Len(t, snapshot, 1)

	dev := snapshot[0]
	assert.Equal(t, "abc", dev.ID)
	assert.Equal(t, "b", dev.LastMessage)
	assert.Equal(t, 2, dev.MessageCount)
	assert.InDelta(t, 0, dev.SecondsSinceSeen, 0.001)
}

func TestTable_SnapshotOrdering(t *testing.T) {
	table := NewTable()
	now := time.Now()

	table.Upsert("charlie", "c", now)
	table.Upsert("alpha", "a", now)
	table.Upsert("bravo", "b", now)

	snapshot := table.Snapshot(now)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "alpha", snapshot[0].ID)
	assert.Equal(t, "bravo", snapshot[1].ID)
	assert.Equal(t, "charlie", snapshot[2].ID)
}

func TestTable_SecondsSinceSeenNonDecreasing(t *testing.T) {
	table := NewTable()
	base := time.Unix(1700000000, 0)

	table.Upsert("abc", "a", base)

	first := table.Snapshot(base.Add(1 * time.Second))[0].SecondsSinceSeen
	second := table.Snapshot(base.Add(4 * time.Second))[0].SecondsSinceSeen

	assert.GreaterOrEqual(t, second, first)
	assert.InDelta(t, 1, first, 0.001)
	assert.InDelta(t, 4, second, 0.001)
}

func TestTable_Clear(t *testing.T) {
	table := NewTable()
	now := time.Now()

	table.Upsert("abc", "a", now)
	table.Upsert("def", "b", now)
	require.Equal(t, 2, table.Len())

	table.Clear()
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Snapshot(now))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    Staleness
	}{
		{name: "just seen", seconds: 0, want: Fresh},
		{name: "under two seconds", seconds: 1.9, want: Fresh},
		{name: "two seconds", seconds: 2, want: Warning},
		{name: "eight seconds", seconds: 8, want: Warning},
		{name: "ten seconds", seconds: 10, want: Stale},
		{name: "one minute", seconds: 60, want: Stale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.seconds))
		})
	}
}

func TestStaleness_String(t *testing.T) {
	assert.Equal(t, "fresh", Fresh.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "stale", Stale.String())
}
