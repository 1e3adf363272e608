package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFeed_RingOverwritesOldest(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(i, FeedRun, "event %d", i)
	}
	assert.Equal(t, feedMaxEntries, f.Len())

	recent := f.Recent()
	require.Len(t, recent, feedMaxEntries)
	assert.Equal(t, "event 5", recent[0].Message)
	assert.Equal(t, "event 64", recent[len(recent)-1].Message)
}

func TestEventFeed_Last(t *testing.T) {
	f := NewEventFeed()
	assert.Empty(t, f.Last(3))

	f.Add(1, FeedShop, "a")
	f.Add(2, FeedPickup, "b")
	f.Add(3, FeedCombo, "c")

	last := f.Last(2)
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].Message)
	assert.Equal(t, FeedCombo, last[1].Kind)
	assert.Len(t, f.Last(10), 3)
}
