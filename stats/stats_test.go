package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hamsterdb/hamkv/wire"
)

// TestFindHintsFastTrack verifies that five consecutive successful finds
// on the same leaf produce a fast-track hint, and a find on a different
// leaf drops it immediately.
func TestFindHintsFastTrack(t *testing.T) {
	s := New()

	require.False(t, s.GetFindHints(0).TryFastTrack)

	const leafA = uint64(0x1000)
	for i := 0; i < 4; i++ {
		s.FindSucceeded(leafA)
		require.False(t, s.GetFindHints(0).TryFastTrack, "iteration %d", i)
	}
	// The 5th consecutive hit on the same leaf pushes the streak count to
	// fastTrackThreshold.
	s.FindSucceeded(leafA)
	hints := s.GetFindHints(0)
	require.True(t, hints.TryFastTrack)
	require.Equal(t, leafA, hints.LeafPageAddr)

	// A find on a different leaf resets the streak.
	s.FindSucceeded(0x2000)
	require.False(t, s.GetFindHints(0).TryFastTrack)
}

func TestFindFailedResets(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.FindSucceeded(42)
	}
	require.True(t, s.GetFindHints(0).TryFastTrack)

	s.FindFailed()
	require.False(t, s.GetFindHints(0).TryFastTrack)
}

func TestInsertAppendPrepend(t *testing.T) {
	s := New()

	// Slot 2 of 3 on the rightmost leaf: an append.
	s.InsertSucceeded(1, 2, 3, true, false)
	require.Equal(t, uint32(1), s.GetInsertHints(0).AppendCount)
	require.Equal(t, uint32(0), s.GetInsertHints(0).PrependCount)
	require.NotEqual(t, uint32(0), s.GetInsertHints(0).Flags&wire.HintAppend)

	s.InsertSucceeded(1, 2, 3, true, false)
	require.Equal(t, uint32(2), s.GetInsertHints(0).AppendCount)

	// A non-append insert resets the streak.
	s.InsertSucceeded(1, 0, 3, false, false)
	require.Equal(t, uint32(0), s.GetInsertHints(0).AppendCount)

	// Slot 0 of the leftmost leaf: a prepend.
	s.InsertSucceeded(2, 0, 3, false, true)
	require.Equal(t, uint32(1), s.GetInsertHints(0).PrependCount)
	require.NotEqual(t, uint32(0), s.GetInsertHints(0).Flags&wire.HintPrepend)
}

func TestInsertFailedResetsAppendPrepend(t *testing.T) {
	s := New()
	s.InsertSucceeded(1, 2, 3, true, false)
	require.Equal(t, uint32(1), s.GetInsertHints(0).AppendCount)

	s.InsertFailed()
	hints := s.GetInsertHints(0)
	require.Equal(t, uint32(0), hints.AppendCount)
	require.Equal(t, uint32(0), hints.PrependCount)
	require.Equal(t, uint32(0), hints.Flags&(wire.HintAppend|wire.HintPrepend))
}

func TestDefaultPageCapacity(t *testing.T) {
	s := New()
	require.Equal(t, uint32(0), s.DefaultPageCapacity())

	s.SetPageCapacity(10)
	s.SetPageCapacity(20)
	require.Equal(t, uint32(15), s.DefaultPageCapacity())

	s.SetPageCapacity(30)
	s.SetPageCapacity(40)
	s.SetPageCapacity(50)
	require.Equal(t, uint32(30), s.DefaultPageCapacity())
	require.Len(t, s.CapacitySamples(), 5)

	// The 6th sample evicts the oldest (10).
	s.SetPageCapacity(60)
	require.Equal(t, []uint32{20, 30, 40, 50, 60}, s.CapacitySamples())
	require.Equal(t, uint32(40), s.DefaultPageCapacity())
}

func TestResetPageClearsAllOperations(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.FindSucceeded(7)
		s.EraseSucceeded(7)
	}
	require.True(t, s.GetFindHints(0).TryFastTrack)

	s.ResetPage(7)
	require.False(t, s.GetFindHints(0).TryFastTrack)
}
