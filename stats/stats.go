// Package stats implements the btree hint core: a small, purely
// in-memory adaptive heuristic that produces per-operation hints.
// Dropping these statistics never changes correctness, only which leaf a
// caller probes first, so nothing here returns an error; every method is
// advisory bookkeeping.
package stats

import "github.com/hamsterdb/hamkv/wire"

// operation indexes the three kinds of leaf-page tracking this core
// keeps.
type operation int

const (
	opFind operation = iota
	opInsert
	opErase
	opCount
)

const (
	// fastTrackThreshold is the consecutive-hit count at which a cached
	// leaf address starts being offered as a hint.
	fastTrackThreshold = 5

	// maxCapacitySamples bounds the page-capacity sliding window.
	maxCapacitySamples = 5
)

// FindHints is returned by GetFindHints for one db_find/cursor_find call.
type FindHints struct {
	OriginalFlags uint32
	Flags         uint32
	LeafPageAddr  uint64
	TryFastTrack  bool
}

// InsertHints is returned by GetInsertHints for one db_insert/cursor_insert
// call. Flags carries wire.HintAppend or wire.HintPrepend set when a
// positive append/prepend streak is in progress; Flags never carries
// both at once since one success resets the other to zero.
type InsertHints struct {
	OriginalFlags uint32
	Flags         uint32
	LeafPageAddr  uint64
	AppendCount   uint32
	PrependCount  uint32
}

// Stats is one database's hint state. It is not internally synchronized:
// callers hold the environment's session mutex for every call that
// touches it, the same lock that serializes the round-trips the hints
// are derived from.
type Stats struct {
	lastLeafPage  [opCount]uint64
	lastLeafCount [opCount]uint32

	appendCount  uint32
	prependCount uint32

	capacities    [maxCapacitySamples]uint32
	capacityCount int
}

// New returns a fresh, zeroed Stats for one database.
func New() *Stats {
	return &Stats{}
}

func (s *Stats) touch(op operation, addr uint64) {
	if s.lastLeafPage[op] == addr {
		s.lastLeafCount[op]++
		return
	}
	// A mismatch restarts the streak at the new address. The operation
	// that just landed there counts as the streak's first hit.
	s.lastLeafPage[op] = addr
	s.lastLeafCount[op] = 1
}

func (s *Stats) reset(op operation) {
	s.lastLeafPage[op] = 0
	s.lastLeafCount[op] = 0
}

// FindSucceeded reports that a db_find/cursor_find landed on the leaf at
// addr.
func (s *Stats) FindSucceeded(addr uint64) { s.touch(opFind, addr) }

// FindFailed reports that a find found no matching key.
func (s *Stats) FindFailed() { s.reset(opFind) }

// GetFindHints returns the hints for the next find call.
func (s *Stats) GetFindHints(flags uint32) FindHints {
	hints := FindHints{OriginalFlags: flags, Flags: flags}
	if s.lastLeafCount[opFind] >= fastTrackThreshold {
		hints.TryFastTrack = true
		hints.LeafPageAddr = s.lastLeafPage[opFind]
	}
	return hints
}

// InsertSucceeded reports that an insert landed at slot of a leaf at addr
// holding leafKeyCount keys; isRightmostLeaf/isLeftmostLeaf say whether
// that leaf is the tree's right or left boundary (the local engine
// supplies these from its node bookkeeping).
func (s *Stats) InsertSucceeded(addr uint64, slot, leafKeyCount uint16, isRightmostLeaf, isLeftmostLeaf bool) {
	s.touch(opInsert, addr)

	if isRightmostLeaf && leafKeyCount > 0 && slot == leafKeyCount-1 {
		s.appendCount++
	} else {
		s.appendCount = 0
	}

	if isLeftmostLeaf && slot == 0 {
		s.prependCount++
	} else {
		s.prependCount = 0
	}
}

// InsertFailed reports that an insert failed outright (e.g. duplicate key).
func (s *Stats) InsertFailed() {
	s.reset(opInsert)
	s.appendCount = 0
	s.prependCount = 0
}

// GetInsertHints returns the hints for the next insert call.
func (s *Stats) GetInsertHints(flags uint32) InsertHints {
	hints := InsertHints{
		OriginalFlags: flags,
		Flags:         flags,
		AppendCount:   s.appendCount,
		PrependCount:  s.prependCount,
	}
	switch {
	case s.appendCount > 0:
		hints.Flags |= wire.HintAppend
	case s.prependCount > 0:
		hints.Flags |= wire.HintPrepend
	}
	if s.lastLeafCount[opInsert] >= fastTrackThreshold {
		hints.LeafPageAddr = s.lastLeafPage[opInsert]
	}
	return hints
}

// EraseSucceeded reports that an erase removed a key from the leaf at addr.
func (s *Stats) EraseSucceeded(addr uint64) { s.touch(opErase, addr) }

// EraseFailed reports that an erase found no matching key.
func (s *Stats) EraseFailed() { s.reset(opErase) }

// ResetPage invalidates cached leaf statistics when a page is recycled
// or a handle closes. The reset is unconditional across all three
// operations rather than filtered by addr; a db_close or cursor_close is
// rare enough that the cheaper global reset costs nothing.
func (s *Stats) ResetPage(addr uint64) {
	_ = addr
	for op := operation(0); op < opCount; op++ {
		s.reset(op)
	}
}

// SetPageCapacity records one observed leaf key-capacity sample, evicting
// the oldest sample once the window is full.
func (s *Stats) SetPageCapacity(capacity uint32) {
	if s.capacityCount < maxCapacitySamples {
		s.capacities[s.capacityCount] = capacity
		s.capacityCount++
		return
	}
	copy(s.capacities[:maxCapacitySamples-1], s.capacities[1:])
	s.capacities[maxCapacitySamples-1] = capacity
}

// DefaultPageCapacity returns the mean of the current capacity samples, or
// zero if none have been recorded yet.
func (s *Stats) DefaultPageCapacity() uint32 {
	if s.capacityCount == 0 {
		return 0
	}
	var total uint32
	for _, c := range s.capacities[:s.capacityCount] {
		total += c
	}
	return total / uint32(s.capacityCount)
}

// CapacitySamples returns a copy of the currently recorded capacity
// samples in insertion order, for the cmd/hamclient stats sparkline.
func (s *Stats) CapacitySamples() []uint32 {
	out := make([]uint32, s.capacityCount)
	copy(out, s.capacities[:s.capacityCount])
	return out
}
