package client

import "github.com/hamsterdb/hamkv/wire"

// Key is the caller-owned key buffer. When a reply carries key bytes,
// they land in the scope's key arena and Data is pointed at it, unless
// Flags has wire.KeyUserAlloc set (the USER_ALLOC opt-out), in which case
// they are copied into the caller's own Data. IntFlags is populated by
// Find/Move with the approximate-match relation bits and is otherwise
// ignored on input.
type Key struct {
	Data     []byte
	Flags    uint32
	IntFlags uint32
}

// Record is the caller-owned record buffer, with the same
// arena/USER_ALLOC ownership rule as Key.
type Record struct {
	Data          []byte
	Flags         uint32
	PartialOffset uint32
	PartialSize   uint32
}

// userAlloc reports whether the caller opted out of arena management.
func (k *Key) userAlloc() bool {
	return k != nil && k.Flags&wire.KeyUserAlloc != 0
}

func (r *Record) userAlloc() bool {
	return r != nil && r.Flags&wire.RecordUserAlloc != 0
}

// toWireKey builds the outgoing wire.Key for k. When suppressData is set
// (record-number inserts), no key bytes are transmitted regardless of
// k's contents.
func toWireKey(k *Key, suppressData bool) wire.Key {
	if k == nil {
		return wire.Key{}
	}
	wk := wire.Key{Flags: k.Flags}
	if !suppressData && k.Data != nil {
		wk.HasData = true
		wk.Data = k.Data
		wk.Size = uint16(len(k.Data))
	}
	return wk
}

func toWireRecord(r *Record) wire.Record {
	if r == nil {
		return wire.Record{}
	}
	wr := wire.Record{
		Flags:         r.Flags,
		PartialOffset: r.PartialOffset,
		PartialSize:   r.PartialSize,
	}
	if r.Data != nil {
		wr.HasData = true
		wr.Data = r.Data
		wr.Size = uint32(len(r.Data))
	}
	return wr
}

// fillKeyFromReply copies a reply's key bytes back into k, honoring the
// USER_ALLOC opt-out: a user-allocated buffer is trusted to already be
// the right size; otherwise the bytes land in arena and k.Data is
// pointed at the arena's base.
func (s *Session) fillKeyFromReply(k *Key, reply wire.Key, arena *Arena) {
	if k == nil || !reply.HasData {
		return
	}
	k.IntFlags = reply.IntFlags
	if k.userAlloc() {
		n := copy(k.Data, reply.Data)
		k.Data = k.Data[:n]
		return
	}
	buf := arena.Resize(len(reply.Data))
	copy(buf, reply.Data)
	k.Data = buf
	s.metrics.ArenaResizes.Inc()
}

func (s *Session) fillRecordFromReply(r *Record, reply wire.Record, arena *Arena) {
	if r == nil || !reply.HasData {
		return
	}
	if r.userAlloc() {
		n := copy(r.Data, reply.Data)
		r.Data = r.Data[:n]
		return
	}
	buf := arena.Resize(len(reply.Data))
	copy(buf, reply.Data)
	r.Data = buf
	s.metrics.ArenaResizes.Inc()
}
