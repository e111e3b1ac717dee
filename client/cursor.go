package client

import (
	"github.com/hamsterdb/hamkv/handle"
	"github.com/hamsterdb/hamkv/wire"
)

// Cursor is a handle to an open cursor: a stateful position within a
// database's key order.
type Cursor struct {
	session *Session
	id      handle.ID
	db      *Database
	txn     *Txn
}

func (s *Session) newCursor(remote uint64, db *Database, txn *Txn) *Cursor {
	id := s.handles.Put(remote, db.id, handle.KindCursor)
	return &Cursor{session: s, id: id, db: db, txn: txn}
}

func (c *Cursor) remote() (uint64, bool) {
	return c.session.handles.Remote(c.id)
}

// Clone duplicates the cursor's current position into a new handle.
func (c *Cursor) Clone() (*Cursor, error) {
	remote, ok := c.remote()
	if !ok {
		return nil, wire.ProtocolErrorf("cursor_clone: stale cursor handle")
	}
	req := &wire.CursorCloneRequest{CursorHandle: remote}
	reply := &wire.CursorCloneReply{}
	if err := c.session.call("cursor_clone", req, reply); err != nil {
		return nil, err
	}
	if err := engineError("cursor_clone", reply.Status); err != nil {
		return nil, err
	}
	return c.session.newCursor(reply.CursorHandle, c.db, c.txn), nil
}

// Close closes the cursor and clears its local handle.
func (c *Cursor) Close() error {
	remote, ok := c.remote()
	if !ok {
		return nil
	}
	req := &wire.CursorCloseRequest{CursorHandle: remote}
	reply := &wire.CursorCloseReply{}
	if err := c.session.call("cursor_close", req, reply); err != nil {
		return err
	}
	if err := engineError("cursor_close", reply.Status); err != nil {
		return err
	}
	c.session.handles.Close(c.id)
	c.db.stats.ResetPage(0)
	return nil
}

// Insert inserts key/record at the cursor's new position, applying the
// same record-number rule as Database.Insert.
func (c *Cursor) Insert(key *Key, record *Record, flags uint32) error {
	remote, ok := c.remote()
	if !ok {
		return wire.ProtocolErrorf("cursor_insert: stale cursor handle")
	}
	arenas := c.db.scopeArenas(c.txn)
	hints := c.db.stats.GetInsertHints(flags)
	if hints.Flags != flags || hints.LeafPageAddr != 0 {
		c.session.metrics.FastTrackHints.Inc()
	}
	flags = hints.Flags

	req := &wire.CursorInsertRequest{
		CursorHandle: remote,
		Key:          toWireKey(key, c.db.recordNumber),
		Record:       toWireRecord(record),
		Flags:        flags,
	}
	reply := &wire.CursorInsertReply{}
	if err := c.session.call("cursor_insert", req, reply); err != nil {
		c.db.stats.InsertFailed()
		return err
	}
	if err := engineError("cursor_insert", reply.Status); err != nil {
		c.db.stats.InsertFailed()
		return err
	}

	if c.db.recordNumber && key != nil {
		c.db.applyRecordNumberKey(key, reply.Key, arenas.key)
	} else if key != nil {
		c.session.fillKeyFromReply(key, reply.Key, arenas.key)
	}
	return nil
}

// Erase removes the key at the cursor's current position.
func (c *Cursor) Erase(flags uint32) error {
	remote, ok := c.remote()
	if !ok {
		return wire.ProtocolErrorf("cursor_erase: stale cursor handle")
	}
	req := &wire.CursorEraseRequest{CursorHandle: remote, Flags: flags}
	reply := &wire.CursorEraseReply{}
	if err := c.session.call("cursor_erase", req, reply); err != nil {
		c.db.stats.EraseFailed()
		return err
	}
	if err := engineError("cursor_erase", reply.Status); err != nil {
		c.db.stats.EraseFailed()
		return err
	}
	return nil
}

// Find repositions the cursor to key (exact or approximate per flags).
func (c *Cursor) Find(key *Key, record *Record, flags uint32) error {
	remote, ok := c.remote()
	if !ok {
		return wire.ProtocolErrorf("cursor_find: stale cursor handle")
	}
	req := &wire.CursorFindRequest{
		CursorHandle: remote,
		Key:          toWireKey(key, false),
		Record:       toWireRecord(record),
		Flags:        flags,
	}
	reply := &wire.CursorFindReply{}
	if err := c.session.call("cursor_find", req, reply); err != nil {
		c.db.stats.FindFailed()
		return err
	}
	if err := engineError("cursor_find", reply.Status); err != nil {
		c.db.stats.FindFailed()
		return err
	}
	arenas := c.db.scopeArenas(c.txn)
	c.session.fillKeyFromReply(key, reply.Key, arenas.key)
	c.session.fillRecordFromReply(record, reply.Record, arenas.record)
	return nil
}

// Overwrite replaces the record at the cursor's current position without
// moving it.
//
// The C++ client's fixed codec had a deserialize/serialize mixup in its
// CursorOverwriteReply branch; wire.DecodeFixed always dispatches to the
// decode path, so that bug has no foothold here (pinned by
// wire.TestFixedDecodeCursorOverwriteReply).
func (c *Cursor) Overwrite(record *Record, flags uint32) error {
	remote, ok := c.remote()
	if !ok {
		return wire.ProtocolErrorf("cursor_overwrite: stale cursor handle")
	}
	req := &wire.CursorOverwriteRequest{CursorHandle: remote, Record: toWireRecord(record), Flags: flags}
	reply := &wire.CursorOverwriteReply{}
	if err := c.session.call("cursor_overwrite", req, reply); err != nil {
		return err
	}
	return engineError("cursor_overwrite", reply.Status)
}

// Move repositions the cursor per flags (FIRST/LAST/NEXT/PREVIOUS or the
// current position) and fills keyOut/recordOut when they're non-nil and
// the reply carries data for them.
func (c *Cursor) Move(keyOut *Key, recordOut *Record, flags uint32) error {
	remote, ok := c.remote()
	if !ok {
		return wire.ProtocolErrorf("cursor_move: stale cursor handle")
	}
	req := &wire.CursorMoveRequest{
		CursorHandle: remote,
		Key:          toWireKey(keyOut, false),
		Record:       toWireRecord(recordOut),
		Flags:        flags,
	}
	reply := &wire.CursorMoveReply{}
	if err := c.session.call("cursor_move", req, reply); err != nil {
		return err
	}
	if err := engineError("cursor_move", reply.Status); err != nil {
		return err
	}
	arenas := c.db.scopeArenas(c.txn)
	c.session.fillKeyFromReply(keyOut, reply.Key, arenas.key)
	c.session.fillRecordFromReply(recordOut, reply.Record, arenas.record)
	return nil
}

// GetRecordCount returns the number of duplicates of the key at the
// cursor's current position.
func (c *Cursor) GetRecordCount(flags uint32) (uint32, error) {
	remote, ok := c.remote()
	if !ok {
		return 0, wire.ProtocolErrorf("cursor_get_record_count: stale cursor handle")
	}
	req := &wire.CursorGetRecordCountRequest{CursorHandle: remote, Flags: flags}
	reply := &wire.CursorGetRecordCountReply{}
	if err := c.session.call("cursor_get_record_count", req, reply); err != nil {
		return 0, err
	}
	if err := engineError("cursor_get_record_count", reply.Status); err != nil {
		return 0, err
	}
	return reply.Count, nil
}

// GetRecordSize always fails with wire.ErrNotImplemented without a round
// trip. The server's cursor_get_record_size handler refuses the call
// unconditionally, so there is no point spending a round trip on it.
func (c *Cursor) GetRecordSize() (uint32, error) {
	return 0, wire.ErrNotImplemented
}
