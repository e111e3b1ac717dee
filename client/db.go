package client

import (
	"github.com/hamsterdb/hamkv/handle"
	"github.com/hamsterdb/hamkv/stats"
	"github.com/hamsterdb/hamkv/wire"
)

// Database is a handle to one open database. All of its methods
// round-trip through the owning Session.
type Database struct {
	session *Session
	id      handle.ID

	flags        uint32
	recordNumber bool

	arenas *arenaScope
	stats  *stats.Stats
}

func (s *Session) newDatabase(remote uint64, flags uint32, recordNumber bool) *Database {
	id := s.handles.Put(remote, s.envID, handle.KindDb)
	return &Database{
		session:      s,
		id:           id,
		flags:        flags,
		recordNumber: recordNumber,
		arenas:       newArenaScope(),
		stats:        stats.New(),
	}
}

// Stats returns the database's adaptive hint state.
func (d *Database) Stats() *stats.Stats { return d.stats }

func (d *Database) remote() (uint64, bool) {
	return d.session.handles.Remote(d.id)
}

func txnRemote(txn *Txn) uint64 {
	if txn == nil {
		return 0
	}
	remote, _ := txn.remote()
	return remote
}

// Close closes the database. On success the local handle is cleared and
// must not be reused.
func (d *Database) Close(flags uint32) error {
	remote, ok := d.remote()
	if !ok {
		return nil
	}
	req := &wire.DbCloseRequest{DbHandle: remote, Flags: flags}
	reply := &wire.DbCloseReply{}
	if err := d.session.call("db_close", req, reply); err != nil {
		return err
	}
	if err := engineError("db_close", reply.Status); err != nil {
		return err
	}
	d.session.handles.Close(d.id)
	// Cached leaf addresses are meaningless once the database is closed.
	d.stats.ResetPage(0)
	return nil
}

// DbParameters is the subset of db_get_parameters fields the caller
// asked for by id.
type DbParameters struct {
	Flags       uint32
	KeySize     uint16
	RecordSize  uint32
	KeyType     uint32
	DbName      uint16
	KeysPerPage uint32
}

// GetParameters fetches the database parameters named in names.
func (d *Database) GetParameters(names []uint32) (DbParameters, error) {
	remote, ok := d.remote()
	if !ok {
		return DbParameters{}, wire.ProtocolErrorf("db_get_parameters: stale database handle")
	}
	req := &wire.DbGetParametersRequest{DbHandle: remote, Names: names}
	reply := &wire.DbGetParametersReply{}
	if err := d.session.call("db_get_parameters", req, reply); err != nil {
		return DbParameters{}, err
	}
	if err := engineError("db_get_parameters", reply.Status); err != nil {
		return DbParameters{}, err
	}
	return DbParameters{
		Flags:       reply.Flags,
		KeySize:     reply.KeySize,
		RecordSize:  reply.RecordSize,
		KeyType:     reply.KeyType,
		DbName:      reply.DbName,
		KeysPerPage: reply.KeysPerPage,
	}, nil
}

// CheckIntegrity verifies the database's internal consistency.
func (d *Database) CheckIntegrity(flags uint32) error {
	remote, ok := d.remote()
	if !ok {
		return wire.ProtocolErrorf("db_check_integrity: stale database handle")
	}
	req := &wire.DbCheckIntegrityRequest{DbHandle: remote, Flags: flags}
	reply := &wire.DbCheckIntegrityReply{}
	if err := d.session.call("db_check_integrity", req, reply); err != nil {
		return err
	}
	return engineError("db_check_integrity", reply.Status)
}

// GetKeyCount returns the number of keys in the database, optionally
// scoped to txn.
func (d *Database) GetKeyCount(txn *Txn, flags uint32) (uint64, error) {
	remote, ok := d.remote()
	if !ok {
		return 0, wire.ProtocolErrorf("db_get_key_count: stale database handle")
	}
	req := &wire.DbGetKeyCountRequest{DbHandle: remote, TxnHandle: txnRemote(txn), Flags: flags}
	reply := &wire.DbGetKeyCountReply{}
	if err := d.session.call("db_get_key_count", req, reply); err != nil {
		return 0, err
	}
	if err := engineError("db_get_key_count", reply.Status); err != nil {
		return 0, err
	}
	return reply.Count, nil
}

// scopeArenas returns the arena scope a call against this database under
// txn should use: a durable transaction owns its own arenas, and a
// temporary one (or no transaction at all) shares the database's.
func (d *Database) scopeArenas(txn *Txn) *arenaScope {
	if txn != nil && txn.arenas != nil {
		return txn.arenas
	}
	return d.arenas
}

// Insert inserts key/record. For a record-number database no key bytes
// are sent, and on success key.Data is overwritten with the 8-byte
// server-assigned key, allocated from the scope's key arena if key.Data
// was nil.
func (d *Database) Insert(txn *Txn, key *Key, record *Record, flags uint32) error {
	remote, ok := d.remote()
	if !ok {
		return wire.ProtocolErrorf("db_insert: stale database handle")
	}
	arenas := d.scopeArenas(txn)
	// Fold in the hint core's append/prepend flags before sending: a
	// positive append or prepend streak tells the server which leaf to
	// probe first, purely as an optimization.
	hints := d.stats.GetInsertHints(flags)
	if hints.Flags != flags || hints.LeafPageAddr != 0 {
		d.session.metrics.FastTrackHints.Inc()
	}
	flags = hints.Flags

	req := &wire.DbInsertRequest{
		DbHandle:  remote,
		TxnHandle: txnRemote(txn),
		Key:       toWireKey(key, d.recordNumber),
		Record:    toWireRecord(record),
		Flags:     flags,
	}
	reply := &wire.DbInsertReply{}
	if err := d.session.call("db_insert", req, reply); err != nil {
		d.stats.InsertFailed()
		return err
	}
	if err := engineError("db_insert", reply.Status); err != nil {
		d.stats.InsertFailed()
		return err
	}

	if d.recordNumber && key != nil {
		d.applyRecordNumberKey(key, reply.Key, arenas.key)
	} else if key != nil {
		d.session.fillKeyFromReply(key, reply.Key, arenas.key)
	}
	return nil
}

// applyRecordNumberKey handles a record-number insert's reply side:
// reply.Key.Data is exactly 8 bytes, and it always lands in key.Data
// regardless of USER_ALLOC, since the caller couldn't have pre-populated
// an auto-assigned key.
func (d *Database) applyRecordNumberKey(key *Key, reply wire.Key, arena *Arena) {
	var dst []byte
	if key.Data != nil && len(key.Data) >= 8 {
		dst = key.Data[:8]
	} else {
		dst = arena.Resize(8)
		d.session.metrics.ArenaResizes.Inc()
	}
	copy(dst, reply.Data)
	key.Data = dst
}

// Erase removes key.
func (d *Database) Erase(txn *Txn, key *Key, flags uint32) error {
	remote, ok := d.remote()
	if !ok {
		return wire.ProtocolErrorf("db_erase: stale database handle")
	}
	req := &wire.DbEraseRequest{DbHandle: remote, TxnHandle: txnRemote(txn), Key: toWireKey(key, false), Flags: flags}
	reply := &wire.DbEraseReply{}
	if err := d.session.call("db_erase", req, reply); err != nil {
		d.stats.EraseFailed()
		return err
	}
	if err := engineError("db_erase", reply.Status); err != nil {
		d.stats.EraseFailed()
		return err
	}
	return nil
}

// Find looks up key (exact or approximate per flags) and fills record
// on success. Key.IntFlags carries the approximate-match relation when
// an approximate flag was requested.
func (d *Database) Find(txn *Txn, key *Key, record *Record, flags uint32) error {
	remote, ok := d.remote()
	if !ok {
		return wire.ProtocolErrorf("db_find: stale database handle")
	}
	arenas := d.scopeArenas(txn)
	if d.stats.GetFindHints(flags).TryFastTrack {
		d.session.metrics.FastTrackHints.Inc()
	}
	req := &wire.DbFindRequest{
		DbHandle:  remote,
		TxnHandle: txnRemote(txn),
		Key:       toWireKey(key, false),
		Record:    toWireRecord(record),
		Flags:     flags,
	}
	reply := &wire.DbFindReply{}
	if err := d.session.call("db_find", req, reply); err != nil {
		d.stats.FindFailed()
		return err
	}
	if err := engineError("db_find", reply.Status); err != nil {
		d.stats.FindFailed()
		return err
	}
	d.session.fillKeyFromReply(key, reply.Key, arenas.key)
	d.session.fillRecordFromReply(record, reply.Record, arenas.record)
	return nil
}

// CreateCursor opens a new cursor positioned before the first key.
func (d *Database) CreateCursor(txn *Txn, flags uint32) (*Cursor, error) {
	remote, ok := d.remote()
	if !ok {
		return nil, wire.ProtocolErrorf("cursor_create: stale database handle")
	}
	req := &wire.CursorCreateRequest{DbHandle: remote, TxnHandle: txnRemote(txn), Flags: flags}
	reply := &wire.CursorCreateReply{}
	if err := d.session.call("cursor_create", req, reply); err != nil {
		return nil, err
	}
	if err := engineError("cursor_create", reply.Status); err != nil {
		return nil, err
	}
	return d.session.newCursor(reply.CursorHandle, d, txn), nil
}
