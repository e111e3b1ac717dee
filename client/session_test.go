package client_test

import (
	"encoding/binary"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hamsterdb/hamkv/client"
	"github.com/hamsterdb/hamkv/wire"
)

// fakeServer is an in-process stand-in for the server side of the wire
// protocol. It implements client.Transport directly against typed
// wire.Message values instead of encoding them, since the codecs are
// already exhaustively tested in package wire; what these tests pin down
// is the client's behavioral contracts.
type fakeServer struct {
	nextHandle uint64

	dbs     map[uint64]*fakeDb
	cursors map[uint64]*fakeCursor
	txns    map[uint64]*fakeTxn
}

type fakeDb struct {
	recordNumber bool
	nextRecNo    uint64
	committed    map[string][]byte
}

type fakeTxn struct {
	overlay map[string][]byte // nil value marks a deletion
	db      *fakeDb
}

type fakeCursor struct {
	db  *fakeDb
	txn *fakeTxn
	pos int // index into the sorted key list; -1 before the first key
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		dbs:     make(map[uint64]*fakeDb),
		cursors: make(map[uint64]*fakeCursor),
		txns:    make(map[uint64]*fakeTxn),
	}
}

func (f *fakeServer) handle() uint64 {
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeServer) sortedKeys(db *fakeDb, txn *fakeTxn) []string {
	seen := make(map[string]bool)
	var keys []string
	for k := range db.committed {
		if txn != nil {
			if v, overridden := txn.overlay[k]; overridden && v == nil {
				continue
			}
		}
		keys = append(keys, k)
		seen[k] = true
	}
	if txn != nil {
		for k, v := range txn.overlay {
			if v != nil && !seen[k] {
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func (f *fakeServer) get(db *fakeDb, txn *fakeTxn, key string) ([]byte, bool) {
	if txn != nil {
		if v, ok := txn.overlay[key]; ok {
			return v, v != nil
		}
	}
	v, ok := db.committed[key]
	return v, ok
}

func (f *fakeServer) put(db *fakeDb, txn *fakeTxn, key string, value []byte) {
	if txn != nil {
		txn.overlay[key] = value
		return
	}
	db.committed[key] = value
}

func (f *fakeServer) del(db *fakeDb, txn *fakeTxn, key string) {
	if txn != nil {
		txn.overlay[key] = nil
		return
	}
	delete(db.committed, key)
}

func (f *fakeServer) RoundTrip(_ wire.Codec, req, reply wire.Message) error {
	switch r := req.(type) {
	case *wire.ConnectRequest:
		rep := reply.(*wire.ConnectReply)
		rep.Status = wire.StatusSuccess
		rep.EnvHandle = f.handle()
		return nil

	case *wire.DisconnectRequest:
		reply.(*wire.DisconnectReply).Status = wire.StatusSuccess
		return nil

	case *wire.EnvCreateDbRequest:
		rep := reply.(*wire.EnvCreateDbReply)
		db := &fakeDb{committed: make(map[string][]byte)}
		for i, name := range r.ParamNames {
			if name == client.ParamKeyTypeRecordNumber && r.ParamValues[i] != 0 {
				db.recordNumber = true
			}
		}
		h := f.handle()
		f.dbs[h] = db
		rep.Status = wire.StatusSuccess
		rep.DbHandle = h
		if db.recordNumber {
			rep.DbFlags = wire.KeyRecordNumber
		}
		return nil

	case *wire.DbCloseRequest:
		delete(f.dbs, r.DbHandle)
		reply.(*wire.DbCloseReply).Status = wire.StatusSuccess
		return nil

	case *wire.TxnBeginRequest:
		rep := reply.(*wire.TxnBeginReply)
		h := f.handle()
		f.txns[h] = &fakeTxn{overlay: make(map[string][]byte)}
		rep.Status = wire.StatusSuccess
		rep.TxnHandle = h
		return nil

	case *wire.TxnCommitRequest:
		txn := f.txns[r.TxnHandle]
		// The fake doesn't track which db a txn touched (tests use one db
		// per txn), so merge the overlay into every db; only the relevant
		// one has matching keys.
		for _, db := range f.dbs {
			for k, v := range txn.overlay {
				if v == nil {
					delete(db.committed, k)
				} else {
					db.committed[k] = v
				}
			}
		}
		delete(f.txns, r.TxnHandle)
		reply.(*wire.TxnCommitReply).Status = wire.StatusSuccess
		return nil

	case *wire.TxnAbortRequest:
		delete(f.txns, r.TxnHandle)
		reply.(*wire.TxnAbortReply).Status = wire.StatusSuccess
		return nil

	case *wire.DbInsertRequest:
		rep := reply.(*wire.DbInsertReply)
		db := f.dbs[r.DbHandle]
		txn := f.txns[r.TxnHandle]
		key := r.Key.Data
		if db.recordNumber {
			db.nextRecNo++
			buf := make([]byte, 8)
			binary.LittleEndian.PutUint64(buf, db.nextRecNo)
			key = buf
			rep.Key = wire.Key{HasData: true, Data: buf, Size: 8}
		}
		if _, exists := f.get(db, txn, string(key)); exists {
			rep.Status = wire.StatusDuplicateKey
			return nil
		}
		f.put(db, txn, string(key), append([]byte(nil), r.Record.Data...))
		rep.Status = wire.StatusSuccess
		return nil

	case *wire.DbEraseRequest:
		rep := reply.(*wire.DbEraseReply)
		db := f.dbs[r.DbHandle]
		txn := f.txns[r.TxnHandle]
		if _, ok := f.get(db, txn, string(r.Key.Data)); !ok {
			rep.Status = wire.StatusKeyNotFound
			return nil
		}
		f.del(db, txn, string(r.Key.Data))
		rep.Status = wire.StatusSuccess
		return nil

	case *wire.DbFindRequest:
		rep := reply.(*wire.DbFindReply)
		db := f.dbs[r.DbHandle]
		txn := f.txns[r.TxnHandle]
		f.find(db, txn, r.Key.Data, r.Flags, &rep.Status, &rep.Key, &rep.Record)
		return nil

	case *wire.CursorCreateRequest:
		rep := reply.(*wire.CursorCreateReply)
		h := f.handle()
		f.cursors[h] = &fakeCursor{db: f.dbs[r.DbHandle], txn: f.txns[r.TxnHandle], pos: -1}
		rep.Status = wire.StatusSuccess
		rep.CursorHandle = h
		return nil

	case *wire.CursorCloseRequest:
		delete(f.cursors, r.CursorHandle)
		reply.(*wire.CursorCloseReply).Status = wire.StatusSuccess
		return nil

	case *wire.CursorMoveRequest:
		rep := reply.(*wire.CursorMoveReply)
		cur := f.cursors[r.CursorHandle]
		keys := f.sortedKeys(cur.db, cur.txn)
		switch {
		case r.Flags&wire.CursorFirst != 0:
			cur.pos = 0
		case r.Flags&wire.CursorLast != 0:
			cur.pos = len(keys) - 1
		case r.Flags&wire.CursorNext != 0:
			cur.pos++
		case r.Flags&wire.CursorPrevious != 0:
			cur.pos--
		}
		if cur.pos < 0 || cur.pos >= len(keys) {
			rep.Status = wire.StatusKeyNotFound
			return nil
		}
		key := keys[cur.pos]
		value, _ := f.get(cur.db, cur.txn, key)
		rep.Status = wire.StatusSuccess
		rep.Key = wire.Key{HasData: true, Data: []byte(key), Size: uint16(len(key))}
		rep.Record = wire.Record{HasData: true, Data: value, Size: uint32(len(value))}
		return nil

	default:
		return wire.ProtocolErrorf("fakeServer: unhandled request %T", req)
	}
}

func (f *fakeServer) find(db *fakeDb, txn *fakeTxn, key []byte, flags uint32, status *wire.Status, keyOut *wire.Key, recOut *wire.Record) {
	exact := flags&(wire.FindFlagLessOrEqual|wire.FindFlagGreaterOrEqual|wire.FindFlagLess|wire.FindFlagGreater) == 0
	if exact {
		v, ok := f.get(db, txn, string(key))
		if !ok {
			*status = wire.StatusKeyNotFound
			return
		}
		*status = wire.StatusSuccess
		*recOut = wire.Record{HasData: true, Data: v, Size: uint32(len(v))}
		return
	}

	keys := f.sortedKeys(db, txn)
	idx := sort.SearchStrings(keys, string(key))
	var found string
	var intflag uint32
	switch {
	case flags&wire.FindFlagLessOrEqual != 0:
		if idx < len(keys) && keys[idx] == string(key) {
			found, intflag = keys[idx], wire.KeyIsApproximateEQ
		} else if idx > 0 {
			found, intflag = keys[idx-1], wire.KeyIsApproximateLT
		}
	case flags&wire.FindFlagGreaterOrEqual != 0:
		if idx < len(keys) && keys[idx] == string(key) {
			found, intflag = keys[idx], wire.KeyIsApproximateEQ
		} else if idx < len(keys) {
			found, intflag = keys[idx], wire.KeyIsApproximateGT
		}
	}
	if found == "" && intflag == 0 {
		*status = wire.StatusKeyNotFound
		return
	}
	v, _ := f.get(db, txn, found)
	*status = wire.StatusSuccess
	keyOut.HasData = true
	keyOut.Data = []byte(found)
	keyOut.Size = uint16(len(found))
	keyOut.IntFlags = intflag
	*recOut = wire.Record{HasData: true, Data: v, Size: uint32(len(v))}
}

func (f *fakeServer) Close() error { return nil }

func connectFake(t *testing.T) (*client.Session, *fakeServer) {
	t.Helper()
	srv := newFakeServer()
	sess, err := client.Connect("local.db", srv, wire.SchemaCodec)
	require.NoError(t, err)
	return sess, srv
}

func TestInsertThenFind(t *testing.T) {
	sess, _ := connectFake(t)
	db, err := sess.CreateDb(13, 0, nil)
	require.NoError(t, err)

	err = db.Insert(nil, &client.Key{Data: []byte("k")}, &client.Record{Data: []byte("v")}, 0)
	require.NoError(t, err)

	record := &client.Record{}
	err = db.Find(nil, &client.Key{Data: []byte("k")}, record, 0)
	require.NoError(t, err)
	require.Equal(t, "v", string(record.Data))
}

// TestRecordNumberInsert verifies the server-assigned 8-byte key lands
// in the caller's key buffer.
func TestRecordNumberInsert(t *testing.T) {
	sess, _ := connectFake(t)
	db, err := sess.CreateDb(1, 0, []client.CreateParam{{Name: client.ParamKeyTypeRecordNumber, Value: 1}})
	require.NoError(t, err)

	key := &client.Key{}
	err = db.Insert(nil, key, &client.Record{Data: []byte("x")}, 0)
	require.NoError(t, err)
	require.Len(t, key.Data, 8)
	require.Equal(t, uint64(1), binary.LittleEndian.Uint64(key.Data))
}

func TestApproxFind(t *testing.T) {
	sess, _ := connectFake(t)
	db, err := sess.CreateDb(2, 0, nil)
	require.NoError(t, err)

	for _, n := range []uint32{10, 20, 30} {
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, n)
		require.NoError(t, db.Insert(nil, &client.Key{Data: buf}, &client.Record{Data: buf}, 0))
	}

	key25 := make([]byte, 4)
	binary.BigEndian.PutUint32(key25, 25)

	k := &client.Key{Data: append([]byte(nil), key25...)}
	rec := &client.Record{}
	require.NoError(t, db.Find(nil, k, rec, wire.FindFlagLessOrEqual))
	require.Equal(t, uint32(20), binary.BigEndian.Uint32(k.Data))
	require.NotZero(t, k.IntFlags&wire.KeyIsApproximateLT)

	k2 := &client.Key{Data: append([]byte(nil), key25...)}
	rec2 := &client.Record{}
	require.NoError(t, db.Find(nil, k2, rec2, wire.FindFlagGreaterOrEqual))
	require.Equal(t, uint32(30), binary.BigEndian.Uint32(k2.Data))
	require.NotZero(t, k2.IntFlags&wire.KeyIsApproximateGT)
}

func TestCursorMove(t *testing.T) {
	sess, _ := connectFake(t)
	db, err := sess.CreateDb(3, 0, nil)
	require.NoError(t, err)

	for _, n := range []byte{1, 2, 3} {
		require.NoError(t, db.Insert(nil, &client.Key{Data: []byte{n}}, &client.Record{Data: []byte{n}}, 0))
	}

	cur, err := db.CreateCursor(nil, 0)
	require.NoError(t, err)

	k := &client.Key{}
	require.NoError(t, cur.Move(k, nil, wire.CursorFirst))
	require.Equal(t, []byte{1}, k.Data)

	require.NoError(t, cur.Move(k, nil, wire.CursorNext))
	require.Equal(t, []byte{2}, k.Data)

	require.NoError(t, cur.Move(k, nil, wire.CursorLast))
	require.Equal(t, []byte{3}, k.Data)

	err = cur.Move(k, nil, wire.CursorNext)
	var engErr *client.EngineError
	require.ErrorAs(t, err, &engErr)
	require.Equal(t, wire.StatusKeyNotFound, engErr.Status)
}

func TestTxnAbortRollsBack(t *testing.T) {
	sess, _ := connectFake(t)
	db, err := sess.CreateDb(4, 0, nil)
	require.NoError(t, err)

	txn, err := sess.Begin("", 0)
	require.NoError(t, err)

	require.NoError(t, db.Insert(txn, &client.Key{Data: []byte("a")}, &client.Record{Data: []byte("1")}, 0))

	rec := &client.Record{}
	require.NoError(t, db.Find(txn, &client.Key{Data: []byte("a")}, rec, 0))
	require.Equal(t, "1", string(rec.Data))

	require.NoError(t, txn.Abort(0))

	err = db.Find(nil, &client.Key{Data: []byte("a")}, &client.Record{}, 0)
	var engErr *client.EngineError
	require.ErrorAs(t, err, &engErr)
	require.Equal(t, wire.StatusKeyNotFound, engErr.Status)
}

func TestHandleNotReusedAfterClose(t *testing.T) {
	sess, _ := connectFake(t)
	db, err := sess.CreateDb(5, 0, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close(0))

	err = db.Find(nil, &client.Key{Data: []byte("x")}, &client.Record{}, 0)
	require.Error(t, err)
}

func TestArenaFillsNonUserAllocReply(t *testing.T) {
	sess, _ := connectFake(t)
	db, err := sess.CreateDb(6, 0, nil)
	require.NoError(t, err)

	require.NoError(t, db.Insert(nil, &client.Key{Data: []byte("k")}, &client.Record{Data: []byte("hello")}, 0))

	record := &client.Record{}
	require.NoError(t, db.Find(nil, &client.Key{Data: []byte("k")}, record, 0))
	require.Equal(t, "hello", string(record.Data))

	// A second call on the same scope is free to reuse the arena; the
	// first call's returned slice is not guaranteed to survive it, which
	// is exactly what "valid until the next call on the same scope" means.
	require.NoError(t, db.Insert(nil, &client.Key{Data: []byte("k2")}, &client.Record{Data: []byte("bye")}, 0))
}
