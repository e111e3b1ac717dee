package client

import (
	"github.com/google/uuid"

	"github.com/hamsterdb/hamkv/handle"
	"github.com/hamsterdb/hamkv/wire"
)

// Txn is a handle to an open transaction. Supported flags are
// wire.TxnReadOnly and wire.TxnTemporary.
type Txn struct {
	session *Session
	id      handle.ID

	temporary bool
	arenas    *arenaScope // nil when temporary: shares the parent database's
}

// Begin starts a transaction under the session's environment. A
// transaction opened without an explicit name is given a generated one,
// purely for diagnostics; the server treats an empty vs. generated name
// identically unless the caller relies on name-based lookup elsewhere.
func (s *Session) Begin(name string, flags uint32) (*Txn, error) {
	remote, ok := s.remoteEnv()
	if !ok {
		return nil, wire.ProtocolErrorf("txn_begin: session not connected")
	}
	if name == "" {
		name = uuid.NewString()
	}
	req := &wire.TxnBeginRequest{EnvHandle: remote, Name: name, Flags: flags}
	reply := &wire.TxnBeginReply{}
	if err := s.call("txn_begin", req, reply); err != nil {
		return nil, err
	}
	if err := engineError("txn_begin", reply.Status); err != nil {
		return nil, err
	}

	temporary := flags&wire.TxnTemporary != 0
	id := s.handles.Put(reply.TxnHandle, s.envID, handle.KindTxn)
	txn := &Txn{session: s, id: id, temporary: temporary}
	if !temporary {
		txn.arenas = newArenaScope()
	}
	return txn, nil
}

func (t *Txn) remote() (uint64, bool) {
	return t.session.handles.Remote(t.id)
}

// Commit commits the transaction and clears its local handle.
func (t *Txn) Commit(flags uint32) error {
	remote, ok := t.remote()
	if !ok {
		return wire.ProtocolErrorf("txn_commit: stale transaction handle")
	}
	req := &wire.TxnCommitRequest{TxnHandle: remote, Flags: flags}
	reply := &wire.TxnCommitReply{}
	if err := t.session.call("txn_commit", req, reply); err != nil {
		return err
	}
	if err := engineError("txn_commit", reply.Status); err != nil {
		return err
	}
	t.session.handles.Close(t.id)
	return nil
}

// Abort aborts the transaction, rolling back everything done under it,
// and clears its local handle.
func (t *Txn) Abort(flags uint32) error {
	remote, ok := t.remote()
	if !ok {
		return wire.ProtocolErrorf("txn_abort: stale transaction handle")
	}
	req := &wire.TxnAbortRequest{TxnHandle: remote, Flags: flags}
	reply := &wire.TxnAbortReply{}
	if err := t.session.call("txn_abort", req, reply); err != nil {
		return err
	}
	if err := engineError("txn_abort", reply.Status); err != nil {
		return err
	}
	t.session.handles.Close(t.id)
	return nil
}
