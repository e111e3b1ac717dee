// Package handle implements the client-side handle table: a map from
// local opaque pointers to the server-issued handle they stand for,
// plus the parent handle each child was opened under, so closing a
// parent can cascade.
package handle

import "sync"

// ID is a local opaque identifier minted by Table.Put. It is never
// transmitted; only the server-issued Remote value travels on the wire.
type ID uint64

// entry is one row of the table: the remote 64-bit handle the server
// returned, and the local ID of the parent this was opened under (zero
// for an environment handle, which has no parent).
type entry struct {
	remote uint64
	parent ID
	kind   Kind
}

// Kind distinguishes environment/database/transaction/cursor handles so
// cascading Close can tell which children belong to a closed parent.
type Kind uint8

const (
	KindEnv Kind = iota
	KindDb
	KindTxn
	KindCursor
)

// Table tracks every open handle for one client session. It is guarded
// by its own mutex independent of Session's call mutex (handles are
// immutable once issued), so a lookup never blocks on an in-flight
// round trip.
type Table struct {
	mu      sync.Mutex
	nextID  ID
	entries map[ID]entry
}

// New returns an empty handle table.
func New() *Table {
	return &Table{entries: make(map[ID]entry)}
}

// Put registers a newly issued remote handle under a fresh local ID and
// returns it.
func (t *Table) Put(remote uint64, parent ID, kind Kind) ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	id := t.nextID
	t.entries[id] = entry{remote: remote, parent: parent, kind: kind}
	return id
}

// Remote returns the server-issued handle for id and whether id is still
// open. A stale or cascaded-closed id returns (0, false).
func (t *Table) Remote(id ID) (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	return e.remote, ok
}

// Close removes id and, cascading, every entry whose parent chain
// reaches id, mirroring the server's own cascade when an environment or
// database handle closes out from under open children.
func (t *Table) Close(id ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[id]; !ok {
		return
	}
	delete(t.entries, id)
	closed := map[ID]bool{id: true}
	for {
		removedAny := false
		for child, e := range t.entries {
			if closed[e.parent] {
				delete(t.entries, child)
				closed[child] = true
				removedAny = true
			}
		}
		if !removedAny {
			break
		}
	}
}

// Len reports the number of handles currently tracked, mainly for tests
// and the tui status line.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
