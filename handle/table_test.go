package handle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCascadingClose(t *testing.T) {
	tbl := New()

	env := tbl.Put(100, 0, KindEnv)
	db := tbl.Put(200, env, KindDb)
	txn := tbl.Put(300, db, KindTxn)
	cur := tbl.Put(400, txn, KindCursor)

	require.Equal(t, 4, tbl.Len())

	tbl.Close(db)

	for _, id := range []ID{db, txn, cur} {
		_, ok := tbl.Remote(id)
		require.False(t, ok, "id %d should have been cascaded away", id)
	}
	remote, ok := tbl.Remote(env)
	require.True(t, ok)
	require.Equal(t, uint64(100), remote)
	require.Equal(t, 1, tbl.Len())
}

func TestCloseUnknownIDIsNoop(t *testing.T) {
	tbl := New()
	tbl.Close(ID(9999))
	require.Equal(t, 0, tbl.Len())
}
