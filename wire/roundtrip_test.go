package wire

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestSchemaRoundTripDbFind(t *testing.T) {
	req := &DbFindRequest{
		DbHandle:  42,
		TxnHandle: 7,
		Key:       Key{HasData: true, Data: []byte("pluto"), Size: 5, Flags: KeyUserAlloc},
		Record:    Record{HasData: false, Size: 0},
		Flags:     FindFlagGreaterOrEqual,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSchemaFrame(&buf, req))

	disc, body, err := ReadSchemaFrameRaw(&buf)
	require.NoError(t, err)
	require.Equal(t, DDbFindRequest, disc)

	got := &DbFindRequest{}
	require.NoError(t, DecodeSchema(body, got))
	require.Equal(t, req, got)
}

func TestFixedRoundTripCursorMove(t *testing.T) {
	req := &CursorMoveRequest{
		CursorHandle: 99,
		Key:          Key{HasData: true, Data: []byte("ab"), Size: 2},
		Record:       Record{HasData: true, Data: []byte("value"), Size: 5, Flags: RecordPartial, PartialOffset: 1, PartialSize: 3},
		Flags:        CursorNext,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFixedFrame(&buf, req))

	got := &CursorMoveRequest{}
	require.NoError(t, ReadFixedFrame(&buf, got))
	require.Equal(t, req, got)
}

// TestFixedDecodeCursorOverwriteReply pins down the fix for the C++
// fixed codec's bug (its deserialize called serialize for this one
// message): a CursorOverwriteReply must decode its Status field from the
// wire, not leave it at its zero value regardless of what was sent.
func TestFixedDecodeCursorOverwriteReply(t *testing.T) {
	reply := &CursorOverwriteReply{Status: StatusDuplicateKey}

	var buf bytes.Buffer
	require.NoError(t, WriteFixedFrame(&buf, reply))

	got := &CursorOverwriteReply{}
	require.NoError(t, ReadFixedFrame(&buf, got))
	require.Equal(t, StatusDuplicateKey, got.Status)
	require.NotEqual(t, StatusSuccess, got.Status)
}

func TestFixedWrapperRejectsSizeMismatch(t *testing.T) {
	reply := &TxnCommitReply{Status: StatusSuccess}
	var buf bytes.Buffer
	require.NoError(t, WriteFixedFrame(&buf, reply))

	raw := buf.Bytes()
	// Corrupt total_size (bytes 4..8, little-endian) to disagree with the body.
	raw[4] = 0xff
	raw[5] = 0xff

	got := &TxnCommitReply{}
	err := ReadFixedFrame(bytes.NewReader(raw), got)
	require.Error(t, err)
	require.Truef(t, errors.Is(err, ErrNetwork), "want ErrNetwork, got %v", err)
}

func TestSchemaFrameRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSchemaFrame(&buf, &DisconnectRequest{EnvHandle: 1}))
	raw := buf.Bytes()
	raw[0] ^= 0xff

	_, _, err := ReadSchemaFrameRaw(bytes.NewReader(raw))
	require.Error(t, err)
	require.Truef(t, errors.Is(err, ErrProtocol), "want ErrProtocol, got %v", err)
}

func TestEnvGetDatabaseNamesRoundTrip(t *testing.T) {
	reply := &EnvGetDatabaseNamesReply{Status: StatusSuccess, Names: []uint16{1, 3, 7}}

	schemaBody := EncodeSchema(reply)
	got := &EnvGetDatabaseNamesReply{}
	require.NoError(t, DecodeSchema(schemaBody, got))
	require.Equal(t, reply, got)

	fixedBody := EncodeFixed(reply)
	got2 := &EnvGetDatabaseNamesReply{}
	require.NoError(t, DecodeFixed(fixedBody, got2))
	require.Equal(t, reply, got2)
}

func TestNewReplyForCoversEveryRequest(t *testing.T) {
	for d := Discriminator(0); d < discriminatorCount; d += 2 {
		reply, ok := NewReplyFor(d)
		require.Truef(t, ok, "no reply type registered for request discriminator %d", d)
		require.Equal(t, d+1, reply.Discriminator())
	}
}
