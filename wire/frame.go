package wire

import (
	"encoding/binary"
	"io"
)

// Wire magic values.
const (
	magicSchema uint32 = 0x68616D31 // "ham1"
	magicFixed  uint32 = 0x68616D32 // "ham2"
)

// Schema framing: an 8-byte header (4-byte magic, 4-byte big-endian
// payload length) followed by a payload that itself opens with a
// big-endian discriminator so a reader that doesn't know the reply type
// up front can still route it (client.Session does this for replies).

// WriteSchemaFrame writes m as one schema-encoded frame.
func WriteSchemaFrame(w io.Writer, m Message) error {
	body := EncodeSchema(m)
	payload := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(payload, uint32(m.Discriminator()))
	copy(payload[4:], body)

	header := make([]byte, 8)
	binary.BigEndian.PutUint32(header, magicSchema)
	binary.BigEndian.PutUint32(header[4:], uint32(len(payload)))
	if _, err := w.Write(header); err != nil {
		return NetworkError("write schema frame header", err)
	}
	if _, err := w.Write(payload); err != nil {
		return NetworkError("write schema frame payload", err)
	}
	return nil
}

// ReadSchemaFrameRaw reads and validates one schema frame's header and
// returns its discriminator and undecoded body (the bytes after the
// embedded discriminator), leaving the caller to pick the right Message
// type and call DecodeSchema.
func ReadSchemaFrameRaw(r io.Reader) (Discriminator, []byte, error) {
	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, NetworkError("read schema frame header", err)
	}
	magic := binary.BigEndian.Uint32(header)
	if magic != magicSchema {
		return 0, nil, ProtocolErrorf("bad schema magic: got %#x want %#x", magic, magicSchema)
	}
	length := binary.BigEndian.Uint32(header[4:])
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, NetworkError("read schema frame payload", err)
	}
	if len(payload) < 4 {
		return 0, nil, ProtocolErrorf("schema payload too short: %d bytes", len(payload))
	}
	disc := Discriminator(binary.BigEndian.Uint32(payload))
	return disc, payload[4:], nil
}

// ReadSchemaFrame reads one frame and decodes it into m, failing with
// ErrProtocol if the frame's discriminator doesn't match m's.
func ReadSchemaFrame(r io.Reader, m Message) error {
	disc, body, err := ReadSchemaFrameRaw(r)
	if err != nil {
		return err
	}
	if disc != m.Discriminator() {
		return ProtocolErrorf("schema discriminator mismatch: got %d want %d", disc, m.Discriminator())
	}
	return DecodeSchema(body, m)
}

// Fixed framing: the wrapper itself is the frame (magic, total_size,
// discriminator, body) rather than a separate outer envelope.

// WriteFixedFrame writes m as one fixed-encoded wrapper.
func WriteFixedFrame(w io.Writer, m Message) error {
	body := EncodeFixed(m)
	header := make([]byte, 12)
	binary.LittleEndian.PutUint32(header, magicFixed)
	binary.LittleEndian.PutUint32(header[4:], uint32(len(body)))
	binary.LittleEndian.PutUint32(header[8:], uint32(m.Discriminator()))
	if _, err := w.Write(header); err != nil {
		return NetworkError("write fixed frame header", err)
	}
	if _, err := w.Write(body); err != nil {
		return NetworkError("write fixed frame body", err)
	}
	return nil
}

// ReadFixedFrameRaw reads and validates one fixed wrapper's header and
// returns its discriminator and undecoded body.
func ReadFixedFrameRaw(r io.Reader) (Discriminator, []byte, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, NetworkError("read fixed frame header", err)
	}
	magic := binary.LittleEndian.Uint32(header)
	if magic != magicFixed {
		return 0, nil, ProtocolErrorf("bad fixed magic: got %#x want %#x", magic, magicFixed)
	}
	totalSize := binary.LittleEndian.Uint32(header[4:])
	disc := Discriminator(binary.LittleEndian.Uint32(header[8:]))
	body := make([]byte, totalSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, nil, NetworkError("read fixed frame body", err)
	}
	return disc, body, nil
}

// ReadFixedFrame reads one wrapper and decodes it into m, checking that
// the discriminator matches m's before decoding and that total_size
// matches the decoded message's own computed size afterwards.
func ReadFixedFrame(r io.Reader, m Message) error {
	disc, body, err := ReadFixedFrameRaw(r)
	if err != nil {
		return err
	}
	if disc != m.Discriminator() {
		return ProtocolErrorf("fixed discriminator mismatch: got %d want %d", disc, m.Discriminator())
	}
	if err := DecodeFixed(body, m); err != nil {
		return err
	}
	if want := fixedSize(m.fields()); len(body) != want {
		return ProtocolErrorf("fixed wrapper size disagreement: header says %d, message needs %d", len(body), want)
	}
	return nil
}
