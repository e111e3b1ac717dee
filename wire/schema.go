package wire

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Schema encoding: each field is preceded by its field number and a
// one-byte wire-type tag, so the payload can in principle be read against
// an external schema rather than a fixed struct layout. Strings and byte
// blocks are length-prefixed; Key/Record blocks carry an explicit present
// bit (has_key/has_record), and their data bytes are written only when it
// is set (the size and flag fields that follow are always written).
const (
	wBool byte = iota
	wInt       // fixed-width signed/unsigned scalar; width implied by size hint byte that follows
	wBytes
	wU16Slice
	wU32Slice
	wS32Slice
	wU64Slice
	wKey
	wRecord
)

// EncodeSchema packs m into the schema encoding's payload (without the
// 8-byte frame header; see WriteSchemaFrame for that).
func EncodeSchema(m Message) []byte {
	var buf []byte
	for i, f := range m.fields() {
		buf = appendU16(buf, uint16(i))
		buf = encodeSchemaField(buf, f)
	}
	return buf
}

func encodeSchemaField(buf []byte, f field) []byte {
	switch f.kind {
	case kBool:
		return append(buf, wBool, boolByte(*f.b))
	case kU8:
		return append(buf, wInt, 1, *f.u8)
	case kU16:
		buf = append(buf, wInt, 2)
		return appendU16(buf, *f.u16)
	case kU32:
		buf = append(buf, wInt, 4)
		return appendU32(buf, *f.u32)
	case kU64:
		buf = append(buf, wInt, 8)
		return appendU64(buf, *f.u64)
	case kS8:
		return append(buf, wInt, 1, byte(*f.s8))
	case kS16:
		buf = append(buf, wInt, 2)
		return appendU16(buf, uint16(*f.s16))
	case kS32:
		buf = append(buf, wInt, 4)
		return appendU32(buf, uint32(*f.s32))
	case kS64:
		buf = append(buf, wInt, 8)
		return appendU64(buf, uint64(*f.s64))
	case kBytes:
		buf = append(buf, wBytes)
		return appendBytes(buf, *f.bs)
	case kString:
		buf = append(buf, wBytes)
		return appendBytes(buf, []byte(*f.str))
	case kU16Slice:
		buf = append(buf, wU16Slice)
		buf = appendU32(buf, uint32(len(*f.u16s)))
		for _, v := range *f.u16s {
			buf = appendU16(buf, v)
		}
		return buf
	case kU32Slice:
		buf = append(buf, wU32Slice)
		buf = appendU32(buf, uint32(len(*f.u32s)))
		for _, v := range *f.u32s {
			buf = appendU32(buf, v)
		}
		return buf
	case kS32Slice:
		buf = append(buf, wS32Slice)
		buf = appendU32(buf, uint32(len(*f.s32s)))
		for _, v := range *f.s32s {
			buf = appendU32(buf, uint32(v))
		}
		return buf
	case kU64Slice:
		buf = append(buf, wU64Slice)
		buf = appendU32(buf, uint32(len(*f.u64s)))
		for _, v := range *f.u64s {
			buf = appendU64(buf, v)
		}
		return buf
	case kKey:
		buf = append(buf, wKey, boolByte(f.key.HasData))
		if f.key.HasData {
			buf = appendBytes(buf, f.key.Data)
		}
		buf = appendU16(buf, f.key.Size)
		buf = appendU32(buf, f.key.Flags)
		buf = appendU32(buf, f.key.IntFlags)
		return buf
	case kRecord:
		buf = append(buf, wRecord, boolByte(f.rec.HasData))
		if f.rec.HasData {
			buf = appendBytes(buf, f.rec.Data)
		}
		buf = appendU32(buf, f.rec.Size)
		buf = appendU32(buf, f.rec.Flags)
		buf = appendU32(buf, f.rec.PartialOffset)
		buf = appendU32(buf, f.rec.PartialSize)
		return buf
	default:
		panic("wire: unhandled field kind")
	}
}

// DecodeSchema unpacks buf (the body ReadSchemaFrameRaw returns, after the
// 8-byte frame header and the 4-byte discriminator) into m, whose fields() must describe the same shape encodeSchemaField
// produced.
func DecodeSchema(buf []byte, m Message) error {
	r := schemaReader{buf: buf}
	for i, f := range m.fields() {
		num, err := r.u16()
		if err != nil {
			return ProtocolErrorf("schema: field %d: %s", i, err)
		}
		if int(num) != i {
			return ProtocolErrorf("schema: field index mismatch: want %d got %d", i, num)
		}
		if err := decodeSchemaField(&r, f); err != nil {
			return ProtocolErrorf("schema: field %d: %s", i, err)
		}
	}
	return nil
}

func decodeSchemaField(r *schemaReader, f field) error {
	tag, err := r.byte()
	if err != nil {
		return err
	}
	switch f.kind {
	case kBool:
		if tag != wBool {
			return errors.Newf("expected bool tag, got %d", tag)
		}
		b, err := r.byte()
		if err != nil {
			return err
		}
		*f.b = b != 0
		return nil
	case kU8, kU16, kU32, kU64, kS8, kS16, kS32, kS64:
		if tag != wInt {
			return errors.Newf("expected int tag, got %d", tag)
		}
		width, err := r.byte()
		if err != nil {
			return err
		}
		return decodeScalar(r, f, int(width))
	case kBytes:
		if tag != wBytes {
			return errors.Newf("expected bytes tag, got %d", tag)
		}
		b, err := r.bytes()
		if err != nil {
			return err
		}
		*f.bs = b
		return nil
	case kString:
		if tag != wBytes {
			return errors.Newf("expected bytes tag, got %d", tag)
		}
		b, err := r.bytes()
		if err != nil {
			return err
		}
		*f.str = string(b)
		return nil
	case kU16Slice:
		if tag != wU16Slice {
			return errors.Newf("expected u16 slice tag, got %d", tag)
		}
		n, err := r.u32()
		if err != nil {
			return err
		}
		out := make([]uint16, n)
		for i := range out {
			out[i], err = r.u16()
			if err != nil {
				return err
			}
		}
		*f.u16s = out
		return nil
	case kU32Slice:
		if tag != wU32Slice {
			return errors.Newf("expected u32 slice tag, got %d", tag)
		}
		n, err := r.u32()
		if err != nil {
			return err
		}
		out := make([]uint32, n)
		for i := range out {
			out[i], err = r.u32()
			if err != nil {
				return err
			}
		}
		*f.u32s = out
		return nil
	case kS32Slice:
		if tag != wS32Slice {
			return errors.Newf("expected s32 slice tag, got %d", tag)
		}
		n, err := r.u32()
		if err != nil {
			return err
		}
		out := make([]int32, n)
		for i := range out {
			v, err := r.u32()
			if err != nil {
				return err
			}
			out[i] = int32(v)
		}
		*f.s32s = out
		return nil
	case kU64Slice:
		if tag != wU64Slice {
			return errors.Newf("expected u64 slice tag, got %d", tag)
		}
		n, err := r.u32()
		if err != nil {
			return err
		}
		out := make([]uint64, n)
		for i := range out {
			out[i], err = r.u64()
			if err != nil {
				return err
			}
		}
		*f.u64s = out
		return nil
	case kKey:
		if tag != wKey {
			return errors.Newf("expected key tag, got %d", tag)
		}
		has, err := r.byte()
		if err != nil {
			return err
		}
		f.key.HasData = has != 0
		if f.key.HasData {
			b, err := r.bytes()
			if err != nil {
				return err
			}
			f.key.Data = b
		} else {
			f.key.Data = nil
		}
		if f.key.Size, err = r.u16(); err != nil {
			return err
		}
		if f.key.Flags, err = r.u32(); err != nil {
			return err
		}
		if f.key.IntFlags, err = r.u32(); err != nil {
			return err
		}
		return nil
	case kRecord:
		if tag != wRecord {
			return errors.Newf("expected record tag, got %d", tag)
		}
		has, err := r.byte()
		if err != nil {
			return err
		}
		f.rec.HasData = has != 0
		if f.rec.HasData {
			b, err := r.bytes()
			if err != nil {
				return err
			}
			f.rec.Data = b
		} else {
			f.rec.Data = nil
		}
		if f.rec.Size, err = r.u32(); err != nil {
			return err
		}
		if f.rec.Flags, err = r.u32(); err != nil {
			return err
		}
		if f.rec.PartialOffset, err = r.u32(); err != nil {
			return err
		}
		if f.rec.PartialSize, err = r.u32(); err != nil {
			return err
		}
		return nil
	default:
		panic("wire: unhandled field kind")
	}
}

func decodeScalar(r *schemaReader, f field, width int) error {
	switch width {
	case 1:
		b, err := r.byte()
		if err != nil {
			return err
		}
		if f.u8 != nil {
			*f.u8 = b
		} else {
			*f.s8 = int8(b)
		}
	case 2:
		v, err := r.u16()
		if err != nil {
			return err
		}
		if f.u16 != nil {
			*f.u16 = v
		} else {
			*f.s16 = int16(v)
		}
	case 4:
		v, err := r.u32()
		if err != nil {
			return err
		}
		if f.u32 != nil {
			*f.u32 = v
		} else {
			*f.s32 = int32(v)
		}
	case 8:
		v, err := r.u64()
		if err != nil {
			return err
		}
		if f.u64 != nil {
			*f.u64 = v
		} else {
			*f.s64 = int64(v)
		}
	default:
		return errors.Newf("unsupported scalar width %d", width)
	}
	return nil
}

type schemaReader struct {
	buf []byte
	off int
}

func (r *schemaReader) need(n int) error {
	if r.off+n > len(r.buf) {
		return errors.Newf("truncated: need %d bytes at offset %d, have %d", n, r.off, len(r.buf))
	}
	return nil
}

func (r *schemaReader) byte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

func (r *schemaReader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

func (r *schemaReader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *schemaReader) u64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

func (r *schemaReader) bytes() ([]byte, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	if err := r.need(int(n)); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, r.buf[r.off:r.off+int(n)])
	r.off += int(n)
	return b, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func appendU16(buf []byte, v uint16) []byte {
	return append(buf, byte(v>>8), byte(v))
}

func appendU32(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func appendU64(buf []byte, v uint64) []byte {
	return append(buf,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func appendBytes(buf []byte, b []byte) []byte {
	buf = appendU32(buf, uint32(len(b)))
	return append(buf, b...)
}
