package wire

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Fixed encoding: every logical type serializes to its own fixed
// slot. Booleans and types up to 32 bits occupy 4 bytes (to preserve
// alignment); 64-bit types occupy 8. Byte blocks are a 4-byte length
// followed by the payload padded to a 4-byte boundary. All integers are
// little-endian, matching the C++ serde layout this encoding is
// byte-compatible with.
const slot32 = 4
const slot64 = 8

// fixedSize returns the number of bytes fields will occupy when encoded,
// dispatching on each field's kind.
func fixedSize(fields []field) int {
	n := 0
	for _, f := range fields {
		n += fixedFieldSize(f)
	}
	return n
}

func fixedFieldSize(f field) int {
	switch f.kind {
	case kBool, kU8, kU16, kU32, kS8, kS16, kS32:
		return slot32
	case kU64, kS64:
		return slot64
	case kBytes:
		return slot32 + align4(len(*f.bs))
	case kString:
		return slot32 + align4(len(*f.str))
	case kU16Slice:
		return slot32 + len(*f.u16s)*slot32
	case kU32Slice:
		return slot32 + len(*f.u32s)*slot32
	case kS32Slice:
		return slot32 + len(*f.s32s)*slot32
	case kU64Slice:
		return slot32 + len(*f.u64s)*slot64
	case kKey:
		n := slot32 // has_data
		if f.key.HasData {
			n += slot32 + align4(len(f.key.Data))
		}
		n += slot32 + slot32 + slot32 // size, flags, intflags
		return n
	case kRecord:
		n := slot32
		if f.rec.HasData {
			n += slot32 + align4(len(f.rec.Data))
		}
		n += slot32 + slot32 + slot32 + slot32 // size, flags, partial_offset, partial_size
		return n
	default:
		panic("wire: unhandled field kind")
	}
}

func align4(n int) int {
	if n%4 != 0 {
		return n + 4 - n%4
	}
	return n
}

// EncodeFixed serializes m's fields in declared order into a freshly
// allocated, exactly-sized buffer: required bytes are computed up front
// and allocated once.
func EncodeFixed(m Message) []byte {
	fields := m.fields()
	buf := make([]byte, fixedSize(fields))
	off := 0
	for _, f := range fields {
		off = encodeFixedField(buf, off, f)
	}
	return buf
}

func encodeFixedField(buf []byte, off int, f field) int {
	switch f.kind {
	case kBool:
		putU32(buf[off:], boolU32(*f.b))
		return off + slot32
	case kU8:
		putU32(buf[off:], uint32(*f.u8))
		return off + slot32
	case kU16:
		putU32(buf[off:], uint32(*f.u16))
		return off + slot32
	case kU32:
		putU32(buf[off:], *f.u32)
		return off + slot32
	case kU64:
		putU64(buf[off:], *f.u64)
		return off + slot64
	case kS8:
		putU32(buf[off:], uint32(int32(*f.s8)))
		return off + slot32
	case kS16:
		putU32(buf[off:], uint32(int32(*f.s16)))
		return off + slot32
	case kS32:
		putU32(buf[off:], uint32(*f.s32))
		return off + slot32
	case kS64:
		putU64(buf[off:], uint64(*f.s64))
		return off + slot64
	case kBytes:
		return putFixedBytes(buf, off, *f.bs)
	case kString:
		return putFixedBytes(buf, off, []byte(*f.str))
	case kU16Slice:
		putU32(buf[off:], uint32(len(*f.u16s)))
		off += slot32
		for _, v := range *f.u16s {
			putU32(buf[off:], uint32(v))
			off += slot32
		}
		return off
	case kU32Slice:
		putU32(buf[off:], uint32(len(*f.u32s)))
		off += slot32
		for _, v := range *f.u32s {
			putU32(buf[off:], v)
			off += slot32
		}
		return off
	case kS32Slice:
		putU32(buf[off:], uint32(len(*f.s32s)))
		off += slot32
		for _, v := range *f.s32s {
			putU32(buf[off:], uint32(v))
			off += slot32
		}
		return off
	case kU64Slice:
		putU32(buf[off:], uint32(len(*f.u64s)))
		off += slot32
		for _, v := range *f.u64s {
			putU64(buf[off:], v)
			off += slot64
		}
		return off
	case kKey:
		putU32(buf[off:], boolU32(f.key.HasData))
		off += slot32
		if f.key.HasData {
			off = putFixedBytes(buf, off, f.key.Data)
		}
		putU32(buf[off:], uint32(f.key.Size))
		off += slot32
		putU32(buf[off:], f.key.Flags)
		off += slot32
		putU32(buf[off:], f.key.IntFlags)
		off += slot32
		return off
	case kRecord:
		putU32(buf[off:], boolU32(f.rec.HasData))
		off += slot32
		if f.rec.HasData {
			off = putFixedBytes(buf, off, f.rec.Data)
		}
		putU32(buf[off:], f.rec.Size)
		off += slot32
		putU32(buf[off:], f.rec.Flags)
		off += slot32
		putU32(buf[off:], f.rec.PartialOffset)
		off += slot32
		putU32(buf[off:], f.rec.PartialSize)
		off += slot32
		return off
	default:
		panic("wire: unhandled field kind")
	}
}

func putFixedBytes(buf []byte, off int, b []byte) int {
	putU32(buf[off:], uint32(len(b)))
	off += slot32
	copy(buf[off:], b)
	return off + align4(len(b))
}

// DecodeFixed deserializes fields from buf in declared order. It does not
// allocate a size up front (the caller already knows buf's length from
// the wrapper header) but validates that it never reads past buf.
func DecodeFixed(buf []byte, m Message) error {
	off := 0
	var err error
	for i, f := range m.fields() {
		off, err = decodeFixedField(buf, off, f)
		if err != nil {
			return ProtocolErrorf("fixed: field %d: %s", i, err)
		}
	}
	return nil
}

func decodeFixedField(buf []byte, off int, f field) (int, error) {
	switch f.kind {
	case kBool:
		v, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		*f.b = v != 0
		return off + slot32, nil
	case kU8:
		v, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		*f.u8 = uint8(v)
		return off + slot32, nil
	case kU16:
		v, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		*f.u16 = uint16(v)
		return off + slot32, nil
	case kU32:
		v, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		*f.u32 = v
		return off + slot32, nil
	case kU64:
		v, err := getU64(buf, off)
		if err != nil {
			return off, err
		}
		*f.u64 = v
		return off + slot64, nil
	case kS8:
		v, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		*f.s8 = int8(int32(v))
		return off + slot32, nil
	case kS16:
		v, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		*f.s16 = int16(int32(v))
		return off + slot32, nil
	case kS32:
		v, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		*f.s32 = int32(v)
		return off + slot32, nil
	case kS64:
		v, err := getU64(buf, off)
		if err != nil {
			return off, err
		}
		*f.s64 = int64(v)
		return off + slot64, nil
	case kBytes:
		b, noff, err := getFixedBytes(buf, off)
		if err != nil {
			return off, err
		}
		*f.bs = b
		return noff, nil
	case kString:
		b, noff, err := getFixedBytes(buf, off)
		if err != nil {
			return off, err
		}
		*f.str = string(b)
		return noff, nil
	case kU16Slice:
		n, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		off += slot32
		out := make([]uint16, n)
		for i := range out {
			v, err := getU32(buf, off)
			if err != nil {
				return off, err
			}
			out[i] = uint16(v)
			off += slot32
		}
		*f.u16s = out
		return off, nil
	case kU32Slice:
		n, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		off += slot32
		out := make([]uint32, n)
		for i := range out {
			v, err := getU32(buf, off)
			if err != nil {
				return off, err
			}
			out[i] = v
			off += slot32
		}
		*f.u32s = out
		return off, nil
	case kS32Slice:
		n, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		off += slot32
		out := make([]int32, n)
		for i := range out {
			v, err := getU32(buf, off)
			if err != nil {
				return off, err
			}
			out[i] = int32(v)
			off += slot32
		}
		*f.s32s = out
		return off, nil
	case kU64Slice:
		n, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		off += slot32
		out := make([]uint64, n)
		for i := range out {
			v, err := getU64(buf, off)
			if err != nil {
				return off, err
			}
			out[i] = v
			off += slot64
		}
		*f.u64s = out
		return off, nil
	case kKey:
		has, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		off += slot32
		f.key.HasData = has != 0
		if f.key.HasData {
			var b []byte
			b, off, err = getFixedBytes(buf, off)
			if err != nil {
				return off, err
			}
			f.key.Data = b
		} else {
			f.key.Data = nil
		}
		v, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		f.key.Size = uint16(v)
		off += slot32
		if f.key.Flags, err = getU32(buf, off); err != nil {
			return off, err
		}
		off += slot32
		if f.key.IntFlags, err = getU32(buf, off); err != nil {
			return off, err
		}
		off += slot32
		return off, nil
	case kRecord:
		has, err := getU32(buf, off)
		if err != nil {
			return off, err
		}
		off += slot32
		f.rec.HasData = has != 0
		if f.rec.HasData {
			var b []byte
			b, off, err = getFixedBytes(buf, off)
			if err != nil {
				return off, err
			}
			f.rec.Data = b
		} else {
			f.rec.Data = nil
		}
		if f.rec.Size, err = getU32(buf, off); err != nil {
			return off, err
		}
		off += slot32
		if f.rec.Flags, err = getU32(buf, off); err != nil {
			return off, err
		}
		off += slot32
		if f.rec.PartialOffset, err = getU32(buf, off); err != nil {
			return off, err
		}
		off += slot32
		if f.rec.PartialSize, err = getU32(buf, off); err != nil {
			return off, err
		}
		off += slot32
		return off, nil
	default:
		panic("wire: unhandled field kind")
	}
}

func getFixedBytes(buf []byte, off int) ([]byte, int, error) {
	n, err := getU32(buf, off)
	if err != nil {
		return nil, off, err
	}
	off += slot32
	padded := align4(int(n))
	if off+padded > len(buf) {
		return nil, off, errors.Newf("truncated byte block at offset %d", off)
	}
	b := make([]byte, n)
	copy(b, buf[off:off+int(n)])
	return b, off + padded, nil
}

func putU32(dst []byte, v uint32) { binary.LittleEndian.PutUint32(dst, v) }
func putU64(dst []byte, v uint64) { binary.LittleEndian.PutUint64(dst, v) }

func getU32(buf []byte, off int) (uint32, error) {
	if off+slot32 > len(buf) {
		return 0, errors.Newf("truncated at offset %d", off)
	}
	return binary.LittleEndian.Uint32(buf[off:]), nil
}

func getU64(buf []byte, off int) (uint64, error) {
	if off+slot64 > len(buf) {
		return 0, errors.Newf("truncated at offset %d", off)
	}
	return binary.LittleEndian.Uint64(buf[off:]), nil
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
