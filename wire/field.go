package wire

// fieldKind names the logical type of one struct field, shared by both
// encodings so a message only has to describe its shape once (see
// Message.fields). The fixed encoding picks the slot width from the
// kind; the schema encoding picks the wire-type tag from it.
type fieldKind uint8

const (
	kBool fieldKind = iota
	kU8
	kU16
	kU32
	kU64
	kS8
	kS16
	kS32
	kS64
	kBytes
	kString
	kU16Slice
	kU32Slice
	kS32Slice
	kU64Slice
	kKey
	kRecord
)

// field is a typed pointer into a message struct. Exactly one of the
// pointer fields is non-nil, selected by kind.
type field struct {
	kind fieldKind

	b   *bool
	u8  *uint8
	u16 *uint16
	u32 *uint32
	u64 *uint64
	s8  *int8
	s16 *int16
	s32 *int32
	s64 *int64

	bs  *[]byte
	str *string

	u16s *[]uint16
	u32s *[]uint32
	s32s *[]int32
	u64s *[]uint64

	key *Key
	rec *Record
}

func fBool(p *bool) field         { return field{kind: kBool, b: p} }
func fU8(p *uint8) field          { return field{kind: kU8, u8: p} }
func fU16(p *uint16) field        { return field{kind: kU16, u16: p} }
func fU32(p *uint32) field        { return field{kind: kU32, u32: p} }
func fU64(p *uint64) field        { return field{kind: kU64, u64: p} }
func fS8(p *int8) field           { return field{kind: kS8, s8: p} }
func fS16(p *int16) field         { return field{kind: kS16, s16: p} }
func fS32(p *int32) field         { return field{kind: kS32, s32: p} }
func fS64(p *int64) field         { return field{kind: kS64, s64: p} }
func fStatus(p *Status) field     { return field{kind: kS32, s32: (*int32)(p)} }
func fBytes(p *[]byte) field      { return field{kind: kBytes, bs: p} }
func fString(p *string) field     { return field{kind: kString, str: p} }
func fU16Slice(p *[]uint16) field { return field{kind: kU16Slice, u16s: p} }
func fU32Slice(p *[]uint32) field { return field{kind: kU32Slice, u32s: p} }
func fS32Slice(p *[]int32) field  { return field{kind: kS32Slice, s32s: p} }
func fU64Slice(p *[]uint64) field { return field{kind: kU64Slice, u64s: p} }
func fKey(p *Key) field           { return field{kind: kKey, key: p} }
func fRecord(p *Record) field     { return field{kind: kRecord, rec: p} }
