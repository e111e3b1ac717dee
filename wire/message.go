package wire

// Status is the numeric result of a single call. Zero is success;
// everything else is an engine error, returned verbatim to the
// caller with out-parameters left untouched.
type Status int32

const (
	StatusSuccess             Status = 0
	StatusKeyNotFound         Status = -1
	StatusDuplicateKey        Status = -2
	StatusInvalidParameter    Status = -3
	StatusIOError             Status = -4
	StatusOutOfMemory         Status = -5
	StatusInternalError       Status = -6
	StatusReadOnly            Status = -7
	StatusNotImplemented      Status = -8
	StatusInvalidKeySize      Status = -9
	StatusInvalidRecordSize   Status = -10
	StatusCursorStillOpen     Status = -11
	StatusDatabaseNotFound    Status = -12
	StatusDatabaseAlreadyOpen Status = -13
	StatusLimitsReached       Status = -14
	StatusAlreadyInitialized  Status = -15
	StatusAccessDenied        Status = -16
	StatusTxnConflict         Status = -17
)

func (s Status) OK() bool { return s == StatusSuccess }

// Key flags.
const (
	KeyUserAlloc    uint32 = 1 << 0
	KeyRecordNumber uint32 = 1 << 1
)

// Key intflags (reply-side approximate-match bits). Mutually exclusive.
const (
	KeyIsApproximateLT uint32 = 1 << 0
	KeyIsApproximateGT uint32 = 1 << 1
	KeyIsApproximateEQ uint32 = 1 << 2
)

// Record flags.
const (
	RecordUserAlloc uint32 = 1 << 0
	RecordPartial   uint32 = 1 << 1
)

// Operation flags. HintAppend/HintPrepend are the two bits the hint
// core forwards across the wire.
const (
	HintAppend   uint32 = 1 << 0
	HintPrepend  uint32 = 1 << 1
	TxnReadOnly  uint32 = 1 << 2
	TxnTemporary uint32 = 1 << 3

	FindFlagExact          uint32 = 1 << 8
	FindFlagLessOrEqual    uint32 = 1 << 9
	FindFlagGreaterOrEqual uint32 = 1 << 10
	FindFlagLess           uint32 = 1 << 11
	FindFlagGreater        uint32 = 1 << 12

	CursorFirst    uint32 = 1 << 16
	CursorLast     uint32 = 1 << 17
	CursorNext     uint32 = 1 << 18
	CursorPrevious uint32 = 1 << 19
)

// Key is the wire representation of a caller's key buffer.
type Key struct {
	HasData  bool
	Data     []byte
	Size     uint16
	Flags    uint32
	IntFlags uint32
}

// Record is the wire representation of a caller's record buffer.
type Record struct {
	HasData       bool
	Data          []byte
	Size          uint32
	Flags         uint32
	PartialOffset uint32
	PartialSize   uint32
}

// Discriminator identifies a message variant in the fixed encoding's
// wrapper and doubles as the schema encoding's message id.
type Discriminator uint32

const (
	DConnectRequest Discriminator = iota
	DConnectReply
	DDisconnectRequest
	DDisconnectReply
	DEnvRenameRequest
	DEnvRenameReply
	DEnvGetParametersRequest
	DEnvGetParametersReply
	DEnvGetDatabaseNamesRequest
	DEnvGetDatabaseNamesReply
	DEnvFlushRequest
	DEnvFlushReply
	DEnvCreateDbRequest
	DEnvCreateDbReply
	DEnvOpenDbRequest
	DEnvOpenDbReply
	DEnvEraseDbRequest
	DEnvEraseDbReply
	DDbCloseRequest
	DDbCloseReply
	DDbGetParametersRequest
	DDbGetParametersReply
	DTxnBeginRequest
	DTxnBeginReply
	DTxnCommitRequest
	DTxnCommitReply
	DTxnAbortRequest
	DTxnAbortReply
	DDbCheckIntegrityRequest
	DDbCheckIntegrityReply
	DDbGetKeyCountRequest
	DDbGetKeyCountReply
	DDbInsertRequest
	DDbInsertReply
	DDbEraseRequest
	DDbEraseReply
	DDbFindRequest
	DDbFindReply
	DCursorCreateRequest
	DCursorCreateReply
	DCursorCloneRequest
	DCursorCloneReply
	DCursorCloseRequest
	DCursorCloseReply
	DCursorInsertRequest
	DCursorInsertReply
	DCursorEraseRequest
	DCursorEraseReply
	DCursorFindRequest
	DCursorFindReply
	DCursorGetRecordCountRequest
	DCursorGetRecordCountReply
	DCursorOverwriteRequest
	DCursorOverwriteReply
	DCursorMoveRequest
	DCursorMoveReply

	discriminatorCount
)

// Message is implemented by every request/reply struct in the catalog. It
// describes the struct's fields in declared order so both codecs can walk
// it generically instead of hand-rolling per-message encode/decode pairs.
type Message interface {
	Discriminator() Discriminator
	fields() []field
}
