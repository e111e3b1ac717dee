package wire

// Message catalog: one request/reply pair per client operation. Every
// type's fields() lists its wire shape once; EncodeSchema/DecodeSchema
// and EncodeFixed/DecodeFixed both walk it without any per-message,
// per-codec code.

// --- connect / disconnect ---

type ConnectRequest struct {
	Path string
}

func (m *ConnectRequest) Discriminator() Discriminator { return DConnectRequest }
func (m *ConnectRequest) fields() []field              { return []field{fString(&m.Path)} }

type ConnectReply struct {
	Status    Status
	EnvHandle uint64
	EnvFlags  uint32
}

func (m *ConnectReply) Discriminator() Discriminator { return DConnectReply }
func (m *ConnectReply) fields() []field {
	return []field{fStatus(&m.Status), fU64(&m.EnvHandle), fU32(&m.EnvFlags)}
}

type DisconnectRequest struct {
	EnvHandle uint64
}

func (m *DisconnectRequest) Discriminator() Discriminator { return DDisconnectRequest }
func (m *DisconnectRequest) fields() []field              { return []field{fU64(&m.EnvHandle)} }

type DisconnectReply struct {
	Status Status
}

func (m *DisconnectReply) Discriminator() Discriminator { return DDisconnectReply }
func (m *DisconnectReply) fields() []field              { return []field{fStatus(&m.Status)} }

// --- env_rename_db ---

type EnvRenameRequest struct {
	EnvHandle uint64
	OldName   string
	NewName   string
	Flags     uint32
}

func (m *EnvRenameRequest) Discriminator() Discriminator { return DEnvRenameRequest }
func (m *EnvRenameRequest) fields() []field {
	return []field{fU64(&m.EnvHandle), fString(&m.OldName), fString(&m.NewName), fU32(&m.Flags)}
}

type EnvRenameReply struct {
	Status Status
}

func (m *EnvRenameReply) Discriminator() Discriminator { return DEnvRenameReply }
func (m *EnvRenameReply) fields() []field              { return []field{fStatus(&m.Status)} }

// --- env_get_parameters ---
//
// Names lists the parameter ids the caller asked for; the reply always
// carries every slot, and the client surface (client.Session.GetParameters)
// is responsible for only trusting the ones it asked for.

type EnvGetParametersRequest struct {
	EnvHandle uint64
	Names     []uint32
}

func (m *EnvGetParametersRequest) Discriminator() Discriminator { return DEnvGetParametersRequest }
func (m *EnvGetParametersRequest) fields() []field {
	return []field{fU64(&m.EnvHandle), fU32Slice(&m.Names)}
}

type EnvGetParametersReply struct {
	Status          Status
	CacheSize       uint64
	PageSize        uint32
	MaxEnvDatabases uint32
	Flags           uint32
	Filemode        uint32
	Filename        string
}

func (m *EnvGetParametersReply) Discriminator() Discriminator { return DEnvGetParametersReply }
func (m *EnvGetParametersReply) fields() []field {
	return []field{
		fStatus(&m.Status), fU64(&m.CacheSize), fU32(&m.PageSize),
		fU32(&m.MaxEnvDatabases), fU32(&m.Flags), fU32(&m.Filemode), fString(&m.Filename),
	}
}

// --- env_get_database_names ---

type EnvGetDatabaseNamesRequest struct {
	EnvHandle uint64
}

func (m *EnvGetDatabaseNamesRequest) Discriminator() Discriminator {
	return DEnvGetDatabaseNamesRequest
}
func (m *EnvGetDatabaseNamesRequest) fields() []field { return []field{fU64(&m.EnvHandle)} }

type EnvGetDatabaseNamesReply struct {
	Status Status
	Names  []uint16
}

func (m *EnvGetDatabaseNamesReply) Discriminator() Discriminator {
	return DEnvGetDatabaseNamesReply
}
func (m *EnvGetDatabaseNamesReply) fields() []field {
	return []field{fStatus(&m.Status), fU16Slice(&m.Names)}
}

// --- env_flush ---

type EnvFlushRequest struct {
	EnvHandle uint64
	Flags     uint32
}

func (m *EnvFlushRequest) Discriminator() Discriminator { return DEnvFlushRequest }
func (m *EnvFlushRequest) fields() []field {
	return []field{fU64(&m.EnvHandle), fU32(&m.Flags)}
}

type EnvFlushReply struct {
	Status Status
}

func (m *EnvFlushReply) Discriminator() Discriminator { return DEnvFlushReply }
func (m *EnvFlushReply) fields() []field              { return []field{fStatus(&m.Status)} }

// --- env_create_db / env_open_db ---
//
// ParamNames/ParamValues are parallel slices encoding the params[] list
// (e.g. key type, key size, record-number flag) as name/value pairs.

type EnvCreateDbRequest struct {
	EnvHandle   uint64
	DbName      uint16
	Flags       uint32
	ParamNames  []uint32
	ParamValues []uint64
}

func (m *EnvCreateDbRequest) Discriminator() Discriminator { return DEnvCreateDbRequest }
func (m *EnvCreateDbRequest) fields() []field {
	return []field{
		fU64(&m.EnvHandle), fU16(&m.DbName), fU32(&m.Flags),
		fU32Slice(&m.ParamNames), fU64Slice(&m.ParamValues),
	}
}

type EnvCreateDbReply struct {
	Status   Status
	DbHandle uint64
	DbFlags  uint32
}

func (m *EnvCreateDbReply) Discriminator() Discriminator { return DEnvCreateDbReply }
func (m *EnvCreateDbReply) fields() []field {
	return []field{fStatus(&m.Status), fU64(&m.DbHandle), fU32(&m.DbFlags)}
}

type EnvOpenDbRequest struct {
	EnvHandle  uint64
	DbName     uint16
	Flags      uint32
	ParamNames []uint32
}

func (m *EnvOpenDbRequest) Discriminator() Discriminator { return DEnvOpenDbRequest }
func (m *EnvOpenDbRequest) fields() []field {
	return []field{fU64(&m.EnvHandle), fU16(&m.DbName), fU32(&m.Flags), fU32Slice(&m.ParamNames)}
}

type EnvOpenDbReply struct {
	Status   Status
	DbHandle uint64
	DbFlags  uint32
}

func (m *EnvOpenDbReply) Discriminator() Discriminator { return DEnvOpenDbReply }
func (m *EnvOpenDbReply) fields() []field {
	return []field{fStatus(&m.Status), fU64(&m.DbHandle), fU32(&m.DbFlags)}
}

// --- env_erase_db ---

type EnvEraseDbRequest struct {
	EnvHandle uint64
	DbName    uint16
	Flags     uint32
}

func (m *EnvEraseDbRequest) Discriminator() Discriminator { return DEnvEraseDbRequest }
func (m *EnvEraseDbRequest) fields() []field {
	return []field{fU64(&m.EnvHandle), fU16(&m.DbName), fU32(&m.Flags)}
}

type EnvEraseDbReply struct {
	Status Status
}

func (m *EnvEraseDbReply) Discriminator() Discriminator { return DEnvEraseDbReply }
func (m *EnvEraseDbReply) fields() []field              { return []field{fStatus(&m.Status)} }

// --- db_close ---

type DbCloseRequest struct {
	DbHandle uint64
	Flags    uint32
}

func (m *DbCloseRequest) Discriminator() Discriminator { return DDbCloseRequest }
func (m *DbCloseRequest) fields() []field {
	return []field{fU64(&m.DbHandle), fU32(&m.Flags)}
}

type DbCloseReply struct {
	Status Status
}

func (m *DbCloseReply) Discriminator() Discriminator { return DDbCloseReply }
func (m *DbCloseReply) fields() []field              { return []field{fStatus(&m.Status)} }

// --- db_get_parameters ---

type DbGetParametersRequest struct {
	DbHandle uint64
	Names    []uint32
}

func (m *DbGetParametersRequest) Discriminator() Discriminator { return DDbGetParametersRequest }
func (m *DbGetParametersRequest) fields() []field {
	return []field{fU64(&m.DbHandle), fU32Slice(&m.Names)}
}

type DbGetParametersReply struct {
	Status      Status
	Flags       uint32
	KeySize     uint16
	RecordSize  uint32
	KeyType     uint32
	DbName      uint16
	KeysPerPage uint32
}

func (m *DbGetParametersReply) Discriminator() Discriminator { return DDbGetParametersReply }
func (m *DbGetParametersReply) fields() []field {
	return []field{
		fStatus(&m.Status), fU32(&m.Flags), fU16(&m.KeySize), fU32(&m.RecordSize),
		fU32(&m.KeyType), fU16(&m.DbName), fU32(&m.KeysPerPage),
	}
}

// --- txn_begin / commit / abort ---

type TxnBeginRequest struct {
	EnvHandle uint64
	Name      string
	Flags     uint32
}

func (m *TxnBeginRequest) Discriminator() Discriminator { return DTxnBeginRequest }
func (m *TxnBeginRequest) fields() []field {
	return []field{fU64(&m.EnvHandle), fString(&m.Name), fU32(&m.Flags)}
}

type TxnBeginReply struct {
	Status    Status
	TxnHandle uint64
}

func (m *TxnBeginReply) Discriminator() Discriminator { return DTxnBeginReply }
func (m *TxnBeginReply) fields() []field {
	return []field{fStatus(&m.Status), fU64(&m.TxnHandle)}
}

type TxnCommitRequest struct {
	TxnHandle uint64
	Flags     uint32
}

func (m *TxnCommitRequest) Discriminator() Discriminator { return DTxnCommitRequest }
func (m *TxnCommitRequest) fields() []field {
	return []field{fU64(&m.TxnHandle), fU32(&m.Flags)}
}

type TxnCommitReply struct {
	Status Status
}

func (m *TxnCommitReply) Discriminator() Discriminator { return DTxnCommitReply }
func (m *TxnCommitReply) fields() []field              { return []field{fStatus(&m.Status)} }

type TxnAbortRequest struct {
	TxnHandle uint64
	Flags     uint32
}

func (m *TxnAbortRequest) Discriminator() Discriminator { return DTxnAbortRequest }
func (m *TxnAbortRequest) fields() []field {
	return []field{fU64(&m.TxnHandle), fU32(&m.Flags)}
}

type TxnAbortReply struct {
	Status Status
}

func (m *TxnAbortReply) Discriminator() Discriminator { return DTxnAbortReply }
func (m *TxnAbortReply) fields() []field              { return []field{fStatus(&m.Status)} }

// --- db_check_integrity / db_get_key_count ---

type DbCheckIntegrityRequest struct {
	DbHandle uint64
	Flags    uint32
}

func (m *DbCheckIntegrityRequest) Discriminator() Discriminator { return DDbCheckIntegrityRequest }
func (m *DbCheckIntegrityRequest) fields() []field {
	return []field{fU64(&m.DbHandle), fU32(&m.Flags)}
}

type DbCheckIntegrityReply struct {
	Status Status
}

func (m *DbCheckIntegrityReply) Discriminator() Discriminator { return DDbCheckIntegrityReply }
func (m *DbCheckIntegrityReply) fields() []field              { return []field{fStatus(&m.Status)} }

type DbGetKeyCountRequest struct {
	DbHandle  uint64
	TxnHandle uint64
	Flags     uint32
}

func (m *DbGetKeyCountRequest) Discriminator() Discriminator { return DDbGetKeyCountRequest }
func (m *DbGetKeyCountRequest) fields() []field {
	return []field{fU64(&m.DbHandle), fU64(&m.TxnHandle), fU32(&m.Flags)}
}

type DbGetKeyCountReply struct {
	Status Status
	Count  uint64
}

func (m *DbGetKeyCountReply) Discriminator() Discriminator { return DDbGetKeyCountReply }
func (m *DbGetKeyCountReply) fields() []field {
	return []field{fStatus(&m.Status), fU64(&m.Count)}
}

// --- db_insert / db_erase / db_find ---

type DbInsertRequest struct {
	DbHandle  uint64
	TxnHandle uint64
	Key       Key
	Record    Record
	Flags     uint32
}

func (m *DbInsertRequest) Discriminator() Discriminator { return DDbInsertRequest }
func (m *DbInsertRequest) fields() []field {
	return []field{
		fU64(&m.DbHandle), fU64(&m.TxnHandle), fKey(&m.Key), fRecord(&m.Record), fU32(&m.Flags),
	}
}

// DbInsertReply carries Key back for record-number databases: when the
// database auto-generates keys, the reply's key.Data is the 8-byte
// generated key the caller must copy into its own buffer.
type DbInsertReply struct {
	Status Status
	Key    Key
}

func (m *DbInsertReply) Discriminator() Discriminator { return DDbInsertReply }
func (m *DbInsertReply) fields() []field {
	return []field{fStatus(&m.Status), fKey(&m.Key)}
}

type DbEraseRequest struct {
	DbHandle  uint64
	TxnHandle uint64
	Key       Key
	Flags     uint32
}

func (m *DbEraseRequest) Discriminator() Discriminator { return DDbEraseRequest }
func (m *DbEraseRequest) fields() []field {
	return []field{fU64(&m.DbHandle), fU64(&m.TxnHandle), fKey(&m.Key), fU32(&m.Flags)}
}

type DbEraseReply struct {
	Status Status
}

func (m *DbEraseReply) Discriminator() Discriminator { return DDbEraseReply }
func (m *DbEraseReply) fields() []field              { return []field{fStatus(&m.Status)} }

type DbFindRequest struct {
	DbHandle  uint64
	TxnHandle uint64
	Key       Key
	Record    Record
	Flags     uint32
}

func (m *DbFindRequest) Discriminator() Discriminator { return DDbFindRequest }
func (m *DbFindRequest) fields() []field {
	return []field{
		fU64(&m.DbHandle), fU64(&m.TxnHandle), fKey(&m.Key), fRecord(&m.Record), fU32(&m.Flags),
	}
}

type DbFindReply struct {
	Status Status
	Key    Key
	Record Record
}

func (m *DbFindReply) Discriminator() Discriminator { return DDbFindReply }
func (m *DbFindReply) fields() []field {
	return []field{fStatus(&m.Status), fKey(&m.Key), fRecord(&m.Record)}
}

// --- cursor_create / clone / close ---

type CursorCreateRequest struct {
	DbHandle  uint64
	TxnHandle uint64
	Flags     uint32
}

func (m *CursorCreateRequest) Discriminator() Discriminator { return DCursorCreateRequest }
func (m *CursorCreateRequest) fields() []field {
	return []field{fU64(&m.DbHandle), fU64(&m.TxnHandle), fU32(&m.Flags)}
}

type CursorCreateReply struct {
	Status       Status
	CursorHandle uint64
}

func (m *CursorCreateReply) Discriminator() Discriminator { return DCursorCreateReply }
func (m *CursorCreateReply) fields() []field {
	return []field{fStatus(&m.Status), fU64(&m.CursorHandle)}
}

type CursorCloneRequest struct {
	CursorHandle uint64
}

func (m *CursorCloneRequest) Discriminator() Discriminator { return DCursorCloneRequest }
func (m *CursorCloneRequest) fields() []field              { return []field{fU64(&m.CursorHandle)} }

type CursorCloneReply struct {
	Status       Status
	CursorHandle uint64
}

func (m *CursorCloneReply) Discriminator() Discriminator { return DCursorCloneReply }
func (m *CursorCloneReply) fields() []field {
	return []field{fStatus(&m.Status), fU64(&m.CursorHandle)}
}

type CursorCloseRequest struct {
	CursorHandle uint64
}

func (m *CursorCloseRequest) Discriminator() Discriminator { return DCursorCloseRequest }
func (m *CursorCloseRequest) fields() []field              { return []field{fU64(&m.CursorHandle)} }

type CursorCloseReply struct {
	Status Status
}

func (m *CursorCloseReply) Discriminator() Discriminator { return DCursorCloseReply }
func (m *CursorCloseReply) fields() []field              { return []field{fStatus(&m.Status)} }

// --- cursor_insert / erase / find ---

type CursorInsertRequest struct {
	CursorHandle uint64
	Key          Key
	Record       Record
	Flags        uint32
}

func (m *CursorInsertRequest) Discriminator() Discriminator { return DCursorInsertRequest }
func (m *CursorInsertRequest) fields() []field {
	return []field{fU64(&m.CursorHandle), fKey(&m.Key), fRecord(&m.Record), fU32(&m.Flags)}
}

type CursorInsertReply struct {
	Status Status
	Key    Key
}

func (m *CursorInsertReply) Discriminator() Discriminator { return DCursorInsertReply }
func (m *CursorInsertReply) fields() []field {
	return []field{fStatus(&m.Status), fKey(&m.Key)}
}

type CursorEraseRequest struct {
	CursorHandle uint64
	Flags        uint32
}

func (m *CursorEraseRequest) Discriminator() Discriminator { return DCursorEraseRequest }
func (m *CursorEraseRequest) fields() []field {
	return []field{fU64(&m.CursorHandle), fU32(&m.Flags)}
}

type CursorEraseReply struct {
	Status Status
}

func (m *CursorEraseReply) Discriminator() Discriminator { return DCursorEraseReply }
func (m *CursorEraseReply) fields() []field              { return []field{fStatus(&m.Status)} }

type CursorFindRequest struct {
	CursorHandle uint64
	Key          Key
	Record       Record
	Flags        uint32
}

func (m *CursorFindRequest) Discriminator() Discriminator { return DCursorFindRequest }
func (m *CursorFindRequest) fields() []field {
	return []field{fU64(&m.CursorHandle), fKey(&m.Key), fRecord(&m.Record), fU32(&m.Flags)}
}

type CursorFindReply struct {
	Status Status
	Key    Key
	Record Record
}

func (m *CursorFindReply) Discriminator() Discriminator { return DCursorFindReply }
func (m *CursorFindReply) fields() []field {
	return []field{fStatus(&m.Status), fKey(&m.Key), fRecord(&m.Record)}
}

// --- cursor_get_record_count / overwrite / move ---

type CursorGetRecordCountRequest struct {
	CursorHandle uint64
	Flags        uint32
}

func (m *CursorGetRecordCountRequest) Discriminator() Discriminator {
	return DCursorGetRecordCountRequest
}
func (m *CursorGetRecordCountRequest) fields() []field {
	return []field{fU64(&m.CursorHandle), fU32(&m.Flags)}
}

type CursorGetRecordCountReply struct {
	Status Status
	Count  uint32
}

func (m *CursorGetRecordCountReply) Discriminator() Discriminator {
	return DCursorGetRecordCountReply
}
func (m *CursorGetRecordCountReply) fields() []field {
	return []field{fStatus(&m.Status), fU32(&m.Count)}
}

type CursorOverwriteRequest struct {
	CursorHandle uint64
	Record       Record
	Flags        uint32
}

func (m *CursorOverwriteRequest) Discriminator() Discriminator { return DCursorOverwriteRequest }
func (m *CursorOverwriteRequest) fields() []field {
	return []field{fU64(&m.CursorHandle), fRecord(&m.Record), fU32(&m.Flags)}
}

// CursorOverwriteReply is the type whose C++ fixed-codec deserialize
// mistakenly called serialize on its embedded status field. Nothing here
// special-cases that: the generic field-walking decoder in fixed.go
// always calls the decode path, so the bug has no foothold to reappear
// in. TestFixedDecodeCursorOverwriteReply pins this down.
type CursorOverwriteReply struct {
	Status Status
}

func (m *CursorOverwriteReply) Discriminator() Discriminator { return DCursorOverwriteReply }
func (m *CursorOverwriteReply) fields() []field              { return []field{fStatus(&m.Status)} }

type CursorMoveRequest struct {
	CursorHandle uint64
	Key          Key
	Record       Record
	Flags        uint32
}

func (m *CursorMoveRequest) Discriminator() Discriminator { return DCursorMoveRequest }
func (m *CursorMoveRequest) fields() []field {
	return []field{fU64(&m.CursorHandle), fKey(&m.Key), fRecord(&m.Record), fU32(&m.Flags)}
}

type CursorMoveReply struct {
	Status Status
	Key    Key
	Record Record
}

func (m *CursorMoveReply) Discriminator() Discriminator { return DCursorMoveReply }
func (m *CursorMoveReply) fields() []field {
	return []field{fStatus(&m.Status), fKey(&m.Key), fRecord(&m.Record)}
}

// NewReplyFor constructs the zero-valued reply message matching a
// request's discriminator, one step past it in the iota sequence. A
// receiver that routes frames generically (a server loop, a proxy) uses
// this to allocate the right type before decoding.
func NewReplyFor(disc Discriminator) (Message, bool) {
	switch disc {
	case DConnectRequest:
		return &ConnectReply{}, true
	case DDisconnectRequest:
		return &DisconnectReply{}, true
	case DEnvRenameRequest:
		return &EnvRenameReply{}, true
	case DEnvGetParametersRequest:
		return &EnvGetParametersReply{}, true
	case DEnvGetDatabaseNamesRequest:
		return &EnvGetDatabaseNamesReply{}, true
	case DEnvFlushRequest:
		return &EnvFlushReply{}, true
	case DEnvCreateDbRequest:
		return &EnvCreateDbReply{}, true
	case DEnvOpenDbRequest:
		return &EnvOpenDbReply{}, true
	case DEnvEraseDbRequest:
		return &EnvEraseDbReply{}, true
	case DDbCloseRequest:
		return &DbCloseReply{}, true
	case DDbGetParametersRequest:
		return &DbGetParametersReply{}, true
	case DTxnBeginRequest:
		return &TxnBeginReply{}, true
	case DTxnCommitRequest:
		return &TxnCommitReply{}, true
	case DTxnAbortRequest:
		return &TxnAbortReply{}, true
	case DDbCheckIntegrityRequest:
		return &DbCheckIntegrityReply{}, true
	case DDbGetKeyCountRequest:
		return &DbGetKeyCountReply{}, true
	case DDbInsertRequest:
		return &DbInsertReply{}, true
	case DDbEraseRequest:
		return &DbEraseReply{}, true
	case DDbFindRequest:
		return &DbFindReply{}, true
	case DCursorCreateRequest:
		return &CursorCreateReply{}, true
	case DCursorCloneRequest:
		return &CursorCloneReply{}, true
	case DCursorCloseRequest:
		return &CursorCloseReply{}, true
	case DCursorInsertRequest:
		return &CursorInsertReply{}, true
	case DCursorEraseRequest:
		return &CursorEraseReply{}, true
	case DCursorFindRequest:
		return &CursorFindReply{}, true
	case DCursorGetRecordCountRequest:
		return &CursorGetRecordCountReply{}, true
	case DCursorOverwriteRequest:
		return &CursorOverwriteReply{}, true
	case DCursorMoveRequest:
		return &CursorMoveReply{}, true
	default:
		return nil, false
	}
}
