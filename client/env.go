package client

import "github.com/hamsterdb/hamkv/wire"

// Environment/database parameter ids for *GetParameters. Only fields
// requested by id are guaranteed present in the result.
const (
	ParamCacheSize       uint32 = 1
	ParamPageSize        uint32 = 2
	ParamMaxEnvDatabases uint32 = 3
	ParamFlags           uint32 = 4
	ParamFilemode        uint32 = 5
	ParamFilename        uint32 = 6

	ParamKeySize     uint32 = 7
	ParamRecordSize  uint32 = 8
	ParamKeyType     uint32 = 9
	ParamDbName      uint32 = 10
	ParamKeysPerPage uint32 = 11

	// ParamKeyTypeRecordNumber, passed in CreateDb's params, marks the new
	// database as auto-assigning 64-bit keys.
	ParamKeyTypeRecordNumber uint32 = 0x7a
)

// EnvParameters is the subset of environment parameters the caller asked
// for by id; fields not requested hold whatever the reply carried in that
// slot and should not be trusted (the wire reply always carries every
// slot, but only requested fields are guaranteed present).
type EnvParameters struct {
	CacheSize       uint64
	PageSize        uint32
	MaxEnvDatabases uint32
	Flags           uint32
	Filemode        uint32
	Filename        string
}

// GetParameters fetches the environment parameters named in names.
func (s *Session) GetParameters(names []uint32) (EnvParameters, error) {
	remote, ok := s.remoteEnv()
	if !ok {
		return EnvParameters{}, wire.ProtocolErrorf("env_get_parameters: session not connected")
	}
	req := &wire.EnvGetParametersRequest{EnvHandle: remote, Names: names}
	reply := &wire.EnvGetParametersReply{}
	if err := s.call("env_get_parameters", req, reply); err != nil {
		return EnvParameters{}, err
	}
	if err := engineError("env_get_parameters", reply.Status); err != nil {
		return EnvParameters{}, err
	}
	return EnvParameters{
		CacheSize:       reply.CacheSize,
		PageSize:        reply.PageSize,
		MaxEnvDatabases: reply.MaxEnvDatabases,
		Flags:           reply.Flags,
		Filemode:        reply.Filemode,
		Filename:        reply.Filename,
	}, nil
}

// GetDatabaseNames returns the ordered sequence of database ids currently
// open in the environment (may be empty).
func (s *Session) GetDatabaseNames() ([]uint16, error) {
	remote, ok := s.remoteEnv()
	if !ok {
		return nil, wire.ProtocolErrorf("env_get_database_names: session not connected")
	}
	req := &wire.EnvGetDatabaseNamesRequest{EnvHandle: remote}
	reply := &wire.EnvGetDatabaseNamesReply{}
	if err := s.call("env_get_database_names", req, reply); err != nil {
		return nil, err
	}
	if err := engineError("env_get_database_names", reply.Status); err != nil {
		return nil, err
	}
	return reply.Names, nil
}

// RenameDb renames a database within the environment.
func (s *Session) RenameDb(oldName, newName string, flags uint32) error {
	remote, ok := s.remoteEnv()
	if !ok {
		return wire.ProtocolErrorf("env_rename_db: session not connected")
	}
	req := &wire.EnvRenameRequest{EnvHandle: remote, OldName: oldName, NewName: newName, Flags: flags}
	reply := &wire.EnvRenameReply{}
	if err := s.call("env_rename_db", req, reply); err != nil {
		return err
	}
	return engineError("env_rename_db", reply.Status)
}

// Flush flushes the environment's cache and header to durable storage.
func (s *Session) Flush(flags uint32) error {
	remote, ok := s.remoteEnv()
	if !ok {
		return wire.ProtocolErrorf("env_flush: session not connected")
	}
	req := &wire.EnvFlushRequest{EnvHandle: remote, Flags: flags}
	reply := &wire.EnvFlushReply{}
	if err := s.call("env_flush", req, reply); err != nil {
		return err
	}
	return engineError("env_flush", reply.Status)
}

// CreateParam is one (name, value) pair of the params[] list accepted by
// CreateDb/OpenDb (e.g. key type, key size, the record-number marker).
type CreateParam struct {
	Name  uint32
	Value uint64
}

// CreateDb creates and opens a new database named dbname. A param whose
// Name is ParamKeyTypeRecordNumber marks the database as auto-assigning
// keys, which Insert/CursorInsert honor automatically.
func (s *Session) CreateDb(dbname uint16, flags uint32, params []CreateParam) (*Database, error) {
	remote, ok := s.remoteEnv()
	if !ok {
		return nil, wire.ProtocolErrorf("env_create_db: session not connected")
	}
	names, values := splitParams(params)
	req := &wire.EnvCreateDbRequest{EnvHandle: remote, DbName: dbname, Flags: flags, ParamNames: names, ParamValues: values}
	reply := &wire.EnvCreateDbReply{}
	if err := s.call("env_create_db", req, reply); err != nil {
		return nil, err
	}
	if err := engineError("env_create_db", reply.Status); err != nil {
		return nil, err
	}
	return s.newDatabase(reply.DbHandle, reply.DbFlags, hasRecordNumberParam(params)), nil
}

// OpenDb opens an existing database named dbname.
func (s *Session) OpenDb(dbname uint16, flags uint32, paramNames []uint32) (*Database, error) {
	remote, ok := s.remoteEnv()
	if !ok {
		return nil, wire.ProtocolErrorf("env_open_db: session not connected")
	}
	req := &wire.EnvOpenDbRequest{EnvHandle: remote, DbName: dbname, Flags: flags, ParamNames: paramNames}
	reply := &wire.EnvOpenDbReply{}
	if err := s.call("env_open_db", req, reply); err != nil {
		return nil, err
	}
	if err := engineError("env_open_db", reply.Status); err != nil {
		return nil, err
	}
	return s.newDatabase(reply.DbHandle, reply.DbFlags, reply.DbFlags&wire.KeyRecordNumber != 0), nil
}

// EraseDb erases a database from the environment. The database must not
// be open.
func (s *Session) EraseDb(dbname uint16, flags uint32) error {
	remote, ok := s.remoteEnv()
	if !ok {
		return wire.ProtocolErrorf("env_erase_db: session not connected")
	}
	req := &wire.EnvEraseDbRequest{EnvHandle: remote, DbName: dbname, Flags: flags}
	reply := &wire.EnvEraseDbReply{}
	if err := s.call("env_erase_db", req, reply); err != nil {
		return err
	}
	return engineError("env_erase_db", reply.Status)
}

func splitParams(params []CreateParam) ([]uint32, []uint64) {
	names := make([]uint32, len(params))
	values := make([]uint64, len(params))
	for i, p := range params {
		names[i] = p.Name
		values[i] = p.Value
	}
	return names, values
}

func hasRecordNumberParam(params []CreateParam) bool {
	for _, p := range params {
		if p.Name == ParamKeyTypeRecordNumber && p.Value != 0 {
			return true
		}
	}
	return false
}
