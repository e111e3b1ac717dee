package client

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/hamsterdb/hamkv/wire"
)

// EngineError wraps a non-zero status returned by the server, verbatim,
// with out-parameters left untouched. Callers branch on Status, not on
// the error's string form.
type EngineError struct {
	Op     string
	Status wire.Status
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("hamkv: %s: status %d", e.Op, int32(e.Status))
}

// engineError returns nil for a success status and an *EngineError
// otherwise.
func engineError(op string, status wire.Status) error {
	if status.OK() {
		return nil
	}
	return &EngineError{Op: op, Status: status}
}

// errorKind classifies err into a short taxonomy name for the
// metrics.Errors counter's "kind" label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, wire.ErrNetwork):
		return "network"
	case errors.Is(err, wire.ErrProtocol):
		return "protocol"
	case errors.Is(err, wire.ErrResourceExhaustion):
		return "resource_exhaustion"
	case errors.Is(err, wire.ErrNotImplemented):
		return "not_implemented"
	}
	var ee *EngineError
	if errors.As(err, &ee) {
		return "engine"
	}
	return "unknown"
}
