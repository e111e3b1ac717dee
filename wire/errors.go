// Package wire implements the two binary encodings of the remote-access
// protocol ("schema" and "fixed") and the framing that carries them.
package wire

import (
	"github.com/cockroachdb/errors"
)

// Error kinds. These are marked onto the errors returned by this package
// and by client.Session so callers can branch on errors.Is without
// caring which encoding or transport produced them.
var (
	// ErrNetwork marks a transport failure: connection refused, truncated
	// read, or a non-success transport status. The session's handle
	// remains valid; the call itself had no effect.
	ErrNetwork = errors.New("wire: network error")

	// ErrProtocol marks a magic mismatch, unknown discriminator, size
	// disagreement, or missing required field. The session should be
	// closed after this.
	ErrProtocol = errors.New("wire: protocol error")

	// ErrResourceExhaustion marks an arena or allocation failure. Fatal to
	// the call, not to the session.
	ErrResourceExhaustion = errors.New("wire: resource exhaustion")

	// ErrNotImplemented marks an operation the wire layer never sends
	// (e.g. cursor_get_record_size); callers must handle it without a
	// round trip.
	ErrNotImplemented = errors.New("wire: not implemented")
)

// NetworkError wraps cause with ErrNetwork, annotating it with op.
func NetworkError(op string, cause error) error {
	return errors.Mark(errors.Wrapf(cause, "wire: %s", op), ErrNetwork)
}

// ProtocolErrorf marks and formats a protocol-level failure.
func ProtocolErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("wire: "+format, args...), ErrProtocol)
}

// ResourceExhaustionf marks and formats an arena/allocation failure.
func ResourceExhaustionf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("wire: "+format, args...), ErrResourceExhaustion)
}
