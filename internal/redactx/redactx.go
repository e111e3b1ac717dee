// Package redactx wraps github.com/cockroachdb/redact for the free-form
// byte payloads this layer moves around: filenames, key bytes, and record
// bytes are all caller-supplied and potentially sensitive, so nothing
// outside this package formats them directly into a log line or CLI error.
// Labels and operation names are literal constants in our own code, so
// they're wrapped with redact.Safe; the caller-supplied values they
// describe are left unmarked, which is redact's default "treat as
// sensitive" behavior.
package redactx

import (
	"github.com/cockroachdb/redact"
)

// Filename marks name as a caller-supplied, potentially sensitive string
// (it can embed a path that leaks a username or a shared deployment
// layout) for a log line or CLI error.
func Filename(name string) redact.RedactableString {
	return redact.Sprintf("%s=%s", redact.Safe("filename"), name)
}

// Bytes marks a key or record payload as sensitive and truncates it for
// display; full payloads never belong in a log line.
func Bytes(label string, b []byte) redact.RedactableString {
	const maxShown = 32
	shown := b
	truncated := len(shown) > maxShown
	if truncated {
		shown = shown[:maxShown]
	}
	if truncated {
		return redact.Sprintf("%s=%x...(%d bytes)", redact.Safe(label), shown, redact.Safe(len(b)))
	}
	return redact.Sprintf("%s=%x", redact.Safe(label), shown)
}

// Status marks a numeric wire status as safe; statuses are a closed,
// non-identifying enumeration and are always fine to log verbatim.
func Status(op string, status int32) redact.RedactableString {
	return redact.Sprintf("%s: status=%d", redact.Safe(op), redact.Safe(status))
}
