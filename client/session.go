// Package client implements the remote-access protocol's client side:
// handle management, per-scope memory arenas, and the full operation
// surface over environments, databases, transactions, and cursors.
package client

import (
	"sync"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/google/uuid"

	"github.com/hamsterdb/hamkv/handle"
	"github.com/hamsterdb/hamkv/metrics"
	"github.com/hamsterdb/hamkv/wire"
)

// maxLatencyMicros bounds the round-trip latency histogram at ten
// seconds; a call slower than that records as its own out-of-range error,
// which is advisory and never fails the call.
const maxLatencyMicros = 10 * 1_000_000

// Session is a single client connection to one environment. Every public
// method on Session and on the Database/Txn/Cursor handles it hands out
// serializes through Session's own mutex, so each operation has exactly
// one suspension point: the transport round-trip.
type Session struct {
	mu sync.Mutex

	transport Transport
	codec     wire.Codec
	handles   *handle.Table
	metrics   *metrics.Metrics
	latency   *hdrhistogram.Histogram

	// tag is a client-side diagnostic label, never sent on the wire.
	tag string

	envID    handle.ID
	envFlags uint32
}

// Connect opens an environment at path over transport using codec. The
// codec choice is a one-time, whole-session decision; there is no way to
// switch encodings mid-session.
func Connect(path string, transport Transport, codec wire.Codec) (*Session, error) {
	s := &Session{
		transport: transport,
		codec:     codec,
		handles:   handle.New(),
		metrics:   metrics.New(),
		latency:   hdrhistogram.New(1, maxLatencyMicros, 3),
		tag:       uuid.NewString(),
	}

	reply := &wire.ConnectReply{}
	if err := s.call("env_connect", &wire.ConnectRequest{Path: path}, reply); err != nil {
		return nil, err
	}
	if err := engineError("env_connect", reply.Status); err != nil {
		return nil, err
	}
	s.envID = s.handles.Put(reply.EnvHandle, 0, handle.KindEnv)
	s.envFlags = reply.EnvFlags
	return s, nil
}

// Tag returns the session's client-side diagnostic label.
func (s *Session) Tag() string { return s.tag }

// CodecName returns the name of the wire encoding this session committed
// to at Connect time.
func (s *Session) CodecName() string { return s.codec.Name() }

// Metrics returns the session's Prometheus collectors.
func (s *Session) Metrics() *metrics.Metrics { return s.metrics }

// LatencyHistogram returns the session's round-trip latency histogram, in
// microseconds.
func (s *Session) LatencyHistogram() *hdrhistogram.Histogram { return s.latency }

// Handles returns the number of handles currently tracked by the session,
// for diagnostics and the tui status line.
func (s *Session) Handles() int { return s.handles.Len() }

// call performs one request/reply round trip under the session mutex,
// recording latency and per-operation metrics regardless of outcome.
func (s *Session) call(op string, req, reply wire.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Calls.WithLabelValues(op).Inc()
	start := time.Now()
	err := s.transport.RoundTrip(s.codec, req, reply)
	elapsed := time.Since(start).Microseconds()
	if elapsed < 1 {
		elapsed = 1
	}
	_ = s.latency.RecordValue(elapsed)

	if err != nil {
		s.metrics.Errors.WithLabelValues(op, errorKind(err)).Inc()
	}
	return err
}

// remoteEnv returns the environment's server-issued handle, failing if
// Disconnect already closed it.
func (s *Session) remoteEnv() (uint64, bool) {
	return s.handles.Remote(s.envID)
}

// Disconnect closes the environment and every database/transaction/
// cursor handle opened under it.
func (s *Session) Disconnect() error {
	remote, ok := s.remoteEnv()
	if !ok {
		return nil
	}

	reply := &wire.DisconnectReply{}
	if err := s.call("env_disconnect", &wire.DisconnectRequest{EnvHandle: remote}, reply); err != nil {
		return err
	}
	if err := engineError("env_disconnect", reply.Status); err != nil {
		return err
	}
	s.handles.Close(s.envID)
	return s.transport.Close()
}
