package client

import (
	"bytes"
	"io"
	"net/http"

	"github.com/hamsterdb/hamkv/wire"
)

// Transport carries one request/reply pair over a reliable, ordered,
// connection-oriented channel: HTTP PUT/response, a TCP stream, or any
// equivalent. Session.call serializes every RoundTrip behind its own
// mutex, so implementations don't need to be safe for concurrent use.
type Transport interface {
	RoundTrip(codec wire.Codec, req, reply wire.Message) error
	Close() error
}

// StreamTransport implements Transport over any reliable duplex byte
// stream (a TCP connection, a pipe, anything satisfying io.ReadWriteCloser)
// by writing one frame and reading exactly one back.
type StreamTransport struct {
	rw io.ReadWriteCloser
}

// NewStreamTransport wraps rw as a Transport.
func NewStreamTransport(rw io.ReadWriteCloser) *StreamTransport {
	return &StreamTransport{rw: rw}
}

func (t *StreamTransport) RoundTrip(codec wire.Codec, req, reply wire.Message) error {
	if err := codec.WriteFrame(t.rw, req); err != nil {
		return err
	}
	disc, body, err := codec.ReadFrameRaw(t.rw)
	if err != nil {
		return err
	}
	if disc != reply.Discriminator() {
		return wire.ProtocolErrorf("reply discriminator mismatch: got %d want %d", disc, reply.Discriminator())
	}
	return codec.Decode(body, reply)
}

func (t *StreamTransport) Close() error {
	return t.rw.Close()
}

// HTTPTransport implements Transport as the legacy HTTP PUT/response
// carrier: each call is one PUT whose body is the request frame, whose
// response body is the reply frame.
type HTTPTransport struct {
	url    string
	client *http.Client
}

// NewHTTPTransport returns a Transport that PUTs each call's request
// frame to url and decodes the reply frame from the response body. A nil
// httpClient uses http.DefaultClient.
func NewHTTPTransport(url string, httpClient *http.Client) *HTTPTransport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPTransport{url: url, client: httpClient}
}

func (t *HTTPTransport) RoundTrip(codec wire.Codec, req, reply wire.Message) error {
	var buf bytes.Buffer
	if err := codec.WriteFrame(&buf, req); err != nil {
		return err
	}

	httpReq, err := http.NewRequest(http.MethodPut, t.url, &buf)
	if err != nil {
		return wire.NetworkError("build http request", err)
	}
	httpReq.Header.Set("Content-Type", "application/octet-stream")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return wire.NetworkError("http round trip", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return wire.NetworkError("http round trip", errHTTPStatus(resp.StatusCode))
	}

	disc, body, err := codec.ReadFrameRaw(resp.Body)
	if err != nil {
		return err
	}
	if disc != reply.Discriminator() {
		return wire.ProtocolErrorf("reply discriminator mismatch: got %d want %d", disc, reply.Discriminator())
	}
	return codec.Decode(body, reply)
}

func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

type errHTTPStatus int

func (e errHTTPStatus) Error() string {
	return http.StatusText(int(e)) + ": non-success HTTP status"
}
