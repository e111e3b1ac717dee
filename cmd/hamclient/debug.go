package main

import (
	"fmt"
	"os"

	"github.com/kr/pretty"

	"github.com/hamsterdb/hamkv/client"
	"github.com/hamsterdb/hamkv/wire"
)

// debugTransport wraps another Transport and pretty-prints every decoded
// request and reply to stderr, for protocol debugging. Payload bytes show
// up verbatim, so this is strictly a development flag.
type debugTransport struct {
	next client.Transport
}

func (t *debugTransport) RoundTrip(codec wire.Codec, req, reply wire.Message) error {
	fmt.Fprintf(os.Stderr, ">> [%s] %# v\n", codec.Name(), pretty.Formatter(req))
	err := t.next.RoundTrip(codec, req, reply)
	if err != nil {
		fmt.Fprintf(os.Stderr, "!! %v\n", err)
		return err
	}
	fmt.Fprintf(os.Stderr, "<< [%s] %# v\n", codec.Name(), pretty.Formatter(reply))
	return nil
}

func (t *debugTransport) Close() error {
	return t.next.Close()
}
