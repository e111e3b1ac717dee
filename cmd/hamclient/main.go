// Command hamclient is a command-line client for a hamkv server: one
// subcommand per remote operation, plus an interactive browser, a stats
// probe, and a Prometheus metrics sidecar.
//
// This is the only place in the repository that logs; the library
// packages return errors.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/hamsterdb/hamkv/client"
	"github.com/hamsterdb/hamkv/wire"
)

var version = "dev"

var (
	flagURL   string
	flagPath  string
	flagCodec string
	flagDebug bool
)

var rootCmd = &cobra.Command{
	Use:           "hamclient",
	Short:         "Client for a remote hamkv environment",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "http://localhost:8080/", "server URL (HTTP transport)")
	rootCmd.PersistentFlags().StringVar(&flagPath, "path", "", "environment path on the server (required)")
	rootCmd.PersistentFlags().StringVar(&flagCodec, "codec", "fixed", "wire encoding: fixed or schema")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "dump decoded wire messages for every call")

	if err := rootCmd.Execute(); err != nil {
		log.Printf("hamclient: %v", err)
		os.Exit(1)
	}
}

// withSession connects to the environment, runs fn, and disconnects.
// Every leaf subcommand except browse funnels through here so the connect
// flags behave identically across them; browse connects from inside the
// tui package with the same --url/--path/--codec values and without the
// --debug wrapper.
func withSession(fn func(*client.Session) error) error {
	codec, ok := wire.CodecByName(flagCodec)
	if !ok {
		return &unknownCodecError{name: flagCodec}
	}

	var transport client.Transport = client.NewHTTPTransport(flagURL, nil)
	if flagDebug {
		transport = &debugTransport{next: transport}
	}

	session, err := client.Connect(flagPath, transport, codec)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Disconnect(); err != nil {
			log.Printf("hamclient: disconnect: %v", err)
		}
	}()
	return fn(session)
}

type unknownCodecError struct{ name string }

func (e *unknownCodecError) Error() string {
	return "unknown codec " + e.name + " (want fixed or schema)"
}
