package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hamsterdb/hamkv/tui"
	"github.com/hamsterdb/hamkv/wire"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse <db>",
	Short: "Interactively browse a database's keys and records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		codec, ok := wire.CodecByName(flagCodec)
		if !ok {
			return &unknownCodecError{name: flagCodec}
		}
		model := tui.New(tui.Config{
			URL:    flagURL,
			Path:   flagPath,
			Codec:  codec,
			DbName: name,
		})
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}
