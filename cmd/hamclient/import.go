package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hamsterdb/hamkv/client"
)

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().Bool("dry-run", false, "abort the transaction instead of committing")
	importCmd.Flags().String("txn-name", "", "transaction name (generated when empty)")
}

// importCmd bulk-loads tab-separated key/value lines from stdin inside a
// single transaction, so a half-read input never leaves a partial load
// behind.
var importCmd = &cobra.Command{
	Use:   "import <db>",
	Short: "Bulk-insert key<TAB>value lines from stdin in one transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		txnName, _ := cmd.Flags().GetString("txn-name")

		return withDb(name, func(s *client.Session, db *client.Database) error {
			txn, err := s.Begin(txnName, 0)
			if err != nil {
				return err
			}

			var n int
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := scanner.Text()
				if line == "" {
					continue
				}
				k, v, found := strings.Cut(line, "\t")
				if !found {
					_ = txn.Abort(0)
					return fmt.Errorf("line %d: missing tab separator", n+1)
				}
				keyBytes, err := parseBytes(k)
				if err != nil {
					_ = txn.Abort(0)
					return err
				}
				recBytes, err := parseBytes(v)
				if err != nil {
					_ = txn.Abort(0)
					return err
				}
				key := client.Key{Data: keyBytes}
				record := client.Record{Data: recBytes}
				if err := db.Insert(txn, &key, &record, 0); err != nil {
					_ = txn.Abort(0)
					return err
				}
				n++
			}
			if err := scanner.Err(); err != nil {
				_ = txn.Abort(0)
				return err
			}

			if dryRun {
				if err := txn.Abort(0); err != nil {
					return err
				}
				fmt.Printf("dry run: %d rows checked, transaction aborted\n", n)
				return nil
			}
			if err := txn.Commit(0); err != nil {
				return err
			}
			fmt.Printf("imported %d rows\n", n)
			return nil
		})
	},
}
