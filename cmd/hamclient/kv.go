package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hamsterdb/hamkv/client"
	"github.com/hamsterdb/hamkv/internal/redactx"
	"github.com/hamsterdb/hamkv/wire"
)

func init() {
	rootCmd.AddCommand(insertCmd, findCmd, eraseCmd, keyCountCmd, checkIntegrityCmd, dbParamsCmd)
	findCmd.Flags().String("approx", "", "approximate match: lt, leq, geq, or gt")
}

// parseBytes turns a CLI argument into raw bytes: a 0x prefix means hex,
// anything else is taken literally.
func parseBytes(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") {
		b, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, fmt.Errorf("bad hex %q: %w", s, err)
		}
		return b, nil
	}
	return []byte(s), nil
}

// withDb opens the named database around fn.
func withDb(name uint16, fn func(*client.Session, *client.Database) error) error {
	return withSession(func(s *client.Session) error {
		db, err := s.OpenDb(name, 0, nil)
		if err != nil {
			return err
		}
		defer db.Close(0)
		return fn(s, db)
	})
}

var insertCmd = &cobra.Command{
	Use:   "insert <db> <key> <value>",
	Short: "Insert a key/record pair",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		keyBytes, err := parseBytes(args[1])
		if err != nil {
			return err
		}
		recBytes, err := parseBytes(args[2])
		if err != nil {
			return err
		}
		return withDb(name, func(s *client.Session, db *client.Database) error {
			key := client.Key{Data: keyBytes}
			record := client.Record{Data: recBytes}
			if err := db.Insert(nil, &key, &record, 0); err != nil {
				return err
			}
			fmt.Println(redactx.Bytes("inserted", key.Data).StripMarkers())
			return nil
		})
	},
}

var findCmd = &cobra.Command{
	Use:   "find <db> <key>",
	Short: "Look up a key and print its record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		keyBytes, err := parseBytes(args[1])
		if err != nil {
			return err
		}
		flags, err := approxFlag(cmd)
		if err != nil {
			return err
		}
		return withDb(name, func(s *client.Session, db *client.Database) error {
			key := client.Key{Data: keyBytes}
			var record client.Record
			if err := db.Find(nil, &key, &record, flags); err != nil {
				return err
			}
			if rel := approxRelation(key.IntFlags); rel != "" {
				fmt.Fprintf(os.Stderr, "match: %s %s\n", rel,
					redactx.Bytes("key", key.Data).StripMarkers())
			}
			os.Stdout.Write(record.Data)
			fmt.Println()
			return nil
		})
	},
}

func approxFlag(cmd *cobra.Command) (uint32, error) {
	mode, _ := cmd.Flags().GetString("approx")
	switch mode {
	case "":
		return wire.FindFlagExact, nil
	case "lt":
		return wire.FindFlagLess, nil
	case "leq":
		return wire.FindFlagLessOrEqual, nil
	case "geq":
		return wire.FindFlagGreaterOrEqual, nil
	case "gt":
		return wire.FindFlagGreater, nil
	default:
		return 0, fmt.Errorf("bad --approx %q (want lt, leq, geq, or gt)", mode)
	}
}

func approxRelation(intflags uint32) string {
	switch {
	case intflags&wire.KeyIsApproximateLT != 0:
		return "<"
	case intflags&wire.KeyIsApproximateGT != 0:
		return ">"
	case intflags&wire.KeyIsApproximateEQ != 0:
		return "="
	}
	return ""
}

var eraseCmd = &cobra.Command{
	Use:   "erase <db> <key>",
	Short: "Erase a key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		keyBytes, err := parseBytes(args[1])
		if err != nil {
			return err
		}
		return withDb(name, func(s *client.Session, db *client.Database) error {
			key := client.Key{Data: keyBytes}
			return db.Erase(nil, &key, 0)
		})
	},
}

var keyCountCmd = &cobra.Command{
	Use:   "key-count <db>",
	Short: "Print the number of keys in a database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		return withDb(name, func(s *client.Session, db *client.Database) error {
			count, err := db.GetKeyCount(nil, 0)
			if err != nil {
				return err
			}
			fmt.Println(count)
			return nil
		})
	},
}

var checkIntegrityCmd = &cobra.Command{
	Use:   "check-integrity <db>",
	Short: "Verify a database's internal consistency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		return withDb(name, func(s *client.Session, db *client.Database) error {
			if err := db.CheckIntegrity(0); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		})
	},
}

var dbParamsCmd = &cobra.Command{
	Use:   "db-params <db>",
	Short: "Fetch and print a database's parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		return withDb(name, func(s *client.Session, db *client.Database) error {
			names := []uint32{
				client.ParamFlags, client.ParamKeySize, client.ParamRecordSize,
				client.ParamKeyType, client.ParamDbName, client.ParamKeysPerPage,
			}
			params, err := db.GetParameters(names)
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Parameter", "Value"})
			table.Append([]string{"flags", fmt.Sprintf("0x%x", params.Flags)})
			table.Append([]string{"key_size", strconv.FormatUint(uint64(params.KeySize), 10)})
			table.Append([]string{"record_size", strconv.FormatUint(uint64(params.RecordSize), 10)})
			table.Append([]string{"key_type", strconv.FormatUint(uint64(params.KeyType), 10)})
			table.Append([]string{"dbname", strconv.FormatUint(uint64(params.DbName), 10)})
			table.Append([]string{"keys_per_page", strconv.FormatUint(uint64(params.KeysPerPage), 10)})
			table.Render()
			return nil
		})
	},
}
