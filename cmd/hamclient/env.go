package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hamsterdb/hamkv/client"
)

func init() {
	rootCmd.AddCommand(envParamsCmd, dbNamesCmd, flushCmd, renameDbCmd, eraseDbCmd, createDbCmd)
	createDbCmd.Flags().Bool("record-number", false, "create a record-number database (server-assigned 64-bit keys)")
}

var envParamsCmd = &cobra.Command{
	Use:   "env-params",
	Short: "Fetch and print the environment's parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *client.Session) error {
			names := []uint32{
				client.ParamCacheSize, client.ParamPageSize, client.ParamMaxEnvDatabases,
				client.ParamFlags, client.ParamFilemode, client.ParamFilename,
			}
			params, err := s.GetParameters(names)
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Parameter", "Value"})
			table.Append([]string{"cache_size", strconv.FormatUint(params.CacheSize, 10)})
			table.Append([]string{"page_size", strconv.FormatUint(uint64(params.PageSize), 10)})
			table.Append([]string{"max_env_databases", strconv.FormatUint(uint64(params.MaxEnvDatabases), 10)})
			table.Append([]string{"flags", fmt.Sprintf("0x%x", params.Flags)})
			table.Append([]string{"filemode", fmt.Sprintf("0%o", params.Filemode)})
			table.Append([]string{"filename", params.Filename})
			table.Render()
			return nil
		})
	},
}

var dbNamesCmd = &cobra.Command{
	Use:   "db-names",
	Short: "List the databases in the environment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *client.Session) error {
			names, err := s.GetDatabaseNames()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		})
	},
}

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Flush the environment to durable storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *client.Session) error {
			return s.Flush(0)
		})
	},
}

var renameDbCmd = &cobra.Command{
	Use:   "rename-db <old> <new>",
	Short: "Rename a database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *client.Session) error {
			return s.RenameDb(args[0], args[1], 0)
		})
	},
}

var eraseDbCmd = &cobra.Command{
	Use:   "erase-db <name>",
	Short: "Erase a database from the environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		return withSession(func(s *client.Session) error {
			return s.EraseDb(name, 0)
		})
	},
}

var createDbCmd = &cobra.Command{
	Use:   "create-db <name>",
	Short: "Create a new database in the environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		recordNumber, _ := cmd.Flags().GetBool("record-number")
		return withSession(func(s *client.Session) error {
			var params []client.CreateParam
			if recordNumber {
				params = append(params, client.CreateParam{Name: client.ParamKeyTypeRecordNumber, Value: 1})
			}
			db, err := s.CreateDb(name, 0, params)
			if err != nil {
				return err
			}
			return db.Close(0)
		})
	},
}

func parseDbName(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("bad database name %q: %w", s, err)
	}
	return uint16(n), nil
}
