package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hamsterdb/hamkv/client"
	"github.com/hamsterdb/hamkv/wire"
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Int("probes", 5, "number of page-capacity probes")
}

// statsCmd runs a read probe against one database: a full cursor scan to
// exercise the session, plus a handful of parameter probes to feed the
// hint core's page-capacity window, then prints the capacity sparkline
// and the session's latency distribution.
var statsCmd = &cobra.Command{
	Use:   "stats <db>",
	Short: "Probe a database and print capacity and latency statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		probes, _ := cmd.Flags().GetInt("probes")
		return withDb(name, func(s *client.Session, db *client.Database) error {
			for i := 0; i < probes; i++ {
				params, err := db.GetParameters([]uint32{client.ParamKeysPerPage})
				if err != nil {
					return err
				}
				db.Stats().SetPageCapacity(params.KeysPerPage)
			}

			keys, err := scanCount(db)
			if err != nil {
				return err
			}

			if samples := db.Stats().CapacitySamples(); len(samples) > 0 {
				series := make([]float64, len(samples))
				for i, c := range samples {
					series[i] = float64(c)
				}
				fmt.Println(asciigraph.Plot(series,
					asciigraph.Height(5),
					asciigraph.Caption("keys per page (moving window)")))
				fmt.Println()
			}

			hist := s.LatencyHistogram()
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Statistic", "Value"})
			table.Append([]string{"keys", strconv.FormatUint(keys, 10)})
			table.Append([]string{"default page capacity", strconv.FormatUint(uint64(db.Stats().DefaultPageCapacity()), 10)})
			table.Append([]string{"calls", strconv.FormatInt(hist.TotalCount(), 10)})
			table.Append([]string{"latency p50 (µs)", strconv.FormatInt(hist.ValueAtQuantile(50), 10)})
			table.Append([]string{"latency p90 (µs)", strconv.FormatInt(hist.ValueAtQuantile(90), 10)})
			table.Append([]string{"latency p99 (µs)", strconv.FormatInt(hist.ValueAtQuantile(99), 10)})
			table.Append([]string{"latency max (µs)", strconv.FormatInt(hist.Max(), 10)})
			table.Render()
			return nil
		})
	},
}

// scanCount walks every key once with a cursor and returns how many there
// are.
func scanCount(db *client.Database) (uint64, error) {
	cur, err := db.CreateCursor(nil, 0)
	if err != nil {
		return 0, err
	}
	defer cur.Close()

	var n uint64
	direction := wire.CursorFirst
	for {
		var key client.Key
		err := cur.Move(&key, nil, direction)
		direction = wire.CursorNext
		if err != nil {
			var ee *client.EngineError
			if errors.As(err, &ee) && ee.Status == wire.StatusKeyNotFound {
				return n, nil
			}
			return 0, err
		}
		n++
	}
}
