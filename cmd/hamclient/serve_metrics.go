package main

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hamsterdb/hamkv/client"
)

func init() {
	rootCmd.AddCommand(serveMetricsCmd)
	serveMetricsCmd.Flags().String("listen", ":9090", "metrics listen address")
	serveMetricsCmd.Flags().Duration("interval", 5*time.Second, "probe interval")
}

// serveMetricsCmd keeps a session open, polls the database's key count on
// an interval so the counters move, and exposes the session's Prometheus
// registry over HTTP. Meant to run as a monitoring sidecar next to a
// hamkv server.
var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics <db>",
	Short: "Serve session metrics over HTTP while polling a database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := parseDbName(args[0])
		if err != nil {
			return err
		}
		listen, _ := cmd.Flags().GetString("listen")
		interval, _ := cmd.Flags().GetDuration("interval")

		return withDb(name, func(s *client.Session, db *client.Database) error {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(s.Metrics().Registry(), promhttp.HandlerOpts{}))

			srv := &http.Server{Addr: listen, Handler: mux}
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			log.Printf("hamclient: serving metrics on %s", listen)

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case err := <-errCh:
					return err
				case <-ticker.C:
					if _, err := db.GetKeyCount(nil, 0); err != nil {
						log.Printf("hamclient: key count probe: %v", err)
					}
				}
			}
		})
	},
}
