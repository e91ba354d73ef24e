package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"reconweb/internal/config"
	"reconweb/internal/logging"
	"reconweb/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reconweb",
		Short: "POB/Portal manifest reconciliation wizard",
		Long: `reconweb serves a multi-step web wizard that reconciles a POB roster
against a Portal roster by NED number and produces the RFM, Manifest,
and Return Manifest spreadsheets.`,
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd())
	return root
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the reconciliation web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			jobs := store.New(cfg.JobTTL)
			srv := newServer(cfg, log, jobs)

			go sweepLoop(jobs, log)

			log.Info().Str("addr", cfg.ListenAddr).Msg("server running")
			return http.ListenAndServe(cfg.ListenAddr, srv.routes())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides RECONWEB_LISTEN_ADDR)")
	return cmd
}

// sweepLoop drops abandoned wizard runs so the in-memory store stays bounded.
func sweepLoop(jobs *store.Store, log zerolog.Logger) {
	for range time.Tick(10 * time.Minute) {
		if n := jobs.Sweep(time.Now()); n > 0 {
			log.Debug().Int("removed", n).Msg("swept expired runs")
		}
	}
}
