package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/wellplay/internal/api"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API over one loaded snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		cfg.Server.Port = port
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		defaults, err := cfg.Filter.Defaults.Criteria()
		if err != nil {
			return err
		}
		wells, stats, err := loadWells(ctx)
		if err != nil {
			return err
		}

		srv := api.New(api.NewSnapshot(wells, stats), api.Config{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Seed:           seed(),
			Defaults:       defaults,
			TopOperators:   topOperatorOptions(),
			Dashboard:      dashboardOptions(),
			RequestTimeout: time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		})
		return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", port))
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
