package commands

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/covercheck-dev/covercheck/internal/config"
	"github.com/covercheck-dev/covercheck/internal/server"
)

func newServeCommand(logLevel *string) *cobra.Command {
	var opts inputOptions
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve coverage and routing results over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load .env if present; real environment variables win.
			_ = godotenv.Load()

			cfg, err := config.LoadOrDefault(opts.configPath)
			if err != nil {
				return err
			}
			applyEnv(cfg)
			if port != 0 {
				cfg.Server.Port = port
			}

			log := commandLogger(*logLevel, cfg)

			in, err := loadInputs(log, cfg, opts)
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Log:            log,
				Port:           cfg.Server.Port,
				Index:          in.index,
				Entries:        in.entries,
				Holdings:       in.holdings,
				Offers:         in.offers,
				Coverage:       in.coverageParams(),
				Routing:        in.routingParams(),
				CatalogSource:  in.catalogSource,
				HoldingsSource: in.holdingsSource,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	addInputFlags(cmd, &opts)
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides config and COVERCHECK_PORT)")

	return cmd
}

// applyEnv overlays COVERCHECK_* environment variables onto the config.
func applyEnv(cfg *config.Config) {
	if v := os.Getenv("COVERCHECK_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("COVERCHECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
