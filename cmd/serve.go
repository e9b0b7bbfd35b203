package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jdscolam/mndp-firebase-auth/internal/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the token exchange gateway",
	Long: `Starts the HTTP gateway. Validator, directory, signer and audit log are
built once from the config file and released again on SIGINT or SIGTERM.`,
	Example: `  mndpauth serve -f mndpauth.yaml
  mndpauth serve -f mndpauth.yaml --addr :9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info().Msg("Initializing components...")
		components, err := f.BuildComponents(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := components.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to release components")
			}
		}()

		serverCfg := components.Config.Server
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			serverCfg.Addr = addr
		}

		log.Info().
			Str("validator", components.Validator.Name()).
			Str("signer", components.Signer.Name()).
			Str("route", serverCfg.ExchangeRoute).
			Msg("Exchange pipeline ready")

		srv := api.NewServer(components.Exchanger, components.Auditor, serverCfg, components.Metrics)
		server := &http.Server{
			Addr:    serverCfg.Addr,
			Handler: srv.Routes(),
			BaseContext: func(_ net.Listener) context.Context {
				return log.Logger.WithContext(context.Background())
			},
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.Info().Msgf("Starting server on %s...", serverCfg.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server crashed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			log.Info().Msg("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f.bindConfigFlag(serveCmd.Flags())
	serveCmd.Flags().String("addr", "", "address to listen on (overrides server.addr)")
}
