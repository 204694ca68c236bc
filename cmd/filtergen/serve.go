package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpattn/gqlfilter/internal/middleware"
	"github.com/rpattn/gqlfilter/internal/preview"
	"github.com/rpattn/gqlfilter/pkg/filtergen"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated filter types over HTTP for inspection",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := readSources(a.cfg.SchemaPaths, a.cfg.OutputPath)
			if err != nil {
				return err
			}

			defs, err := filtergen.GenerateDefinitions(a.generatorConfig(), sources...)
			if err != nil {
				return err
			}

			corsHandler := cors.New(cors.Options{
				AllowedOrigins: a.cfg.AllowedOrigin,
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"*"},
			})

			server := &http.Server{
				Addr:         a.cfg.ServerAddr,
				Handler:      corsHandler.Handler(middleware.LoggingMiddleware(a.logger)(preview.NewHTTPHandler(defs))),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info().Str("addr", a.cfg.ServerAddr).Int("types", len(defs)).Msg("serving filter types")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().String("addr", "", "listen address")
	return cmd
}
