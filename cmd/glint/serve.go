package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/glint-dev/glint/pkg/element"
	"github.com/glint-dev/glint/pkg/media"
	"github.com/glint-dev/glint/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		mediaDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo app server",
		Long: `Start a Glint server running a small demo app. Each connection
receives a welcome markdown block and a success toast.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			opts := []server.Option{
				server.WithAddr(addr),
				server.WithLogger(logger),
				server.WithElementInterceptors(
					element.UsageMetrics(),
					element.Tracing(),
				),
			}
			if mediaDir != "" {
				store, err := media.NewDiskStore(mediaDir, 32<<20)
				if err != nil {
					return err
				}
				opts = append(opts, server.WithMediaStore(store))
			}

			srv := server.New(demoApp, opts...)

			go func() {
				sig := make(chan os.Signal, 1)
				signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
				<-sig
				logger.Info("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	cmd.Flags().StringVarP(&mediaDir, "media-dir", "m", "", "Directory for element assets (disabled if empty)")

	return cmd
}

// demoApp is the app served by `glint serve`.
func demoApp(ctx context.Context, dg *element.DeltaGenerator) error {
	if _, err := dg.Markdown(`
		# Glint demo

		Elements stream from the server as you watch.
	`); err != nil {
		return err
	}

	_, err := dg.Toast("Connected!",
		element.WithIcon("👋"),
		element.WithToastType(element.ToastTypeSuccess))
	return err
}
