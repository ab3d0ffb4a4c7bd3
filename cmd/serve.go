package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/pkg/httpapi"
	"github.com/mailsift/mailsift/pkg/milter"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the validation HTTP server",
	Long: `Starts the HTTP API, the background reference-data refresher and,
when enabled in the bootstrap file, the milter listener.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.ref.StartRefresher(ctx)

	api := httpapi.NewServer(app.validator, app.cfgStore, app.ref, app.rdb)
	api.SetLoggers(app.log.Infof, app.log.Warnf)

	srv := &http.Server{
		Addr:         app.boot.Server.Addr,
		Handler:      api.Router(),
		ReadTimeout:  time.Duration(app.boot.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(app.boot.Server.WriteTimeout) * time.Millisecond,
	}

	errChan := make(chan error, 2)

	go func() {
		app.log.Infof("serve: http listening on %s", app.boot.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	if app.boot.Milter.Enabled {
		listener, err := net.Listen(app.boot.Milter.Network, app.boot.Milter.Address)
		if err != nil {
			return fmt.Errorf("milter listen: %w", err)
		}
		ms := milter.NewServer(app.validator, app.log.Warnf)
		go func() {
			app.log.Infof("serve: milter listening on %s", app.boot.Milter.Address)
			if err := ms.Serve(ctx, listener); err != nil && err != context.Canceled {
				errChan <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		app.log.Infof("serve: shutting down")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
