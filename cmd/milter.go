package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/pkg/milter"
)

var milterCmd = &cobra.Command{
	Use:   "milter",
	Short: "Run the milter listener only",
	Long: `Runs the sendmail/postfix milter listener without the HTTP API.
Envelope senders are scored at MAIL FROM; blocked addresses are
rejected with a 550 before any message data is transferred.`,
	RunE: runMilter,
}

func runMilter(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.ref.StartRefresher(ctx)

	listener, err := net.Listen(app.boot.Milter.Network, app.boot.Milter.Address)
	if err != nil {
		return fmt.Errorf("milter listen: %w", err)
	}

	app.log.Infof("milter: listening on %s://%s", app.boot.Milter.Network, app.boot.Milter.Address)
	ms := milter.NewServer(app.validator, app.log.Warnf)
	if err := ms.Serve(ctx, listener); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
