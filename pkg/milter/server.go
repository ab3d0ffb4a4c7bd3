package milter

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/d--j/go-milter"

	"github.com/mailsift/mailsift/pkg/validator"
)

// Server wraps the milter protocol server around the validator
type Server struct {
	milterSrv *milter.Server
}

const shutdownTimeout = 5 * time.Second

// NewServer builds a milter server. The protocol option set skips the
// phases the handler never reads; body chunks in particular never cross
// the wire.
func NewServer(v *validator.Validator, logf func(format string, args ...any)) *Server {
	milterSrv := milter.NewServer(
		milter.WithProtocol(milter.OptNoRcptTo|milter.OptNoBody|milter.OptNoHeaders|milter.OptNoEOH|milter.OptNoData),
		milter.WithAction(milter.OptAddHeader),
		milter.WithReadTimeout(10*time.Second),
		milter.WithWriteTimeout(10*time.Second),
		milter.WithMilter(func() milter.Milter {
			return NewHandler(v, logf)
		}),
	)
	return &Server{milterSrv: milterSrv}
}

// Serve accepts milter connections until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.milterSrv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.milterSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("milter shutdown: %w", err)
		}
		return ctx.Err()

	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("milter server: %w", err)
		}
		return nil
	}
}

// Close stops the server immediately
func (s *Server) Close() error {
	return s.milterSrv.Close()
}
