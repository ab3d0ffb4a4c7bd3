package record

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"
)

// Forwarder mirrors validated requests to the origin with the detector
// output attached as X-Fraud-* headers. Forwarding is fire-and-forget:
// it never blocks or fails the response path.
type Forwarder struct {
	client *http.Client
	logf   func(format string, args ...any)
}

const forwardTimeout = 2 * time.Second

func NewForwarder() *Forwarder {
	return &Forwarder{
		client: &http.Client{Timeout: forwardTimeout},
		logf:   func(string, ...any) {},
	}
}

func (f *Forwarder) SetLogger(logf func(format string, args ...any)) {
	if logf != nil {
		f.logf = logf
	}
}

// Forward posts the original body to originURL with the fraud headers.
// Returns immediately; the outbound call runs detached.
func (f *Forwarder) Forward(originURL string, body []byte, headers map[string]string) {
	if originURL == "" {
		return
	}
	spawn(f.logf, "origin forward", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, originURL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("building origin request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("origin unreachable: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("origin returned %d", resp.StatusCode)
		}
		return nil
	})
}
