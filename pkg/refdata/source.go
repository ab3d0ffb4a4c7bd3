package refdata

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// sourceFetcher pulls newline-delimited domain lists over HTTPS.
// Lines starting with # are comments.
type sourceFetcher struct {
	client *http.Client
	token  string
}

func newSourceFetcher(token string) *sourceFetcher {
	return &sourceFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		token:  token,
	}
}

// Fetch downloads one source list and returns its non-comment lines
func (f *sourceFetcher) Fetch(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned %d", resp.StatusCode)
	}

	var domains []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		domains = append(domains, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return domains, nil
}
