package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/halvard/skald/internal/apperr"
)

const (
	httpFetchTimeout = 10 * time.Second
	httpUserAgent    = "skald/1.0"
)

// HTTP implements Source backed by a remote document host. Documents are
// fetched as GET <base>/<id>.
type HTTP struct {
	base   string
	client *http.Client
}

var _ Source = (*HTTP)(nil)

// NewHTTP creates an HTTP source for the given base URL. A nil client gets
// a default one with a request timeout.
func NewHTTP(baseURL string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: httpFetchTimeout}
	}
	return &HTTP{base: strings.TrimRight(baseURL, "/"), client: client}
}

// Fetch retrieves the document at id from the remote host. The id is
// appended to the base URL as-is; ids come from configuration, not from
// request input.
func (h *HTTP) Fetch(ctx context.Context, id string) ([]byte, error) {
	url := h.base + "/" + strings.TrimLeft(id, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("source: build request %s: %w", id, err)
	}
	req.Header.Set("User-Agent", httpUserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: fetch %s: %w: %w", id, apperr.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("source: %s: %w", id, apperr.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("source: fetch %s: status %d: %w", id, resp.StatusCode, apperr.ErrSourceUnavailable)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("source: read body %s: %w: %w", id, apperr.ErrSourceUnavailable, err)
	}
	return data, nil
}
