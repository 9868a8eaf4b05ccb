package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Source yields the full store collection as a single batch. A session calls
// Fetch once; there is no incremental or streaming consumption.
type Source interface {
	Fetch(ctx context.Context) (*Data, error)
}

// FileSource loads the dataset from a local file.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(_ context.Context) (*Data, error) {
	return LoadFile(s.Path)
}

// HTTPSource fetches the JSON dataset document from a URL. Network-only:
// no caching layer sits below this, per the data source contract.
type HTTPSource struct {
	URL    string
	client *http.Client
}

// NewHTTPSource creates an HTTP dataset source with the given request timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) (*Data, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: unexpected status %s", resp.Status)
	}

	var data Data
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	log.Debugf("Fetched %d stores from %s", len(data.Stores), s.URL)
	Validate(&data, s.URL)
	return &data, nil
}
