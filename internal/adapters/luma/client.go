package luma

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net"
	"net/http"
	"net/url"
	"slices"
	"time"

	"attendeelist/internal/domain"
)

const apiKeyHeader = "x-luma-api-key"

// Config holds the guest-list endpoint and the static API key.
type Config struct {
	GuestListURL string
	APIKey       string
}

// NewHTTPClient returns a client whose Timeout bounds each guest-list call end to end.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

type guestListResponse struct {
	Entries []guestListEntry `json:"entries"`
}

type guestListEntry struct {
	Guest domain.Guest `json:"guest"`
}

type guestFetcher struct {
	client *http.Client
	cfg    Config
	logger *slog.Logger
}

// NewGuestFetcher returns a fetcher that calls the Luma get-guests endpoint.
// The client's Timeout bounds each call.
func NewGuestFetcher(client *http.Client, cfg Config, logger *slog.Logger) domain.GuestFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &guestFetcher{client: client, cfg: cfg, logger: logger}
}

func (f *guestFetcher) FetchGuests(ctx context.Context, eventAPIID string) ([]domain.Guest, error) {
	u, err := url.Parse(f.cfg.GuestListURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse guest list url: %w", err)
	}
	q := u.Query()
	q.Set("event_api_id", eventAPIID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(apiKeyHeader, f.cfg.APIKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guests from luma: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: luma api returned %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode luma response: %v", domain.ErrMalformedInput, err)
	}
	f.logger.Debug("guest list response received",
		"event_api_id", eventAPIID,
		"keys", slices.Sorted(maps.Keys(raw)),
	)

	var data guestListResponse
	if entries, ok := raw["entries"]; ok {
		if err := json.Unmarshal(entries, &data.Entries); err != nil {
			return nil, fmt.Errorf("%w: failed to decode luma entries: %v", domain.ErrMalformedInput, err)
		}
	}
	f.logger.Debug("guest list entries", "event_api_id", eventAPIID, "entries", len(data.Entries))

	guests := make([]domain.Guest, 0, len(data.Entries))
	for _, e := range data.Entries {
		if len(e.Guest) == 0 {
			continue
		}
		guests = append(guests, e.Guest)
	}
	return guests, nil
}
