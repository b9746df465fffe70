// Package store provides read-only access to the hosted birthday table.
// Failures are returned to the caller; job boundaries degrade them to an
// empty result set so a broken collaborator never crashes the process.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-cumplebot/internal/config"
	"github.com/tartampluch/go-cumplebot/internal/engine"
)

// Source is the contract for anything that can produce birthday records.
type Source interface {
	Fetch(ctx context.Context) ([]engine.PersonRecord, error)
}

// RESTStore fetches rows from a PostgREST (Supabase-style) endpoint.
type RESTStore struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
	Table   string
	Select  string
}

// NewRESTStore creates a RESTStore with configured timeouts.
func NewRESTStore(baseURL, apiKey string) *RESTStore {
	return &RESTStore{
		Client:  &http.Client{Timeout: config.HTTPTimeout},
		BaseURL: baseURL,
		APIKey:  apiKey,
		Table:   config.StoreTable,
		Select:  config.StoreSelect,
	}
}

// Fetch retrieves the birthday table and converts rows into records.
// The URL is validated and sanitized before it reaches any log line, and
// the response body is size-limited.
func (s *RESTStore) Fetch(ctx context.Context) ([]engine.PersonRecord, error) {
	if s.BaseURL == "" {
		return nil, fmt.Errorf(config.ErrStoreURLEmpty)
	}

	endpoint := fmt.Sprintf(config.StorePathFormat, s.BaseURL, s.Table)

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	q := u.Query()
	q.Set(config.StoreQuerySelect, s.Select)
	u.RawQuery = q.Encode()

	// Strip the query for logging; it never carries secrets here, but the
	// sanitized form keeps log lines short and stable.
	safeURL := u.Scheme + "://" + u.Host + u.Path
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompStore),
		slog.String(config.LogKeyURL, safeURL),
	)
	log.Debug(config.MsgFetchStarted)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)
	if s.APIKey != "" {
		req.Header.Set(config.HeaderAPIKey, s.APIKey)
		req.Header.Set(config.HeaderAuth, config.AuthBearerPrefix+s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warn(config.MsgStoreBadStatus,
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return nil, fmt.Errorf("store returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	var rows []map[string]any
	limited := io.LimitReader(resp.Body, config.MaxHTTPResponseSize)
	if err := json.NewDecoder(limited).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreDecode, err)
	}

	records := engine.RecordsFromRows(rows)
	log.Info(config.MsgRowsFetched, slog.Int(config.LogKeyCount, len(records)))
	return records, nil
}
