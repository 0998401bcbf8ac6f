// Package fetcher wraps the Wolkvox reports_manager endpoint. It is the
// only place upstream quirks are handled: the not-found-means-empty rule
// and the string status envelope never leak past this boundary.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/daterange"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/model"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

// ErrUpstreamUnavailable indicates a transport failure or a non-2xx status
// other than the documented not-found-empty case.
var ErrUpstreamUnavailable = errors.New("wolkvox reports API unavailable")

const (
	reportName     = "diagram_9"
	requestTimeout = 30 * time.Second
	reportTTL      = 10 * time.Minute
)

// Client fetches interaction record batches for one validated range.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *reportCache
	useCache   bool
}

// NewClient creates a report client with a bounded request timeout and a
// short-lived in-memory batch cache.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      newReportCache(reportTTL),
		useCache:   true,
	}
}

// SetBaseURL overrides the endpoint host, primarily for tests. The default
// derives the host from the operation's server number.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// SetCacheEnabled toggles the batch cache.
func (c *Client) SetCacheEnabled(enabled bool) {
	c.useCache = enabled
}

// ResetCache drops all cached batches.
func (c *Client) ResetCache() {
	c.cache.Reset()
}

func (c *Client) endpoint(op model.Operation) string {
	base := c.baseURL
	if base == "" {
		base = fmt.Sprintf("https://wv%s.wolkvox.com", op.Server)
	}
	return base + "/api/v2/reports_manager.php"
}

// FetchReport retrieves the diagram_9 report for the operation and range.
// An upstream 404 and an envelope code other than "200" both mean "no
// conversations" and yield an empty batch, not an error.
func (c *Client) FetchReport(ctx context.Context, op model.Operation, rng daterange.Range) ([]model.InteractionRecord, error) {
	cacheKey := op.Server + "|" + rng.DateIni + "|" + rng.DateEnd
	if c.useCache {
		if records, ok := c.cache.Get(cacheKey); ok {
			util.LogDebugf("report cache hit for %s (%d records)", cacheKey, len(records))
			return records, nil
		}
	}

	query := url.Values{}
	query.Set("api", reportName)
	query.Set("date_ini", rng.DateIni)
	query.Set("date_end", rng.DateEnd)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(op)+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create report request: %w", err)
	}
	req.Header.Set("wolkvox-server", op.Server)
	req.Header.Set("wolkvox-token", op.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	// The API answers 404 when the range simply has no conversations.
	if resp.StatusCode == http.StatusNotFound {
		util.LogDebugf("no conversations for %s..%s (upstream 404)", rng.DateIni, rng.DateEnd)
		return []model.InteractionRecord{}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstreamUnavailable, err)
	}

	var report model.ReportResponse
	if err := sonic.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUpstreamUnavailable, err)
	}

	if report.Code != "200" || len(report.Data) == 0 {
		util.LogDebugf("report envelope code=%s msg=%q, treating as empty", report.Code, report.Msg)
		return []model.InteractionRecord{}, nil
	}

	if c.useCache {
		c.cache.Set(cacheKey, report.Data)
	}

	util.LogInfof("fetched %d interaction records for %s..%s", len(report.Data), rng.DateIni, rng.DateEnd)
	return report.Data, nil
}
