package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/argus/pkg/domain/interfaces"
	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
	"github.com/osint-lab/argus/pkg/utils/safe"
)

// Client is the HTTP resource client for the remote intelligence backend.
// Every read disables intermediate caching so the view always reflects the
// current backend state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.Backend = (*Client)(nil)

// Option customizes the Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a resource client for the backend at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid backend base URL", goerr.V("url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("backend base URL must be http or https", goerr.V("url", baseURL))
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to encode request body", goerr.V("path", path))
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V("path", path))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed",
			goerr.V("method", method),
			goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(detail))
		if msg == "" {
			msg = "request failed"
		}
		return goerr.New(msg,
			goerr.V("status", resp.StatusCode),
			goerr.V("method", method),
			goerr.V("path", path))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode response", goerr.V("path", path))
	}
	return nil
}

func casePath(id types.CaseID, suffix string) string {
	return fmt.Sprintf("/api/v1/cases/%s%s", url.PathEscape(id.String()), suffix)
}

// Health checks backend reachability via GET /health
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// ListCases fetches the full ordered case list
func (c *Client) ListCases(ctx context.Context) ([]model.Case, error) {
	var cases []model.Case
	if err := c.do(ctx, http.MethodGet, "/api/v1/cases", nil, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// GetCase fetches a single case by ID
func (c *Client) GetCase(ctx context.Context, id types.CaseID) (*model.Case, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var out model.Case
	if err := c.do(ctx, http.MethodGet, casePath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCase creates a new investigation case
func (c *Client) CreateCase(ctx context.Context, input model.CreateCaseInput) (*model.Case, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	var out model.Case
	if err := c.do(ctx, http.MethodPost, "/api/v1/cases", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) stageAction(ctx context.Context, id types.CaseID, stage string) (*model.Case, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var out model.Case
	if err := c.do(ctx, http.MethodPost, casePath(id, "/"+stage), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Collect triggers the ingestion stage for the case
func (c *Client) Collect(ctx context.Context, id types.CaseID) (*model.Case, error) {
	return c.stageAction(ctx, id, "collect")
}

// Analyze triggers the risk/narrative analysis stage for the case
func (c *Client) Analyze(ctx context.Context, id types.CaseID) (*model.Case, error) {
	return c.stageAction(ctx, id, "analyze")
}

// RunAll triggers the full remaining pipeline in one backend-side step
func (c *Client) RunAll(ctx context.Context, id types.CaseID) (*model.Case, error) {
	return c.stageAction(ctx, id, "run-all")
}

// GenerateProducts triggers report/evidence/alert synthesis for the case
func (c *Client) GenerateProducts(ctx context.Context, id types.CaseID) (*model.Case, error) {
	return c.stageAction(ctx, id, "generate-products")
}

// Graph fetches the case's entity graph
func (c *Client) Graph(ctx context.Context, id types.CaseID) (*model.Graph, error) {
	var out model.Graph
	if err := c.do(ctx, http.MethodGet, casePath(id, "/graph"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Items fetches the case's collected content items
func (c *Client) Items(ctx context.Context, id types.CaseID) ([]model.ContentItem, error) {
	var out []model.ContentItem
	if err := c.do(ctx, http.MethodGet, casePath(id, "/items"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Alerts fetches the case's alerts
func (c *Client) Alerts(ctx context.Context, id types.CaseID) ([]model.Alert, error) {
	var out []model.Alert
	if err := c.do(ctx, http.MethodGet, casePath(id, "/alerts"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Evidence fetches the case's evidence records
func (c *Client) Evidence(ctx context.Context, id types.CaseID) ([]model.Evidence, error) {
	var out []model.Evidence
	if err := c.do(ctx, http.MethodGet, casePath(id, "/evidence"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Timeline fetches the case's timeline events
func (c *Client) Timeline(ctx context.Context, id types.CaseID) ([]model.TimelineEvent, error) {
	var out []model.TimelineEvent
	if err := c.do(ctx, http.MethodGet, casePath(id, "/timeline"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MediaVerification fetches the case's media verification results
func (c *Client) MediaVerification(ctx context.Context, id types.CaseID) ([]model.MediaVerification, error) {
	var out []model.MediaVerification
	if err := c.do(ctx, http.MethodGet, casePath(id, "/media-verification"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Report fetches the case's generated report
func (c *Client) Report(ctx context.Context, id types.CaseID) (*model.Report, error) {
	var out model.Report
	if err := c.do(ctx, http.MethodGet, casePath(id, "/report"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GlobalMetrics fetches the backend-computed aggregate snapshot
func (c *Client) GlobalMetrics(ctx context.Context) (*model.GlobalMetrics, error) {
	var out model.GlobalMetrics
	if err := c.do(ctx, http.MethodGet, "/api/v1/metrics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Connectors fetches ingestion connector health
func (c *Client) Connectors(ctx context.Context) ([]model.ConnectorStatus, error) {
	var out []model.ConnectorStatus
	if err := c.do(ctx, http.MethodGet, "/api/v1/connectors", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SourceCatalog fetches the catalog of available sources
func (c *Client) SourceCatalog(ctx context.Context) ([]model.SourceCatalogEntry, error) {
	var out []model.SourceCatalogEntry
	if err := c.do(ctx, http.MethodGet, "/api/v1/source-catalog", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
