package dolibarr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/riskwatch/internal/config"
	"go.uber.org/zap"
)

// ErrUnavailable marks any failure to reach the accounting source or a
// non-success response from it. Callers map it to an upstream-failure status.
var ErrUnavailable = errors.New("dolibarr unavailable")

// Source provides raw customer and invoice records from the accounting system.
// Records are kept as decoded JSON objects because Dolibarr's field names and
// encodings vary between installations.
type Source interface {
	ListCustomers(ctx context.Context) ([]map[string]any, error)
	ListInvoices(ctx context.Context, customerID int64) ([]map[string]any, error)
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) Source {
	timeout := cfg.Dolibarr.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.Dolibarr.BaseURL, "/"),
		apiKey:  cfg.Dolibarr.APIKey,
		client:  &http.Client{Timeout: timeout},
		log:     log.Named("dolibarr"),
	}
}

func (c *Client) ListCustomers(ctx context.Context) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("limit", "200")
	return c.get(ctx, "/api/index.php/thirdparties", params)
}

func (c *Client) ListInvoices(ctx context.Context, customerID int64) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("thirdparty_ids", strconv.FormatInt(customerID, 10))
	params.Set("limit", "200")
	return c.get(ctx, "/api/index.php/invoices", params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]map[string]any, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return nil, fmt.Errorf("%w: missing DOLIBARR_BASE_URL or DOLIBARR_API_KEY", ErrUnavailable)
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("DOLAPIKEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: connection error: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("dolibarr request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: %s: %s", ErrUnavailable, resp.Status, strings.TrimSpace(string(detail)))
	}

	var records []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}
	return records, nil
}
