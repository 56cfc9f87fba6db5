package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
	"github.com/murkotick/catalog-sale-console/internal/pkg/logging"
)

const (
	accessTokenHeader = "X-Shopify-Access-Token"

	// DefaultAPIVersion is the Admin API version the console targets.
	DefaultAPIVersion = "2024-07"
	// DefaultPageSize is how many products a catalog fetch returns.
	DefaultPageSize = 100

	maxErrorBody = 512
)

// Config holds the Admin API connection settings.
type Config struct {
	StoreURL    string
	AccessToken string
	APIVersion  string
	PageSize    int
	Timeout     time.Duration
}

// Client is a Shopify Admin GraphQL client implementing the catalog service.
type Client struct {
	endpoint string
	token    string
	pageSize int
	http     *http.Client
	logger   log.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger log.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.StoreURL), "/")
	if base == "" {
		return nil, errors.New("shopify: store url is required")
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	version := cfg.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		endpoint: fmt.Sprintf("%s/admin/api/%s/graphql.json", base, version),
		token:    cfg.AccessToken,
		pageSize: pageSize,
		http:     httpClient,
		logger:   logging.With(logger, "shopify"),
	}, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// do posts a GraphQL document and decodes "data" into out. Transport failures,
// non-2xx responses, top-level GraphQL errors and undecodable payloads all wrap
// domain.ErrCatalogTransport.
func (c *Client) do(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", domain.ErrCatalogTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessTokenHeader, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrCatalogTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = level.Debug(c.logger).Log("msg", "non-2xx response", "status", resp.StatusCode)
		return fmt.Errorf("%w: http status %d: %s", domain.ErrCatalogTransport, resp.StatusCode, truncate(raw))
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrCatalogTransport, err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("%w: graphql: %s", domain.ErrCatalogTransport, strings.Join(msgs, "; "))
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("%w: response has no data", domain.ErrCatalogTransport)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", domain.ErrCatalogTransport, err)
	}
	return nil
}

func truncate(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
