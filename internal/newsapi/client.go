// Package newsapi implements the upstream provider adapter for newsapi.org.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"newsgate/internal/config"
	"newsgate/internal/logger"
	"newsgate/internal/models"
	"newsgate/internal/provider"
	"newsgate/pkg/utils"
)

// Client errors.
var (
	ErrMissingAPIKey   = errors.New("newsapi: API key is not set")
	ErrMissingArticles = errors.New("response has no articles list")
	ErrMissingSources  = errors.New("response has no sources list")
)

// Provider endpoints relative to the base URL.
const (
	endpointEverything   = "/everything"
	endpointTopHeadlines = "/top-headlines"
	endpointSources      = "/sources"
)

// Provider error codes that map onto a specific failure class.
var (
	authCodes      = map[string]bool{"apiKeyInvalid": true, "apiKeyMissing": true, "apiKeyDisabled": true}
	rateLimitCodes = map[string]bool{"rateLimited": true, "apiKeyExhausted": true}
)

// Ensure Client implements provider.Provider.
var _ provider.Provider = (*Client)(nil)

// Client talks to the NewsAPI v2 REST interface.
type Client struct {
	httpClient *http.Client
	headers    *utils.HTTPHelper
	logger     *logger.Logger
	baseURL    string
	apiKey     string
	maxBody    int64
}

// envelope is the common shape of every provider reply.
type envelope struct {
	Status       string                   `json:"status"`
	Code         string                   `json:"code,omitempty"`
	Message      string                   `json:"message,omitempty"`
	TotalResults int                      `json:"totalResults"`
	Articles     []models.ProviderArticle `json:"articles"`
	Sources      []models.ProviderSource  `json:"sources"`
}

// NewClient creates a provider client. It fails fast when the API key is absent.
func NewClient(cfg config.ProviderConfig, log *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		headers: utils.NewHTTPHelper(cfg.UserAgent),
		logger:  log.With("component", "newsapi"),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		maxBody: cfg.MaxResponseBytes(),
	}, nil
}

// Everything implements provider.Provider.
func (c *Client) Everything(ctx context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error) {
	env, err := c.get(ctx, endpointEverything, args)
	if err != nil {
		return nil, err
	}

	if env.Articles == nil {
		return nil, fmt.Errorf("%w: %w", provider.ErrUpstream, ErrMissingArticles)
	}

	return env.Articles, nil
}

// TopHeadlines implements provider.Provider.
func (c *Client) TopHeadlines(ctx context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error) {
	env, err := c.get(ctx, endpointTopHeadlines, args)
	if err != nil {
		return nil, err
	}

	if env.Articles == nil {
		return nil, fmt.Errorf("%w: %w", provider.ErrUpstream, ErrMissingArticles)
	}

	return env.Articles, nil
}

// Sources implements provider.Provider.
func (c *Client) Sources(ctx context.Context, args models.AdapterArguments) ([]models.ProviderSource, error) {
	env, err := c.get(ctx, endpointSources, args)
	if err != nil {
		return nil, err
	}

	if env.Sources == nil {
		return nil, fmt.Errorf("%w: %w", provider.ErrUpstream, ErrMissingSources)
	}

	return env.Sources, nil
}

// get performs one request against endpoint and decodes the envelope.
// Every error it returns wraps one of the provider failure classes.
func (c *Client) get(ctx context.Context, endpoint string, args models.AdapterArguments) (env *envelope, err error) {
	query := encodeArguments(args).Encode()

	target := c.baseURL + endpoint
	if query != "" {
		target += "?" + query
	}

	c.logger.Debug("Calling provider", "endpoint", endpoint, "query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", provider.ErrUpstream, err)
	}

	req.Header = c.headers.BuildHeaders(map[string]string{"X-Api-Key": c.apiKey})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", provider.ErrUpstream, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close response body: %w", provider.ErrUpstream, closeErr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", provider.ErrUpstream, err)
	}

	var decoded envelope
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode != http.StatusOK || decodeErr != nil || decoded.Status != "ok" {
		failure := classify(resp.StatusCode, decoded.Code)

		c.logger.Warn("Provider request failed",
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"code", decoded.Code,
			"message", decoded.Message,
		)

		if decodeErr != nil && failure == provider.ErrUpstream {
			return nil, fmt.Errorf("%w: status %d: failed to parse response: %w", failure, resp.StatusCode, decodeErr)
		}

		return nil, fmt.Errorf("%w: status %d: %s", failure, resp.StatusCode, describe(decoded))
	}

	c.logger.Debug("Provider request succeeded",
		"endpoint", endpoint,
		"total_results", decoded.TotalResults,
		"articles", len(decoded.Articles),
		"sources", len(decoded.Sources),
	)

	return &decoded, nil
}

// classify picks the failure class for a non-ok reply. Provider codes win
// over the HTTP status since the provider reuses 400 for several causes.
func classify(status int, code string) error {
	switch {
	case authCodes[code]:
		return provider.ErrUnauthorized
	case rateLimitCodes[code]:
		return provider.ErrRateLimited
	case status == http.StatusUnauthorized:
		return provider.ErrUnauthorized
	case status == http.StatusTooManyRequests:
		return provider.ErrRateLimited
	default:
		return provider.ErrUpstream
	}
}

func describe(env envelope) string {
	switch {
	case env.Code != "" && env.Message != "":
		return env.Code + ": " + env.Message
	case env.Code != "":
		return env.Code
	case env.Message != "":
		return env.Message
	case env.Status != "":
		return "status " + env.Status
	default:
		return "unexpected response"
	}
}
