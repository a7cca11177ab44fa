package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
	"github.com/Test199T/vita-wise-ai-sub001/internal/security"
)

const (
	defaultRequestTimeout = 5 * time.Second
	defaultProbeTimeout   = 3 * time.Second
	// Chat generation is slow; sends are not part of endpoint discovery and
	// get a generous budget.
	defaultChatTimeout = 90 * time.Second

	jsonContentType = "application/json"
)

// Client issues authenticated calls to a VitaWise backend whose exact route
// layout is not guaranteed, self-healing by trying alternative known routes.
type Client struct {
	httpClient  *http.Client
	probeClient *http.Client
	chatClient  *http.Client
	baseURL     string
	tokens      *security.TokenStore
	cache       domain.EndpointCacheRepository
	flight      singleflight.Group
}

// Timeouts bounds the client's outbound requests. Zero fields fall back to
// the defaults.
type Timeouts struct {
	Request time.Duration
	Probe   time.Duration
	Chat    time.Duration
}

func (t Timeouts) withDefaults() Timeouts {
	if t.Request == 0 {
		t.Request = defaultRequestTimeout
	}
	if t.Probe == 0 {
		t.Probe = defaultProbeTimeout
	}
	if t.Chat == 0 {
		t.Chat = defaultChatTimeout
	}
	return t
}

// NewClient creates a new API client
func NewClient(baseURL string, timeouts Timeouts, tokens *security.TokenStore, cache domain.EndpointCacheRepository) *Client {
	timeouts = timeouts.withDefaults()
	return &Client{
		httpClient:  &http.Client{Timeout: timeouts.Request},
		probeClient: &http.Client{Timeout: timeouts.Probe},
		chatClient:  &http.Client{Timeout: timeouts.Chat},
		baseURL:     strings.TrimRight(baseURL, "/"),
		tokens:      tokens,
		cache:       cache,
	}
}

// do issues a single authenticated request and returns the status and body.
// A network-level failure is returned as an error; any HTTP status is not.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, payload []byte, contentType string) (int, []byte, error) {
	token, err := c.tokens.Load(ctx)
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", security.BearerHeader(token))
	req.Header.Set("Accept", jsonContentType)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := hc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return res.StatusCode, body, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}

// extractMessage pulls a human-readable message out of an error body
func extractMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, field := range []string{"message", "error", "detail"} {
		if s, ok := payload[field].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func authError(body []byte) error {
	if msg := extractMessage(body); msg != "" {
		return fmt.Errorf("%s: %w", msg, domain.ErrAuthentication)
	}
	return domain.ErrAuthentication
}
