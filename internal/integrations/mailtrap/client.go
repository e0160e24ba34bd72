package mailtrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"tekmakon-site/internal/domain"
	"tekmakon-site/internal/integrations/paramstore"
)

const defaultBaseURL = "https://send.api.mailtrap.io"

// sendRequest is the request shape for the Mailtrap Send API.
type sendRequest struct {
	From     domain.Address   `json:"from"`
	To       []domain.Address `json:"to"`
	Subject  string           `json:"subject"`
	HTML     string           `json:"html,omitempty"`
	Text     string           `json:"text,omitempty"`
	Category string           `json:"category,omitempty"`
}

// sendResponse covers both the success and the error body of the Send API.
type sendResponse struct {
	Success    bool     `json:"success"`
	MessageIDs []string `json:"message_ids"`
	Errors     []string `json:"errors"`
}

// TokenSource yields the API token used to authenticate sends.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken returns a TokenSource for a token supplied through configuration.
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) {
		if strings.TrimSpace(token) == "" {
			return "", errors.New("mailtrap: API token is empty")
		}
		return token, nil
	}
}

// ParamStoreToken returns a TokenSource backed by an SSM parameter.
func ParamStoreToken(getter paramstore.Getter, name string) TokenSource {
	return func(ctx context.Context) (string, error) {
		return paramstore.Token(ctx, getter, name)
	}
}

// HTTPStatusError captures non-2xx responses from the Send API.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
	Errors     []string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("mailtrap: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// ProviderMessage returns the provider's own error text, if it sent any.
func (e *HTTPStatusError) ProviderMessage() string {
	return strings.Join(e.Errors, "; ")
}

// Client sends transactional email through Mailtrap.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource

	tokenMu sync.Mutex
	token   string
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client. The token is resolved on the first Send and
// cached for the lifetime of the process once it has been fetched successfully.
func NewClient(tokens TokenSource, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, errors.New("mailtrap: token source must not be nil")
	}
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) resolveToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	if c.token != "" {
		return c.token, nil
	}
	tok, err := c.tokens(ctx)
	if err != nil {
		return "", err
	}
	c.token = tok
	return tok, nil
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func sendURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if strings.HasSuffix(base, "/api") {
		return base + "/send"
	}
	return base + "/api/send"
}

// Send dispatches msg and returns the first provider message id.
// It makes exactly one attempt.
func (c *Client) Send(ctx context.Context, msg domain.Email) (string, error) {
	if len(msg.To) == 0 {
		return "", errors.New("mailtrap: at least one recipient is required")
	}
	if strings.TrimSpace(msg.From.Email) == "" {
		return "", errors.New("mailtrap: sender address is required")
	}

	token, err := c.resolveToken(ctx)
	if err != nil {
		return "", fmt.Errorf("mailtrap: resolve token: %w", err)
	}

	body, err := json.Marshal(sendRequest{
		From:     msg.From,
		To:       msg.To,
		Subject:  msg.Subject,
		HTML:     msg.HTML,
		Text:     msg.Text,
		Category: msg.Category,
	})
	if err != nil {
		return "", fmt.Errorf("mailtrap: marshal request: %w", err)
	}

	url := sendURL(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("mailtrap: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	raw, err := c.doJSONRequest(req, url)
	if err != nil {
		return "", fmt.Errorf("mailtrap: request failed: %w", err)
	}

	var payload sendResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("mailtrap: decode response: %w", err)
	}
	if !payload.Success {
		return "", fmt.Errorf("mailtrap: send rejected: %s", strings.Join(payload.Errors, "; "))
	}
	if len(payload.MessageIDs) == 0 {
		return "", nil
	}
	return payload.MessageIDs[0], nil
}

func (c *Client) doJSONRequest(req *http.Request, url string) ([]byte, error) {
	res, err := c.resolvedHTTPClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		statusErr := &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        url,
			Body:       string(buf),
		}
		var payload sendResponse
		if json.Unmarshal(buf, &payload) == nil {
			statusErr.Errors = payload.Errors
		}
		return nil, statusErr
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return buf, nil
}
