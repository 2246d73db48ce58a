package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

// Client talks to the content API. When a TokenStore is set, the stored token is read on every
// request and sent as Authorization: Bearer <token>.
type Client struct {
	client  *http.Client
	baseURL string
	tokens  ports.TokenStore
	headers map[string]string
	log     zerolog.Logger
}

// Option configures Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client (default: 10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// WithHeader sets a header sent on every request.
func WithHeader(key, value string) Option {
	return func(cl *Client) {
		if cl.headers == nil {
			cl.headers = make(map[string]string)
		}
		cl.headers[key] = value
	}
}

// WithLogger sets the logger used for token-storage warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(cl *Client) {
		cl.log = log
	}
}

// New returns a client for the API rooted at baseURL. tokens may be nil.
func New(baseURL string, tokens ports.TokenStore, opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Anonymous returns a copy of c that never attaches the bearer token.
func (c *Client) Anonymous() *Client {
	cp := *c
	cp.tokens = nil
	return &cp
}

// call is a single API round trip. route is the path template used as the metrics label.
type call struct {
	method      string
	path        string
	route       string
	body        io.Reader
	contentType string
}

// Do issues method against path (relative to the base URL) and decodes a JSON response into out
// when out is non-nil. Failures are *NetworkError or *HTTPError.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	return c.do(ctx, call{method: method, path: path, route: path, body: body, contentType: contentType}, out)
}

func (c *Client) doJSON(ctx context.Context, method, path, route string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, call{method: method, path: path, route: route, body: body, contentType: contentType}, out)
}

func (c *Client) do(ctx context.Context, cl call, out interface{}) error {
	start := time.Now()
	err := c.roundTrip(ctx, cl, out)
	observe(cl.method, cl.route, err, time.Since(start))
	return err
}

func (c *Client) roundTrip(ctx context.Context, cl call, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, cl.body)
	if err != nil {
		return &NetworkError{Method: cl.method, Path: cl.path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	req.Header.Set("X-Request-ID", requestID(ctx))
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if token := c.bearer(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{Method: cl.method, Path: cl.path, Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Method: cl.method, Path: cl.path, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{Method: cl.method, Path: cl.path, Status: resp.StatusCode, Body: data}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Method: cl.method, Path: cl.path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// bearer reads the token fresh from storage. A storage failure is treated as no token.
func (c *Client) bearer(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("read stored token failed; sending request without it")
		return ""
	}
	return token
}

func requestID(ctx context.Context) string {
	if id := chimid.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
