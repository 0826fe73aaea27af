package http

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	neturl "net/url"
	"sort"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
)

const (
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

type Client struct {
	httpClient     *http.Client
	maxRedirects   int
	validateSSL    bool
	proxyURL       string
	defaultHeaders []request.Header
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		maxRedirects: DefaultMaxRedirects,
		validateSSL:  true,
	}

	for _, opt := range opts {
		opt(c)
	}

	transport := &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}

	if !c.validateSSL {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	if c.proxyURL != "" {
		proxyURL, err := neturl.Parse(c.proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	c.httpClient = &http.Client{
		Transport: transport,
	}

	return c
}

func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = max
	}
}

func WithDefaultHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.defaultHeaders = append(c.defaultHeaders, request.Header{Key: key, Value: value})
	}
}

// WithValidateSSL enables or disables SSL certificate validation
func WithValidateSSL(validate bool) ClientOption {
	return func(c *Client) {
		c.validateSSL = validate
	}
}

// WithProxy sets the proxy URL for all requests
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

// Do sends an already-resolved request. Redirect handling and the
// timeout come from the request itself, so every call can differ.
func (c *Client) Do(ctx context.Context, req *request.Request) (*request.Response, error) {
	if err := ValidateURL(req.URL); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, req.Timeout())
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		body = strings.NewReader(*req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}

	for _, h := range c.defaultHeaders {
		httpReq.Header.Set(h.Key, h.Value)
	}

	// Request headers are applied in authoring order; a repeated name
	// overrides earlier values rather than stacking.
	for _, h := range req.Headers {
		httpReq.Header.Set(h.Key, h.Value)
	}

	client := c.httpClient
	if !req.FollowRedirects {
		clone := *c.httpClient
		clone.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		client = &clone
	} else if c.maxRedirects > 0 {
		clone := *c.httpClient
		max := c.maxRedirects
		clone.CheckRedirect = func(r *http.Request, via []*http.Request) error {
			if len(via) >= max {
				return http.ErrUseLastResponse
			}
			return nil
		}
		client = &clone
	}

	start := time.Now()
	httpResp, err := client.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	// Sorted so the displayed header order is stable between runs.
	keys := make([]string, 0, len(httpResp.Header))
	for k := range httpResp.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]request.Header, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, request.Header{Key: k, Value: httpResp.Header.Get(k)})
	}

	return &request.Response{
		Status:     httpResp.StatusCode,
		StatusText: statusText(httpResp.Status),
		Headers:    headers,
		Body:       respBody,
		Duration:   duration,
		URL:        httpReq.URL.String(),
	}, nil
}

// statusText strips the leading code from net/http's "200 OK" form.
func statusText(status string) string {
	_, text, found := strings.Cut(status, " ")
	if !found {
		return status
	}
	return text
}

// ValidateURL checks that a URL is well-formed and uses an allowed scheme
func ValidateURL(rawURL string) error {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return &URLError{URL: rawURL, Reason: err.Error()}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return &URLError{URL: rawURL, Reason: "unsupported scheme " + u.Scheme + " (only http and https are allowed)"}
	}

	if u.Host == "" {
		return &URLError{URL: rawURL, Reason: "missing host"}
	}

	return nil
}

// URLError reports a request URL the client refuses to send to.
type URLError struct {
	URL    string
	Reason string
}

func (e *URLError) Error() string {
	return "invalid URL " + e.URL + ": " + e.Reason
}
