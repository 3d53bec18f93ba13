// Package avasho provides a client for the Avasho text-to-speech gateway.
//
// The gateway exposes two synthesis routes:
//   - short speech: up to 1000 characters, synthesized synchronously
//   - long speech: submitted for background synthesis, answered with a job token and a time estimate
//
// All synthesis happens remotely. The client validates arguments, builds the request body in the
// exact shape each route expects, authenticates with the gateway token and maps the
// double-nested response envelope into typed results.
//
// Basic usage:
//
//	client := avasho.NewClient(token, avasho.WithTimeout(30*time.Second))
//
//	result, err := client.SynthesizeShort(ctx, avasho.NewShortSpeechRequest("سلام دنیا"))
//
//	job, err := client.SynthesizeLong(ctx, avasho.NewLongSpeechRequest(longText))
package avasho

import (
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://partai.gw.isahab.ir"
	DefaultTimeout = 60 * time.Second

	ShortSpeechRoute = "/TextToSpeech/v1/speech-synthesys"
	LongSpeechRoute  = "/TextToSpeech/v1/longText"

	// MaxShortTextLength is counted in characters, not bytes.
	MaxShortTextLength = 1000

	// DefaultMaxResponseSize caps how much of a gateway response is read. Base64 audio is large.
	DefaultMaxResponseSize int64 = 32 << 20

	tokenHeader = "gateway-token"
)

// HTTPClient is the transport used by Client. *http.Client satisfies it.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

var _ HTTPClient = http.DefaultClient

// Client talks to the Avasho gateway. Its configuration is fixed at construction,
// so a single Client can be shared by any number of goroutines.
type Client struct {
	token      string
	baseURL    string
	timeout    time.Duration
	maxBody    int64
	httpClient HTTPClient
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout bounds each request. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithMaxResponseSize overrides DefaultMaxResponseSize. Non-positive values are ignored.
func WithMaxResponseSize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBody = size
		}
	}
}

// WithHTTPClient replaces the default transport.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a gateway client authenticated with token.
// No network I/O happens here.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:      token,
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
		maxBody:    DefaultMaxResponseSize,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}
