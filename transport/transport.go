// Package transport performs single HTTP exchanges against the platform API.
// It resolves paths against a configured base URL, applies ordered request
// and response middleware, and classifies failures into the error taxonomy
// in errors.go. It never recovers from anything: retry, refresh, and
// redirect decisions all belong to the layers above it.
package transport

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

	"github.com/rs/zerolog"
)

// DefaultTimeout applies to requests that carry no per-request deadline.
const DefaultTimeout = 10 * time.Second

// Settings configures a Client. BaseURL is the single origin plus version
// prefix ("https://api.example.com/api/v1"); it is immutable after New.
type Settings struct {
	BaseURL    string
	Timeout    time.Duration // Zero means DefaultTimeout
	HTTPClient *http.Client  // Optional; a plain client is built when nil
	Logger     zerolog.Logger
}

// Client issues requests to the configured base URL. Middleware chains are
// fixed at construction and never reordered.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        zerolog.Logger

	requestMW  []RequestMiddleware
	responseMW []ResponseMiddleware
}

// Option modifies a Client at construction time.
type Option func(*Client)

// WithRequestMiddleware appends to the ordered request chain.
func WithRequestMiddleware(mw ...RequestMiddleware) Option {
	return func(c *Client) {
		c.requestMW = append(c.requestMW, mw...)
	}
}

// WithResponseMiddleware appends to the ordered response chain.
func WithResponseMiddleware(mw ...ResponseMiddleware) Option {
	return func(c *Client) {
		c.responseMW = append(c.responseMW, mw...)
	}
}

// New creates a Client from settings and options.
func New(settings Settings, options ...Option) (*Client, error) {
	if settings.BaseURL == "" {
		return nil, fmt.Errorf("[transport.New] BaseURL is required")
	}

	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := settings.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(settings.BaseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
		log:        settings.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured origin + version prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one exchange. On 2xx it returns the envelope and a nil error.
// Non-2xx statuses come back as a classified *Error (after the response
// middleware chain has had its say); the envelope is returned alongside so
// callers can still inspect headers.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	path, err := req.resolvePath()
	if err != nil {
		return nil, NewError(ErrProtocol, 0, err.Error(), err)
	}

	for _, mw := range c.requestMW {
		if err := mw(req); err != nil {
			return nil, fmt.Errorf("request middleware: %w", err)
		}
	}

	httpReq, err := c.buildHTTPRequest(ctx, req, path)
	if err != nil {
		return nil, err
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	httpReq = httpReq.WithContext(callCtx)

	started := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.classifyTransportFailure(ctx, callCtx, req, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewError(ErrNetwork, httpResp.StatusCode, "reading response body", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}

	c.log.Debug().
		Str("binding", req.Name).
		Str("method", req.Method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(started)).
		Msg("api exchange")

	for _, mw := range c.responseMW {
		if err := mw(req, resp); err != nil {
			return resp, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, classifyStatus(resp.StatusCode, serverDetail(body))
	}
	return resp, nil
}

func (c *Client) buildHTTPRequest(ctx context.Context, req *Request, path string) (*http.Request, error) {
	reqURL := c.baseURL + path
	if len(req.Query) > 0 {
		reqURL += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, NewError(ErrProtocol, 0, "encode request body", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, reqURL, bodyReader)
	if err != nil {
		return nil, NewError(ErrProtocol, 0, "build request", err)
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	return httpReq, nil
}

// classifyTransportFailure separates the three ways a request can fail to
// complete: the caller cancelled it, a deadline expired, or the network let
// us down. Timeouts are internal cancellations, so the caller's context is
// consulted first.
func (c *Client) classifyTransportFailure(callerCtx, callCtx context.Context, req *Request, err error) *Error {
	switch {
	case callerCtx.Err() != nil && errors.Is(callerCtx.Err(), context.Canceled):
		return NewError(ErrCancelled, 0, req.Name, err)
	case errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded:
		return NewError(ErrTimeout, 0, req.Name, err)
	case errors.Is(err, context.Canceled):
		return NewError(ErrCancelled, 0, req.Name, err)
	default:
		return NewError(ErrNetwork, 0, req.Name, err)
	}
}
