package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Request describes a single exchange with the platform API. It is ephemeral:
// built per call, mutated by the request middleware chain, discarded after
// the response resolves.
type Request struct {
	// Name is the stable binding name ("customers.list"), used in logs.
	Name string

	Method string

	// Path is a template relative to the base URL, with named parameters in
	// braces: "/customers/{id}". Absolute URLs are rejected before dispatch
	// so nothing can route around the middleware chain.
	Path string

	PathParams map[string]string
	Query      url.Values

	// Body, when non-nil, is JSON-encoded and sent with
	// Content-Type: application/json.
	Body any

	Header http.Header

	// Timeout overrides the client's default deadline for this call only.
	Timeout time.Duration
}

// SetHeader sets a header on the descriptor, allocating the map on first use
// so middleware can call it on a zero-value Request.
func (r *Request) SetHeader(key, value string) {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(key, value)
}

// resolvePath expands the path template against PathParams, escaping each
// value, and rejects anything that is not a relative path.
func (r *Request) resolvePath() (string, error) {
	if strings.Contains(r.Path, "://") || strings.HasPrefix(r.Path, "//") {
		return "", fmt.Errorf("absolute URL not allowed: %q", r.Path)
	}
	if u, err := url.Parse(r.Path); err == nil && u.IsAbs() {
		return "", fmt.Errorf("absolute URL not allowed: %q", r.Path)
	}

	path := r.Path
	for name, value := range r.PathParams {
		placeholder := "{" + name + "}"
		if !strings.Contains(path, placeholder) {
			return "", fmt.Errorf("path %q has no parameter %q", r.Path, name)
		}
		path = strings.ReplaceAll(path, placeholder, url.PathEscape(value))
	}
	if start := strings.IndexByte(path, '{'); start >= 0 {
		return "", fmt.Errorf("path %q has unresolved parameters", path)
	}
	return path, nil
}
