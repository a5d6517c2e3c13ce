package transport

import (
	"github.com/google/uuid"
)

// RequestMiddleware runs before dispatch and may mutate the descriptor
// (inject headers, stamp IDs). Returning an error aborts the call.
type RequestMiddleware func(*Request) error

// ResponseMiddleware runs after the exchange, in registration order. It may
// inspect the envelope, trigger side effects, and surface a replacement
// error; the first non-nil error wins and is returned to the caller.
type ResponseMiddleware func(*Request, *Response) error

// RequestID stamps an X-Request-ID header on every outbound request so a
// client call can be correlated with the server's logs. A caller-supplied ID
// is left alone.
func RequestID() RequestMiddleware {
	return func(req *Request) error {
		if req.Header.Get("X-Request-ID") == "" {
			req.SetHeader("X-Request-ID", uuid.New().String())
		}
		return nil
	}
}
