package transport

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope handed to the response middleware chain and, on
// 2xx, to the caller. Ephemeral per call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the response body into v. A 2xx body that does not match
// the declared output shape is a protocol error, not a caller bug.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return NewError(ErrProtocol, r.StatusCode, "undecodable response body", err)
	}
	return nil
}

// serverDetail pulls the human-readable detail out of an error response.
// The platform API (FastAPI) reports errors as {"detail": "..."} where detail
// is usually a string but may be a structured validation list.
func serverDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		return detail
	}
	return string(envelope.Detail)
}
