package config

import (
	"strconv"
	"time"
)

type ClientConfig interface {
	GetRequestTimeout() time.Duration
}

type Client struct{}

var _ ClientConfig = Client{}

// GetRequestTimeout is the per-request deadline for API calls. Individual
// requests may still override it on the descriptor.
func (Client) GetRequestTimeout() time.Duration {
	ms, err := strconv.Atoi(GetEnv("REQUEST_TIMEOUT_MS", "10000"))
	if err != nil || ms <= 0 {
		return 10 * time.Second
	}
	return time.Duration(ms) * time.Millisecond
}
