package api

import (
	"context"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

var bindingHealthCheck = Binding{Name: "health.check", Method: "GET", Path: "/health"}

var healthBindings = []Binding{bindingHealthCheck}

// HealthGroup covers the unauthenticated /health probe. It rides the same
// transport as everything else; the auth middleware simply has no token to
// attach when the store is empty.
type HealthGroup struct {
	t *transport.Client
}

// Health is the liveness report.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Version  string `json:"version,omitempty"`
}

// Check probes the API.
func (g *HealthGroup) Check(ctx context.Context) (Health, error) {
	return call[Health](ctx, g.t, bindingHealthCheck, nil, nil, nil)
}
