package api

import (
	"context"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

var (
	bindingERPStatus         = Binding{Name: "erp.sync_status", Method: "GET", Path: "/erp/status"}
	bindingERPTestConnection = Binding{Name: "erp.test_connection", Method: "POST", Path: "/erp/connect"}
	bindingERPSetMappings    = Binding{Name: "erp.set_mappings", Method: "POST", Path: "/erp/mappings"}
	bindingERPGetMappings    = Binding{Name: "erp.get_mappings", Method: "GET", Path: "/erp/mappings/{mapping_type}"}
	bindingERPSyncCustomers  = Binding{Name: "erp.sync_customers", Method: "POST", Path: "/erp/sync/customers"}
	bindingERPSyncSales      = Binding{Name: "erp.sync_sales", Method: "POST", Path: "/erp/sync/sales"}
	bindingERPSyncAll        = Binding{Name: "erp.sync_all", Method: "POST", Path: "/erp/sync/all"}
	bindingERPSyncHistory    = Binding{Name: "erp.sync_history", Method: "GET", Path: "/erp/sync-history"}
	bindingERPDataSummary    = Binding{Name: "erp.data_summary", Method: "GET", Path: "/erp/data-summary"}
)

var erpBindings = []Binding{
	bindingERPStatus,
	bindingERPTestConnection,
	bindingERPSetMappings,
	bindingERPGetMappings,
	bindingERPSyncCustomers,
	bindingERPSyncSales,
	bindingERPSyncAll,
	bindingERPSyncHistory,
	bindingERPDataSummary,
}

// ERPGroup covers the /erp integration endpoints.
type ERPGroup struct {
	t *transport.Client
}

// ERPConnection describes the ERP server to test against. The password and
// API key travel to our backend, never to a third party.
type ERPConnection struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	APIKey   string `json:"api_key,omitempty"`
	Timeout  int    `json:"timeout,omitempty"` // Seconds; server defaults to 30
}

// SyncStatus is the integration's current standing.
type SyncStatus struct {
	ConnectionStatus string           `json:"connection_status"`
	LastSync         string           `json:"last_sync,omitempty"`
	RecentSyncs      []map[string]any `json:"recent_syncs,omitempty"`
	PendingSyncs     int              `json:"pending_syncs"`
	FailedSyncs      int              `json:"failed_syncs"`
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	Status            string   `json:"status"`
	RecordsProcessed  int      `json:"records_processed"`
	RecordsSuccessful int      `json:"records_successful"`
	RecordsFailed     int      `json:"records_failed"`
	Errors            []string `json:"errors,omitempty"`
	Duration          float64  `json:"duration"`
	Timestamp         string   `json:"timestamp"`
}

// DataMapping converts one ERP field to a platform field.
type DataMapping struct {
	SourceField string `json:"source_field"`
	TargetField string `json:"target_field"`
	Transform   string `json:"transform,omitempty"`
}

// MappingConfig installs mappings of one type ("customers", "sales",
// "products").
type MappingConfig struct {
	MappingType string        `json:"mapping_type"`
	Mappings    []DataMapping `json:"mappings"`
}

// Status returns the sync standing.
func (g *ERPGroup) Status(ctx context.Context) (SyncStatus, error) {
	return call[SyncStatus](ctx, g.t, bindingERPStatus, nil, nil, nil)
}

// TestConnection checks the ERP server is reachable with the given settings.
func (g *ERPGroup) TestConnection(ctx context.Context, conn ERPConnection) (SyncStatus, error) {
	return call[SyncStatus](ctx, g.t, bindingERPTestConnection, nil, nil, conn)
}

// SetMappings installs a field-mapping configuration.
func (g *ERPGroup) SetMappings(ctx context.Context, cfg MappingConfig) error {
	_, err := call[struct{}](ctx, g.t, bindingERPSetMappings, nil, nil, cfg)
	return err
}

// Mappings returns the installed mappings of one type.
func (g *ERPGroup) Mappings(ctx context.Context, mappingType string) ([]DataMapping, error) {
	return call[[]DataMapping](ctx, g.t, bindingERPGetMappings, map[string]string{"mapping_type": mappingType}, nil, nil)
}

// SyncCustomers pulls customers from the ERP.
func (g *ERPGroup) SyncCustomers(ctx context.Context) (SyncResult, error) {
	return call[SyncResult](ctx, g.t, bindingERPSyncCustomers, nil, nil, nil)
}

// SyncSales pulls sales from the ERP.
func (g *ERPGroup) SyncSales(ctx context.Context) (SyncResult, error) {
	return call[SyncResult](ctx, g.t, bindingERPSyncSales, nil, nil, nil)
}

// SyncAll pulls everything.
func (g *ERPGroup) SyncAll(ctx context.Context) (SyncResult, error) {
	return call[SyncResult](ctx, g.t, bindingERPSyncAll, nil, nil, nil)
}

// SyncHistory returns past sync runs.
func (g *ERPGroup) SyncHistory(ctx context.Context) ([]SyncResult, error) {
	return call[[]SyncResult](ctx, g.t, bindingERPSyncHistory, nil, nil, nil)
}

// DataSummary returns per-entity record counts.
func (g *ERPGroup) DataSummary(ctx context.Context) (map[string]map[string]any, error) {
	return call[map[string]map[string]any](ctx, g.t, bindingERPDataSummary, nil, nil, nil)
}
