package sheets

import (
	"context"
	"time"
)

// Client is the interface for fetching worksheets from the spreadsheet
// backend. Report generation always reads fresh copies of both tables;
// any caching lives behind this interface, never in the report core.
type Client interface {
	FetchTable(ctx context.Context, worksheet string) (*Table, error)
}

// Config holds the connection settings for the spreadsheet backend.
type Config struct {
	SpreadsheetID string

	// BaseURL overrides the Google Docs host, used by tests.
	BaseURL string

	// RequestDelay throttles consecutive fetches to stay under the
	// anonymous gviz endpoint's rate limits.
	RequestDelay time.Duration

	// SnapshotDir, when set, persists the last good copy of every
	// worksheet so a transient fetch failure degrades to stale data
	// instead of an empty report.
	SnapshotDir string
}

// NewClient creates a worksheet client based on the provided configuration.
func NewClient(cfg Config) Client {
	return newGvizClient(cfg)
}
