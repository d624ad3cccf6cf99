package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// gvizClient fetches worksheets through the spreadsheet's CSV export
// endpoint. It keeps a short-lived session cache so the filters endpoint
// and the report endpoint don't double-fetch within one page load, and
// falls back to the on-disk snapshot when the upstream is unreachable.
type gvizClient struct {
	cfg        Config
	httpClient *http.Client
	snapshots  *SnapshotStore

	// The report handler fetches both worksheets concurrently; the
	// throttle mutex also serializes those fetches so the request
	// spacing actually holds.
	throttleMutex sync.Mutex
	lastRequest   time.Time

	cache      map[string]*cacheEntry
	cacheMutex sync.Mutex
}

type cacheEntry struct {
	table      *Table
	expiration time.Time
}

const sessionCacheTTL = 30 * time.Second

func newGvizClient(cfg Config) *gvizClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://docs.google.com"
	}
	return &gvizClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		snapshots: NewSnapshotStore(cfg.SnapshotDir),
		cache:     make(map[string]*cacheEntry),
	}
}

func (c *gvizClient) FetchTable(ctx context.Context, worksheet string) (*Table, error) {
	if t, ok := c.getFromCache(worksheet); ok {
		return t, nil
	}

	c.throttle()

	table, err := c.fetch(ctx, worksheet)
	if err != nil {
		// Degrade to the last good snapshot before giving up.
		if snap, snapErr := c.snapshots.Load(worksheet); snapErr == nil && snap != nil {
			log.Warn().Err(err).Str("worksheet", worksheet).
				Msg("Fetch failed, serving last good snapshot")
			return snap, nil
		}
		return nil, err
	}

	c.addToCache(worksheet, table)
	if err := c.snapshots.Save(table); err != nil {
		log.Warn().Err(err).Str("worksheet", worksheet).Msg("Failed to persist snapshot")
	}
	return table, nil
}

func (c *gvizClient) fetch(ctx context.Context, worksheet string) (*Table, error) {
	params := url.Values{}
	params.Set("tqx", "out:csv")
	params.Set("sheet", worksheet)

	fetchURL := fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?%s",
		c.cfg.BaseURL, c.cfg.SpreadsheetID, params.Encode())

	log.Info().Str("worksheet", worksheet).Msg("Fetching worksheet")
	log.Debug().Str("url", fetchURL).Msg("Worksheet fetch details")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch worksheet %s: %w", worksheet, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch worksheet %s: status %d: %s", worksheet, resp.StatusCode, string(body))
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1 // worksheets are ragged by nature
	values, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse worksheet %s: %w", worksheet, err)
	}

	table := NewTable(worksheet, values)
	log.Info().Str("worksheet", worksheet).Int("rows", len(table.Rows)).Msg("Worksheet fetched")
	return table, nil
}

func (c *gvizClient) throttle() {
	if c.cfg.RequestDelay == 0 {
		return
	}

	c.throttleMutex.Lock()
	defer c.throttleMutex.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Dur("wait", wait).Msg("Throttling worksheet fetch")
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

func (c *gvizClient) getFromCache(worksheet string) (*Table, bool) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	entry, ok := c.cache[worksheet]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiration) {
		delete(c.cache, worksheet)
		return nil, false
	}
	log.Debug().Str("worksheet", worksheet).Msg("Session cache hit")
	return entry.table, true
}

func (c *gvizClient) addToCache(worksheet string, t *Table) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	c.cache[worksheet] = &cacheEntry{
		table:      t,
		expiration: time.Now().Add(sessionCacheTTL),
	}
}
