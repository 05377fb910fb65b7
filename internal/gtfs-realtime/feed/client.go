// Package feed fetches and decodes the GTFS-Realtime trip-update and
// vehicle-position feeds. A fetch that fails falls back to a fresh-enough
// on-disk cache; when neither is usable the accessors return nil and the
// query engine degrades to schedule-only results.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/ptvplanner/internal/common/config"
	"github.com/ptvplanner/internal/common/logger"
)

const (
	HeaderAPIKey = "Ocp-Apim-Subscription-Key"
	UserAgent    = "ptvplanner/1.0"
)

type Client struct {
	cfg        config.GTFSRealtimeConfig
	feeds      *config.FeedsConfig
	cacheDir   string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(cfg config.GTFSRealtimeConfig, feeds *config.FeedsConfig, cacheDir string, log logger.Logger) *Client {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	return &Client{
		cfg:        cfg,
		feeds:      feeds,
		cacheDir:   cacheDir,
		httpClient: client,
		logger:     log,
	}
}

// TripUpdates returns the current trip-update records, or nil when the feed
// is not configured or unavailable.
func (c *Client) TripUpdates(ctx context.Context) []TripUpdate {
	fm := c.fetchFeed(ctx, c.feeds.TripUpdates)
	return TripUpdatesFromFeed(fm)
}

// VehiclePositions returns the current vehicle-position records, or nil when
// the feed is not configured or unavailable.
func (c *Client) VehiclePositions(ctx context.Context) []VehiclePosition {
	fm := c.fetchFeed(ctx, c.feeds.VehiclePositions)
	return VehiclePositionsFromFeed(fm)
}

func (c *Client) fetchFeed(ctx context.Context, ep *config.FeedEndpoint) *gtfsrtpb.FeedMessage {
	if ep == nil {
		return nil
	}

	body, err := c.download(ctx, ep.URL)
	if err != nil {
		c.logger.Warn("Feed fetch failed, trying disk cache", "feed", ep.Name, "error", err)
		body, err = loadCache(c.cacheDir, ep.Name, c.cfg.CacheMaxAge)
		if err != nil {
			c.logger.Warn("No usable cached feed, continuing without live data", "feed", ep.Name, "error", err)
			return nil
		}
	} else {
		if err := saveCache(c.cacheDir, ep.Name, body); err != nil {
			c.logger.Warn("Failed to cache feed", "feed", ep.Name, "error", err)
		}
	}

	fm := &gtfsrtpb.FeedMessage{}
	if err := proto.Unmarshal(body, fm); err != nil {
		c.logger.Warn("Failed to decode feed, continuing without live data", "feed", ep.Name, "error", err)
		return nil
	}

	c.logger.Debug("Fetched feed", "feed", ep.Name, "entities", len(fm.Entity))
	return fm
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.cfg.APIKey != "" {
		req.Header.Set(HeaderAPIKey, c.cfg.APIKey)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/x-protobuf")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
