package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/stitts-dev/nba-shotchart/internal/models"
)

// ClientOptions configures the stats.nba.com clients
type ClientOptions struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Cache             models.CacheProvider
	CacheTTL          time.Duration
}

// NBAStatsClient queries the stats.nba.com shot chart endpoint
type NBAStatsClient struct {
	httpClient  *http.Client
	baseURL     string
	cache       models.CacheProvider
	cacheTTL    time.Duration
	logger      *logrus.Logger
	rateLimiter *rate.Limiter
}

// NewNBAStatsClient creates a new stats.nba.com client
func NewNBAStatsClient(opts ClientOptions, logger *logrus.Logger) *NBAStatsClient {
	return &NBAStatsClient{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		cache:       opts.Cache,
		cacheTTL:    opts.CacheTTL,
		logger:      logger,
		rateLimiter: newLimiter(opts.RequestsPerSecond),
	}
}

func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// GetShotChart issues a single shotchartdetail request. There is no retry;
// a cached response is returned when a cache is configured.
func (c *NBAStatsClient) GetShotChart(ctx context.Context, query ShotChartQuery) (*ShotChartResponse, error) {
	params := query.Values().Encode()
	cacheKey := ShotChartCacheKey(query)

	if c.cache != nil {
		var cached ShotChartResponse
		if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
			c.logger.WithField("player_id", query.PlayerID).Debug("Shot chart served from cache")
			return &cached, nil
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/shotchartdetail?%s", c.baseURL, params)
	var resp ShotChartResponse
	if err := c.makeRequest(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch shot chart: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"player_id":   query.PlayerID,
		"season":      query.Season,
		"result_sets": len(resp.ResultSets),
	}).Info("Fetched shot chart")

	if c.cache != nil && c.cacheTTL > 0 {
		if err := c.cache.SetSimple(cacheKey, resp, c.cacheTTL); err != nil {
			c.logger.Warnf("Failed to cache shot chart: %v", err)
		}
	}

	return &resp, nil
}

// ShotChartCacheKey is the cache key of a query's response
func ShotChartCacheKey(query ShotChartQuery) string {
	return fmt.Sprintf("nbastats:shotchartdetail:%s", query.Values().Encode())
}

func (c *NBAStatsClient) makeRequest(ctx context.Context, url string, target interface{}) error {
	req, err := newStatsRequest(ctx, url)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// newStatsRequest builds a GET with the browser headers stats.nba.com
// requires before it answers
func newStatsRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	return req, nil
}
