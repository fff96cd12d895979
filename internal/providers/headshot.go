package providers

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HeadshotClient downloads player photos
type HeadshotClient struct {
	httpClient  *http.Client
	baseURL     string
	logger      *logrus.Logger
	rateLimiter *rate.Limiter
}

// NewHeadshotClient creates a client for <BaseURL>/<player id>.png
func NewHeadshotClient(opts ClientOptions, logger *logrus.Logger) *HeadshotClient {
	return &HeadshotClient{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		logger:      logger,
		rateLimiter: newLimiter(opts.RequestsPerSecond),
	}
}

// GetHeadshot fetches and decodes the photo of a player
func (c *HeadshotClient) GetHeadshot(ctx context.Context, playerID int64) (image.Image, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/%d.png", c.baseURL, playerID)
	req, err := newStatsRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/png,image/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("headshot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("headshot: unexpected status code: %d", resp.StatusCode)
	}

	img, format, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode headshot: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"player_id": playerID,
		"format":    format,
		"bounds":    img.Bounds().String(),
	}).Debug("Downloaded headshot")

	return img, nil
}
