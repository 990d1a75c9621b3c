package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dan9191/customer360/internal/config"
	"github.com/sirupsen/logrus"
)

// Client downloads the XML communications feed published by the messaging gateway
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a feed client for cfg.EventsFeedURL
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.EventsFeedURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Source names the feed for logs and errors
func (c *Client) Source() string {
	return c.url
}

// Fetch returns the raw feed body
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("Fetched %d bytes from events feed %s", len(body), c.url)
	return body, nil
}
