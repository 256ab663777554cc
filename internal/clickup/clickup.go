// Package clickup creates release-note pages in a ClickUp doc.
package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.clickup.com/api/v3"
	AppURL         = "https://app.clickup.com"

	defaultTimeout = 30 * time.Second
	userAgent      = "relnotes/1"
)

// Config addresses a parent page inside a ClickUp doc.
type Config struct {
	Token        string
	WorkspaceID  string
	DocID        string
	ParentPageID string
	// BaseURL overrides DefaultBaseURL.
	BaseURL string
	Timeout time.Duration
}

// Page is the part of the create response the caller uses.
type Page struct {
	ID string `json:"id"`
}

// APIError is returned for a non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("failed to create ClickUp page: %d - %s", e.StatusCode, e.Body)
}

// Client creates pages. A create is a single request and is never retried.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
	cfg        Config
}

func New(logger *zap.Logger, cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("clickup: API token is required")
	}
	if cfg.WorkspaceID == "" || cfg.DocID == "" {
		return nil, fmt.Errorf("clickup: workspace and doc IDs are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("clickup"),
		cfg:        cfg,
	}, nil
}

type createPageRequest struct {
	Name         string `json:"name"`
	ParentPageID string `json:"parent_page_id,omitempty"`
	Content      string `json:"content"`
}

// CreatePage creates a page named name with a markdown body under the
// configured parent page.
func (c *Client) CreatePage(ctx context.Context, name, content string) (*Page, error) {
	body, err := json.Marshal(createPageRequest{
		Name:         name,
		ParentPageID: c.cfg.ParentPageID,
		Content:      content,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal page: %w", err)
	}

	url := fmt.Sprintf("%s/workspaces/%s/docs/%s/pages", c.cfg.BaseURL, c.cfg.WorkspaceID, c.cfg.DocID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", c.cfg.Token)

	c.logger.Debug("creating page",
		zap.String("name", name),
		zap.String("doc_id", c.cfg.DocID),
		zap.Int("bytes", len(content)),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("page creation rejected",
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var page Page
	if err := json.Unmarshal(respBody, &page); err != nil {
		return nil, fmt.Errorf("decoding page response: %w", err)
	}
	c.logger.Info("page created",
		zap.String("page_id", page.ID),
		zap.Duration("duration", time.Since(start)),
	)
	return &page, nil
}

// PageURL is the browser link to a page.
func (c *Client) PageURL(pageID string) string {
	return fmt.Sprintf("%s/%s/docs/%s?block=%s", AppURL, c.cfg.WorkspaceID, c.cfg.DocID, pageID)
}
