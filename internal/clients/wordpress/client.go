// Package wordpress provides a client for the CMS REST API
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/interfaces"
	"github.com/bobmcallan/kessan/internal/models"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultPerPage  = 100
	DefaultMaxPages = 50
	DefaultPostType = "company"
)

// Client implements the RosterClient interface
type Client struct {
	baseURL     string
	username    string
	appPassword string
	postType    string
	perPage     int
	maxPages    int
	httpClient  *http.Client
	logger      *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithPostType sets the CMS post type that carries the roster
func WithPostType(postType string) ClientOption {
	return func(c *Client) {
		c.postType = postType
	}
}

// WithPaging sets the page size and the page cap
func WithPaging(perPage, maxPages int) ClientOption {
	return func(c *Client) {
		if perPage > 0 {
			c.perPage = perPage
		}
		if maxPages > 0 {
			c.maxPages = maxPages
		}
	}
}

// NewClient creates a new CMS client
func NewClient(baseURL, username, appPassword string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     baseURL,
		username:    username,
		appPassword: appPassword,
		postType:    DefaultPostType,
		perPage:     DefaultPerPage,
		maxPages:    DefaultMaxPages,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchRoster pages through the published roster posts. Entries without
// a valid four-character stock code are skipped, and pagination stops
// on the first short page or at the page cap.
func (c *Client) FetchRoster(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company

	for page := 1; page <= c.maxPages; page++ {
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(c.perPage))
		params.Set("page", strconv.Itoa(page))
		params.Set("_fields", "id,stock_code,title")

		body, err := c.get(ctx, c.postPath(), params)
		if err != nil {
			return nil, fmt.Errorf("roster page %d: %w", page, err)
		}

		posts := gjson.ParseBytes(body).Array()
		for _, post := range posts {
			code := post.Get("stock_code").String()
			if !common.IsValidCode(code) {
				c.logger.Warn().Str("stock_code", code).Msg("skipping roster entry with invalid code")
				continue
			}
			companies = append(companies, models.Company{
				Code:   code,
				Name:   post.Get("title.rendered").String(),
				PostID: int(post.Get("id").Int()),
			})
		}

		if len(posts) < c.perPage {
			break
		}
	}

	c.logger.Info().Int("companies", len(companies)).Msg("roster fetched from CMS")
	return companies, nil
}

// UpdateCompany pushes derived fields back onto the company's post.
func (c *Client) UpdateCompany(ctx context.Context, company models.Company, fields map[string]any) error {
	if company.PostID == 0 {
		return fmt.Errorf("company %s has no CMS post", company.Code)
	}

	payload, err := json.Marshal(map[string]any{"meta": fields})
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	path := fmt.Sprintf("%s/%d", c.postPath(), company.PostID)
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.appPassword)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	c.logger.Debug().Str("code", company.Code).Int("post_id", company.PostID).Msg("CMS post updated")
	return nil
}

// APIError represents a CMS error response
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("CMS API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

func (c *Client) postPath() string {
	return "/wp-json/wp/v2/" + c.postType
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.appPassword)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	return body, nil
}

// Ensure Client implements RosterClient
var _ interfaces.RosterClient = (*Client)(nil)
