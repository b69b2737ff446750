package notion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/khoward/notionbridge/internal/model"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"
	defaultTimeout = 30 * time.Second

	// MaxPageSize is the hard page-size ceiling of the query endpoint.
	// Larger requests are clamped, never rejected.
	MaxPageSize = 100

	// DefaultMaxRounds bounds the pagination loop in QueryAll.
	DefaultMaxRounds = 10
)

// Client talks to the Notion API. It performs no retries: remote
// failures surface immediately and the caller decides what to do.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, primarily for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// NewClient creates a Notion API client authenticated with the
// integration token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: defaultBaseURL,
		token:   token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query is the body of a database query request. Filter and Sorts are
// kept raw and forwarded to the API untouched.
type Query struct {
	Filter      json.RawMessage `json:"filter,omitempty"`
	Sorts       json.RawMessage `json:"sorts,omitempty"`
	StartCursor string          `json:"start_cursor,omitempty"`
	PageSize    int             `json:"page_size,omitempty"`
}

// QueryResult is one page of query results. NextCursor is only
// meaningful while HasMore is true.
type QueryResult struct {
	Object     string       `json:"object"`
	Results    []model.Page `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor *string      `json:"next_cursor"`
}

// QueryDatabase fetches a single page of records. The page size is
// clamped to MaxPageSize regardless of what the caller asked for.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, q Query) (*QueryResult, error) {
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", body)
	if err != nil {
		return nil, err
	}

	var result QueryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}

	return &result, nil
}

// QueryAll walks the database cursor by cursor, accumulating results
// until the remote reports no more pages or maxRounds is reached.
// Hitting the round cap is deliberate, silent truncation: the returned
// slice may be incomplete and that is not an error. The second return is
// the number of rounds performed.
func (c *Client) QueryAll(ctx context.Context, databaseID string, filter json.RawMessage, pageSize, maxRounds int) ([]model.Page, int, error) {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	var pages []model.Page
	cursor := ""
	rounds := 0

	for rounds < maxRounds {
		result, err := c.QueryDatabase(ctx, databaseID, Query{
			Filter:      filter,
			StartCursor: cursor,
			PageSize:    pageSize,
		})
		if err != nil {
			return nil, rounds, err
		}

		pages = append(pages, result.Results...)
		rounds++

		if !result.HasMore || result.NextCursor == nil {
			break
		}
		cursor = *result.NextCursor
	}

	return pages, rounds, nil
}

// RetrievePageRaw fetches a page object and returns the wire payload
// untouched.
func (c *Client) RetrievePageRaw(ctx context.Context, pageID string) (json.RawMessage, error) {
	data, err := c.do(ctx, http.MethodGet, "/pages/"+pageID, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// BlockList is one page of a block children listing.
type BlockList struct {
	Results    []model.Block `json:"results"`
	HasMore    bool          `json:"has_more"`
	NextCursor *string       `json:"next_cursor"`
}

// ListBlockChildren fetches the direct children blocks of a page or
// block.
func (c *Client) ListBlockChildren(ctx context.Context, blockID string) (*BlockList, error) {
	data, err := c.do(ctx, http.MethodGet, "/blocks/"+blockID+"/children", nil)
	if err != nil {
		return nil, err
	}

	var list BlockList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse block list: %w", err)
	}

	return &list, nil
}

// SearchDatabases lists every database the integration can reach. The
// result objects are returned raw.
func (c *Client) SearchDatabases(ctx context.Context) ([]json.RawMessage, error) {
	body := []byte(`{"filter":{"property":"object","value":"database"}}`)

	data, err := c.do(ctx, http.MethodPost, "/search", body)
	if err != nil {
		return nil, err
	}

	var result struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return result.Results, nil
}

// RetrieveDatabase fetches a database's schema.
func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (*model.Database, error) {
	data, err := c.do(ctx, http.MethodGet, "/databases/"+databaseID, nil)
	if err != nil {
		return nil, err
	}

	var db model.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("failed to parse database schema: %w", err)
	}

	return &db, nil
}

// do performs a single request against the API and returns the response
// body, or an APIError for non-200 statuses.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, data)
	}

	return data, nil
}
