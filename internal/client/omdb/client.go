// Package omdb is a client for the OMDb movie catalog: paged title search
// and full details by IMDb id. Every call performs exactly one request;
// there is no retry, caching or rate limiting.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moviedb/internal/client/models"
	"github.com/dmitrijs2005/moviedb/internal/common"
	"github.com/dmitrijs2005/moviedb/internal/logging"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

const maxErrorBody = 64 << 10

// SearchResult is one page of search results.
type SearchResult struct {
	Query        string
	Page         int
	Movies       []models.Movie
	TotalResults int
	TotalPages   int
}

// Client talks to the catalog over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  logging.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client, e.g. to set a timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    http.DefaultClient,
		logger:  logging.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// envelope holds the fields shared by every catalog response.
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type searchResponse struct {
	envelope
	Search       []models.Movie `json:"Search"`
	TotalResults string         `json:"totalResults"`
}

type detailsResponse struct {
	envelope
	models.Movie
}

// Search returns page (1-based) of titles matching query.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &common.ValidationError{Field: "query", Message: "Search query is required"}
	}
	if page < 1 {
		return nil, &common.ValidationError{Field: "page", Message: "Page must be 1 or greater"}
	}

	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if err := negative(resp.envelope); err != nil {
		return nil, err
	}

	total, err := strconv.Atoi(resp.TotalResults)
	if err != nil {
		return nil, &ProviderError{Message: "invalid totalResults " + strconv.Quote(resp.TotalResults), Err: err}
	}

	movies := resp.Search
	if movies == nil {
		movies = []models.Movie{}
	}

	c.logger.Debug(ctx, "catalog search", "query", query, "page", page, "total_results", total)
	return &SearchResult{
		Query:        query,
		Page:         page,
		Movies:       movies,
		TotalResults: total,
		TotalPages:   TotalPages(total),
	}, nil
}

// Details returns the full record of one title, plot included.
func (c *Client) Details(ctx context.Context, imdbID string) (*models.Movie, error) {
	if strings.TrimSpace(imdbID) == "" {
		return nil, &common.ValidationError{Field: "imdbID", Message: "Movie id is required"}
	}

	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")

	var resp detailsResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if err := negative(resp.envelope); err != nil {
		return nil, err
	}

	c.logger.Debug(ctx, "catalog details", "imdb_id", imdbID)
	m := resp.Movie
	return &m, nil
}

func negative(e envelope) error {
	if e.Response == "True" {
		return nil
	}
	msg := e.Error
	if msg == "" {
		msg = "unexpected response"
	}
	return &ProviderError{Message: msg}
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return &ProviderError{Message: "invalid base url", Err: err}
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &ProviderError{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "catalog request failed", "error", err)
		return &ProviderError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn(ctx, "catalog returned non-200", "status", resp.StatusCode)
		// A bad key comes back as 401 with the usual negative envelope.
		var env envelope
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(body, &env) == nil && env.Response == "False" && env.Error != "" {
			return negative(env)
		}
		return &ProviderError{Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Message: "failed to decode response", Err: err}
	}
	return nil
}
