package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/shelfarr/shelfarr/internal/catalog"
)

const defaultBaseURL = "https://api.themoviedb.org"

// Client is a TMDB API client implementing catalog.Searcher.
type Client struct {
	client *resty.Client
	apiKey string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.client.SetBaseURL(url)
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	c := &Client{client: client, apiKey: apiKey}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries TMDB for candidates of the given kind, ranked by TMDB's
// own relevance order. "Not found" is an empty slice, never an error.
func (c *Client) Search(ctx context.Context, query string, kind catalog.MediaType) ([]catalog.Candidate, error) {
	var payload searchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key": c.apiKey,
			"query":   query,
		}).
		SetResult(&payload).
		Get("/3/search/" + string(kind))
	if err != nil {
		return nil, fmt.Errorf("tmdb search: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tmdb search: status %d", resp.StatusCode())
	}

	candidates := make([]catalog.Candidate, 0, len(payload.Results))
	for _, r := range payload.Results {
		candidates = append(candidates, toCandidate(r, kind))
	}
	return candidates, nil
}

// Details fetches rich metadata for one catalog entry. Returns nil for an
// unknown id.
func (c *Client) Details(ctx context.Context, id int64, kind catalog.MediaType) (*catalog.Details, error) {
	var payload detailsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetResult(&payload).
		Get(fmt.Sprintf("/3/%s/%d", kind, id))
	if err != nil {
		return nil, fmt.Errorf("tmdb details: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tmdb details: status %d", resp.StatusCode())
	}

	details := &catalog.Details{
		Candidate:    toCandidate(payload.searchResult, kind),
		Status:       payload.Status,
		Runtime:      payload.Runtime,
		SeasonCount:  payload.NumberOfSeasons,
		EpisodeCount: payload.NumberOfEpisodes,
	}
	for _, g := range payload.Genres {
		details.Genres = append(details.Genres, g.Name)
	}
	for _, n := range payload.Networks {
		details.Networks = append(details.Networks, n.Name)
	}
	return details, nil
}

func toCandidate(r searchResult, kind catalog.MediaType) catalog.Candidate {
	return catalog.Candidate{
		ID:          r.ID,
		Title:       r.title(),
		MediaType:   kind,
		Year:        r.year(),
		PosterURL:   imageURL(r.PosterPath, "w500"),
		BackdropURL: imageURL(r.BackdropPath, "w1280"),
		Overview:    r.Overview,
		Rating:      r.VoteAverage,
		VoteCount:   r.VoteCount,
		Popularity:  r.Popularity,
	}
}
