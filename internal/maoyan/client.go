package maoyan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client is a client for the public Maoyan movie listing API.
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// CityByLatLng looks up the city containing the given coordinates.
func (c *Client) CityByLatLng(ctx context.Context, lat, lng float64) (City, error) {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lng", formatCoord(lng))

	var city City
	if err := c.getJSON(ctx, "/city/latlng", params, &city); err != nil {
		return nil, fmt.Errorf("failed to fetch city info: %w", err)
	}
	return city, nil
}

// Cinemas lists the cinemas showing a movie on a given date, nearest first.
func (c *Client) Cinemas(ctx context.Context, q CinemaQuery) (CinemaList, error) {
	if q.MovieID <= 0 {
		return CinemaList{}, fmt.Errorf("movie id is required")
	}
	if q.ShowDate == "" {
		return CinemaList{}, fmt.Errorf("show date is required")
	}

	var list CinemaList
	if err := c.getJSON(ctx, "/movie/select/cinemas", q.values(), &list); err != nil {
		return CinemaList{}, fmt.Errorf("failed to fetch cinemas: %w", err)
	}
	return list, nil
}

// TopRated returns the "top rated" movie list.
func (c *Client) TopRated(ctx context.Context) ([]RankedMovie, error) {
	var resp struct {
		MovieList []RankedMovie `json:"movieList"`
	}
	if err := c.getJSON(ctx, "/index/topRatedMovies", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch top rated movies: %w", err)
	}
	return resp.MovieList, nil
}

// SearchMovies searches movies by keyword within a city.
func (c *Client) SearchMovies(ctx context.Context, keyword string, cityID int64) (map[string]any, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("keyword is required")
	}
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("ci", strconv.FormatInt(cityID, 10))

	var result map[string]any
	if err := c.getJSON(ctx, "/search/movies", params, &result); err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return result, nil
}

// MovieDetail fetches the raw detail object for a movie.
func (c *Client) MovieDetail(ctx context.Context, movieID int64) (map[string]any, error) {
	params := url.Values{}
	params.Set("movieId", strconv.FormatInt(movieID, 10))

	var detail map[string]any
	if err := c.getJSON(ctx, "/movie/detail", params, &detail); err != nil {
		return nil, fmt.Errorf("failed to fetch movie detail: %w", err)
	}
	return detail, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	requestURL := c.BaseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Endpoint: path, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
