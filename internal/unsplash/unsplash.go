// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package unsplash is a thin client for the Unsplash photo search API.
// The handler layer proxies search requests through it so the access key
// never reaches the browser.
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pixyo/internal/ai"
)

// Photo is the trimmed search result shape returned to the editor:
// enough to place the image and attribute the photographer, nothing else.
type Photo struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	URLRegular  string `json:"url_regular"`
	URLSmall    string `json:"url_small"`
	URLFull     string `json:"url_full"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Author      string `json:"author"`
	AuthorLink  string `json:"author_link"`
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Page       int     `json:"page"`
	Photos     []Photo `json:"photos"`
}

// Client talks to the Unsplash REST API.
type Client struct {
	accessKey string
	baseURL   string
	http      *http.Client
}

// New creates an Unsplash client. Returns nil when no access key is
// configured; callers treat a nil client as "feature unavailable".
func New(accessKey string) *Client {
	if accessKey == "" {
		return nil
	}
	return &Client{
		accessKey: accessKey,
		baseURL:   "https://api.unsplash.com",
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Search runs a photo search. page is 1-based; perPage is clamped to
// the API maximum of 30.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 30 {
		perPage = 30
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unsplash read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Typed so the handler can forward a meaningful status (403 on a
		// revoked key, 429 on rate limits) instead of a blanket 500.
		return nil, &ai.UpstreamError{Provider: "unsplash", Status: resp.StatusCode, Body: string(body)}
	}

	var raw searchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unsplash unmarshal: %w", err)
	}

	result := &SearchResult{
		Total:      raw.Total,
		TotalPages: raw.TotalPages,
		Page:       page,
		Photos:     make([]Photo, 0, len(raw.Results)),
	}
	for _, r := range raw.Results {
		result.Photos = append(result.Photos, Photo{
			ID:          r.ID,
			Description: r.AltDescription,
			URLRegular:  r.URLs.Regular,
			URLSmall:    r.URLs.Small,
			URLFull:     r.URLs.Full,
			Width:       r.Width,
			Height:      r.Height,
			Author:      r.User.Name,
			AuthorLink:  r.User.Links.HTML,
		})
	}
	return result, nil
}

// --- Unsplash API wire types ---

type searchResponse struct {
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Results    []struct {
		ID             string `json:"id"`
		AltDescription string `json:"alt_description"`
		Width          int    `json:"width"`
		Height         int    `json:"height"`
		URLs           struct {
			Full    string `json:"full"`
			Regular string `json:"regular"`
			Small   string `json:"small"`
		} `json:"urls"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}
