// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"pixyo/internal/cache"
	"pixyo/internal/unsplash"
)

// Unsplash proxies stock photo search. Responses are cached briefly in
// Valkey since the editor fires the same query while the user types.
type Unsplash struct {
	client *unsplash.Client // nil when no access key is configured
	cache  *cache.SearchCache
}

// NewUnsplash creates a new Unsplash handler group.
func NewUnsplash(client *unsplash.Client, searchCache *cache.SearchCache) *Unsplash {
	return &Unsplash{client: client, cache: searchCache}
}

// Search proxies GET /api/unsplash/search?query=&page=&perPage=.
func (h *Unsplash) Search(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		writeError(w, http.StatusServiceUnavailable, "unsplash_unconfigured", "Stock photo search is not configured.")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeValidation(w, map[string]string{"query": "A search query is required."})
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))

	var cacheKey string
	if h.cache != nil {
		cacheKey = h.cache.Key(query, page, perPage)
		if payload, ok := h.cache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(payload)
			return
		}
	}

	result, err := h.client.Search(r.Context(), query, page, perPage)
	if err != nil {
		slog.Error("unsplash search failed", "query", query, "error", err)
		writeUpstream(w, err)
		return
	}

	if h.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			h.cache.Set(r.Context(), cacheKey, payload)
		}
	}
	writeJSON(w, http.StatusOK, result)
}
