package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fourrow/game-server/internal/repository/postgres"
)

const statsCacheKey = "stats:gameplay"

// Cache is the narrow cache contract the handlers consume; backed by
// Redis in production, nil when Redis is unavailable.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// StatsHandler serves aggregate gameplay statistics and the leaderboard.
type StatsHandler struct {
	Repo     *postgres.ResultRepo
	Cache    Cache // optional, can be nil
	CacheTTL time.Duration
}

func NewStatsHandler(repo *postgres.ResultRepo, cache Cache, cacheTTL time.Duration) *StatsHandler {
	return &StatsHandler{Repo: repo, Cache: cache, CacheTTL: cacheTTL}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// GetStats returns gameplay aggregates, cache-aside with a short TTL.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Cache != nil {
		if cached, err := h.Cache.Get(ctx, statsCacheKey); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	stats, err := h.Repo.GetStats(ctx)
	if err != nil {
		log.Printf("[STATS] Failed to aggregate: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Error retrieving statistics")
		return
	}

	if h.Cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if cacheErr := h.Cache.Set(ctx, statsCacheKey, data, h.CacheTTL); cacheErr != nil {
				log.Printf("[STATS] Warning: failed to cache stats: %v", cacheErr)
			}
		}
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// GetLeaderboard returns the top players by wins.
func (h *StatsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	standings, err := h.Repo.GetLeaderboard(r.Context(), limit)
	if err != nil {
		log.Printf("[STATS] Failed to query leaderboard: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Error retrieving leaderboard")
		return
	}

	respondWithJSON(w, http.StatusOK, standings)
}
