package handlers

import (
	"net/http"
	"strconv"

	"campuswordle/internal/service"
)

// RankingHandler serves the leaderboard endpoints
type RankingHandler struct {
	rankingService *service.RankingService
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(rankingService *service.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// Overall handles GET /api/rankings. Without a limit the full ranking
// comes back; OverallRankings treats 0 as unbounded.
func (h *RankingHandler) Overall(w http.ResponseWriter, r *http.Request) {
	entries, err := h.rankingService.OverallRankings(queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to load rankings", err)
		return
	}
	respondData(w, http.StatusOK, entries)
}

// Games handles GET /api/rankings/games
func (h *RankingHandler) Games(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.rankingService.PuzzleSummaries(queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to load game summaries", err)
		return
	}
	respondData(w, http.StatusOK, summaries)
}

// Game handles GET /api/rankings/game/{id}
func (h *RankingHandler) Game(w http.ResponseWriter, r *http.Request) {
	puzzleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid puzzle ID", "", nil)
		return
	}
	entries, err := h.rankingService.GameRankings(puzzleID, queryLimit(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to load game rankings", err)
		return
	}
	respondData(w, http.StatusOK, entries)
}

// Me handles GET /api/rankings/me
func (h *RankingHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	stats, err := h.rankingService.UserStats(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to load user stats", err)
		return
	}
	position, err := h.rankingService.UserRankPosition(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to load rank position", err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"stats": stats,
		"rank":  position,
	})
}
