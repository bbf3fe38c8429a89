package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"campuswordle/internal/models"
	"campuswordle/internal/service"
)

// GameHandler serves the play endpoints
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// gameView is the game screen payload. The word stays server-side until the
// attempt is over.
type gameView struct {
	PuzzleID     int64    `json:"puzzleId,omitempty"`
	Level        int      `json:"level"`
	CurrentLevel int      `json:"currentLevel"`
	Hint         string   `json:"hint,omitempty"`
	WordLength   int      `json:"wordLength,omitempty"`
	MaxTries     int      `json:"maxTries"`
	IsReplay     bool     `json:"isReplay"`
	Guesses      []string `json:"guesses"`
	Completed    bool     `json:"completed"`
	Points       int      `json:"pointsEarned"`
	NoPuzzles    bool     `json:"noPuzzles,omitempty"`
}

// GetGame handles GET /api/game with an optional ?level=N
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	requestedLevel := 0
	if raw := r.URL.Query().Get("level"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid level", "", nil)
			return
		}
		requestedLevel = level
	}

	resolution, err := h.gameService.ResolveGame(user.ID, requestedLevel)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to resolve game", err)
		return
	}

	view := gameView{
		Level:        resolution.Level,
		CurrentLevel: resolution.CurrentLevel,
		MaxTries:     models.MaxTries,
		IsReplay:     resolution.IsReplay,
		Guesses:      []string{},
	}
	if resolution.Puzzle == nil {
		view.NoPuzzles = true
		respondData(w, http.StatusOK, view)
		return
	}

	view.PuzzleID = resolution.Puzzle.ID
	view.Hint = resolution.Puzzle.Hint
	view.WordLength = len(resolution.Puzzle.Word)
	if attempt := resolution.ExistingAttempt; attempt != nil {
		if guesses := attempt.Guesses(); guesses != nil {
			view.Guesses = guesses
		}
		view.Completed = attempt.Completed
		view.Points = attempt.PointsEarned
	}
	respondData(w, http.StatusOK, view)
}

// SubmitGuess handles POST /api/game/{id}/guess
func (h *GameHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	puzzleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid puzzle ID", "", nil)
		return
	}

	var req struct {
		Guess string `json:"guess"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	outcome, err := h.gameService.SubmitGuess(user.ID, puzzleID, req.Guess)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPuzzleNotFound):
			respondError(w, http.StatusNotFound, "Puzzle not found", "", nil)
		case errors.Is(err, service.ErrAlreadyCompleted):
			respondError(w, http.StatusConflict, "You have already finished this puzzle", "", nil)
		case errors.Is(err, service.ErrInvalidGuess):
			respondError(w, http.StatusBadRequest, err.Error(), "", nil)
		default:
			respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to submit guess", err)
		}
		return
	}
	respondData(w, http.StatusOK, outcome)
}

// GetLevels handles GET /api/levels
func (h *GameHandler) GetLevels(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	levels, err := h.gameService.AvailableLevels(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to list levels", err)
		return
	}
	respondData(w, http.StatusOK, levels)
}

// GetCompletedLevels handles GET /api/levels/completed
func (h *GameHandler) GetCompletedLevels(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	levels, err := h.gameService.CompletedLevels(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to list completed levels", err)
		return
	}
	respondData(w, http.StatusOK, levels)
}
