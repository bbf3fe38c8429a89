package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"campuswordle/internal/service"
	"campuswordle/internal/validation"
)

// AdminHandler serves the admin console endpoints
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Setup handles POST /api/admin/setup, open only while no admin exists
func (h *AdminHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.adminService.CreateAdmin(req.Username, req.Password)
	if err != nil {
		h.adminError(w, err, "Admin setup failed")
		return
	}
	respondData(w, http.StatusCreated, result)
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.adminService.LoginAdmin(req.Username, req.Password)
	if err != nil {
		h.adminError(w, err, "Admin login failed")
		return
	}
	respondData(w, http.StatusOK, result)
}

// Overview handles GET /api/admin/overview
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.adminService.GetOverview()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to load overview", err)
		return
	}
	respondData(w, http.StatusOK, overview)
}

// ListPuzzles handles GET /api/admin/puzzles
func (h *AdminHandler) ListPuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := h.adminService.ListPuzzles()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to list puzzles", err)
		return
	}
	// the console needs the words, so they are serialized explicitly here
	type puzzleView struct {
		ID        int64  `json:"id"`
		Word      string `json:"word"`
		Hint      string `json:"hint,omitempty"`
		Active    bool   `json:"active"`
		CreatedAt string `json:"createdAt"`
	}
	views := make([]puzzleView, 0, len(puzzles))
	for _, p := range puzzles {
		views = append(views, puzzleView{
			ID:        p.ID,
			Word:      p.Word,
			Hint:      p.Hint,
			Active:    p.Active,
			CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	respondData(w, http.StatusOK, views)
}

// CreatePuzzle handles POST /api/admin/puzzles
func (h *AdminHandler) CreatePuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word   string `json:"word"`
		Hint   string `json:"hint"`
		Active *bool  `json:"active"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	puzzle, err := h.adminService.CreatePuzzle(req.Word, req.Hint, active)
	if err != nil {
		h.adminError(w, err, "Puzzle creation failed")
		return
	}
	respondData(w, http.StatusCreated, map[string]interface{}{
		"id":        puzzle.ID,
		"word":      puzzle.Word,
		"hint":      puzzle.Hint,
		"active":    puzzle.Active,
		"createdAt": puzzle.CreatedAt,
	})
}

// TogglePuzzle handles POST /api/admin/puzzles/{id}/toggle
func (h *AdminHandler) TogglePuzzle(w http.ResponseWriter, r *http.Request) {
	puzzleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid puzzle ID", "", nil)
		return
	}
	puzzle, err := h.adminService.TogglePuzzle(puzzleID)
	if err != nil {
		h.adminError(w, err, "Puzzle toggle failed")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"id":     puzzle.ID,
		"active": puzzle.Active,
	})
}

// DeletePuzzle handles DELETE /api/admin/puzzles/{id}
func (h *AdminHandler) DeletePuzzle(w http.ResponseWriter, r *http.Request) {
	puzzleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid puzzle ID", "", nil)
		return
	}
	if err := h.adminService.DeletePuzzle(puzzleID); err != nil {
		h.adminError(w, err, "Puzzle deletion failed")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Something went wrong", "Failed to list users", err)
		return
	}
	respondData(w, http.StatusOK, users)
}

// DeleteUser handles DELETE /api/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}
	if err := h.adminService.DeleteUser(userID); err != nil {
		h.adminError(w, err, "User deletion failed")
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

func (h *AdminHandler) adminError(w http.ResponseWriter, err error, logMsg string) {
	var validationErr validation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Message, "", nil)
	case errors.Is(err, service.ErrAdminExists),
		errors.Is(err, service.ErrWordTaken):
		respondError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error(), "", nil)
	case errors.Is(err, service.ErrPuzzleNotFound),
		errors.Is(err, service.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error(), "", nil)
	default:
		respondError(w, http.StatusInternalServerError, "Something went wrong", logMsg, err)
	}
}
