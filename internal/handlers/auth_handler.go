package handlers

import (
	"errors"
	"net/http"

	"campuswordle/internal/service"
	"campuswordle/internal/validation"
)

// AuthHandler serves registration, login and profile endpoints
type AuthHandler struct {
	authService    *service.AuthService
	oauthProviders map[string]OAuthProvider
	redirectBase   string
	appBaseURL     string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, oauthProviders map[string]OAuthProvider, redirectBase, appBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		oauthProviders: oauthProviders,
		redirectBase:   redirectBase,
		appBaseURL:     appBaseURL,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.Register(req.Username, req.Email, req.Password, req.PhoneNumber)
	if err != nil {
		h.authError(w, err, "Registration failed")
		return
	}
	respondData(w, http.StatusCreated, result)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
		Username   string `json:"username"`
		Password   string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Username
	}

	result, err := h.authService.Login(identifier, req.Password)
	if err != nil {
		h.authError(w, err, "Login failed")
		return
	}
	respondData(w, http.StatusOK, result)
}

// Guest handles POST /api/auth/guest
func (h *AuthHandler) Guest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceInfo []string `json:"deviceInfo"`
	}
	// body is optional for guest creation
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	result, err := h.authService.EnsureGuest(req.DeviceInfo)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not create guest account", "Guest creation failed", err)
		return
	}
	respondData(w, http.StatusCreated, result)
}

// Claim handles POST /api/auth/claim
func (h *AuthHandler) Claim(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	var req struct {
		Email    string `json:"email"`
		FullName string `json:"fullName"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.authService.ClaimProfile(user.ID, req.Email, req.FullName)
	if err != nil {
		h.authError(w, err, "Profile claim failed")
		return
	}
	respondData(w, http.StatusOK, updated)
}

// Phone handles POST /api/auth/phone
func (h *AuthHandler) Phone(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.authService.UpdatePhoneNumber(user.ID, req.PhoneNumber)
	if err != nil {
		h.authError(w, err, "Phone update failed")
		return
	}
	respondData(w, http.StatusOK, updated)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, GetUserFromContext(r.Context()))
}

// authError maps service errors to HTTP responses without leaking internals
func (h *AuthHandler) authError(w http.ResponseWriter, err error, logMsg string) {
	var validationErr validation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Message, "", nil)
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error(), "", nil)
	case errors.Is(err, service.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error(), "", nil)
	default:
		respondError(w, http.StatusInternalServerError, "Something went wrong", logMsg, err)
	}
}
