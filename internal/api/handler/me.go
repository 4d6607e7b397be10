package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tripweaver/tripweaver/internal/api/models"
	"github.com/tripweaver/tripweaver/internal/api/response"
	"github.com/tripweaver/tripweaver/internal/auth"
	"github.com/tripweaver/tripweaver/internal/user"
)

// MeHandler handles the authenticated user's profile endpoints.
type MeHandler struct {
	userService *user.Service
	authService *auth.Service
}

// NewMeHandler creates a new MeHandler.
func NewMeHandler(userService *user.Service, authService *auth.Service) *MeHandler {
	return &MeHandler{
		userService: userService,
		authService: authService,
	}
}

// GetMe handles GET /v1/me - the authenticated user's profile.
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	me, err := h.userService.GetMe(r.Context(), userID)
	if err != nil {
		response.InternalError(w, r, "failed to load profile")
		return
	}

	// Email lives with the credentials, not the profile.
	if account, err := h.authService.GetUser(r.Context(), userID); err == nil {
		me.Email = account.Email
	}

	response.JSON(w, r, http.StatusOK, me)
}

// UpdateMe handles PATCH /v1/me - partial profile update.
func (h *MeHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	var input models.MeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	me, err := h.userService.UpdateMe(r.Context(), userID, &input)
	if err != nil {
		response.InternalError(w, r, "failed to update profile")
		return
	}

	if account, err := h.authService.GetUser(r.Context(), userID); err == nil {
		me.Email = account.Email
	}

	response.JSON(w, r, http.StatusOK, me)
}
