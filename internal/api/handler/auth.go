package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tripweaver/tripweaver/internal/api/models"
	"github.com/tripweaver/tripweaver/internal/api/response"
	"github.com/tripweaver/tripweaver/internal/auth"
	"github.com/tripweaver/tripweaver/internal/featureflags"
	"github.com/tripweaver/tripweaver/internal/user"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *auth.Service
	userService *user.Service
	flags       *featureflags.Service
}

// NewAuthHandler creates a new AuthHandler. The flags service may be nil.
func NewAuthHandler(authService *auth.Service, userService *user.Service, flags *featureflags.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		flags:       flags,
	}
}

// Signup handles POST /v1/auth/signup - email/password registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if h.flags != nil && !h.flags.IsSignupsEnabled(r.Context()) {
		response.ServiceUnavailable(w, r, "signups are temporarily closed")
		return
	}

	var req auth.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	// Validate request
	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation error", toFieldErrors(errs))
		return
	}

	tokenResp, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			response.Conflict(w, r, "an account with this email already exists")
			return
		}
		response.InternalError(w, r, "signup failed")
		return
	}

	// Seed the profile so the account shows up with a display name right
	// away. Profile creation failing should not fail the signup.
	if tokenResp.User != nil {
		_ = h.userService.EnsureProfile(r.Context(), tokenResp.User.ID, req.DisplayName)
	}

	response.JSON(w, r, http.StatusCreated, tokenResp)
}

// Login handles POST /v1/auth/login - email/password authentication.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	// Validate request
	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation error", toFieldErrors(errs))
		return
	}

	tokenResp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Unauthorized(w, r, "invalid email or password")
			return
		}
		response.InternalError(w, r, "authentication failed")
		return
	}

	response.JSON(w, r, http.StatusOK, tokenResp)
}

// RefreshToken handles POST /v1/auth/refresh - refresh access token.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	// Validate request
	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation error", toFieldErrors(errs))
		return
	}

	// Refresh the token
	tokenResp, err := h.authService.RefreshAccessToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			response.Unauthorized(w, r, "invalid refresh token")
			return
		}
		if errors.Is(err, auth.ErrRefreshTokenExpired) {
			response.Unauthorized(w, r, "refresh token has expired")
			return
		}
		if errors.Is(err, auth.ErrUserNotFound) {
			response.Unauthorized(w, r, "user not found")
			return
		}

		response.InternalError(w, r, "token refresh failed")
		return
	}

	response.JSON(w, r, http.StatusOK, tokenResp)
}

// Logout handles POST /v1/auth/logout - revoke current session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if req.RefreshToken == "" {
		response.BadRequest(w, r, "refreshToken is required", nil)
		return
	}

	// Revoke the refresh token
	if err := h.authService.RevokeRefreshToken(r.Context(), req.RefreshToken); err != nil {
		// Log error but don't expose details
		response.InternalError(w, r, "logout failed")
		return
	}

	response.NoContent(w, r)
}

// LogoutAll handles POST /v1/auth/logout-all - revoke all sessions for the user.
// This endpoint requires authentication.
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	// Get user ID from context (set by auth middleware)
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	// Revoke all refresh tokens for the user
	if err := h.authService.RevokeAllTokens(r.Context(), userID); err != nil {
		response.InternalError(w, r, "logout failed")
		return
	}

	response.NoContent(w, r)
}

func toFieldErrors(errs []auth.FieldError) []models.FieldError {
	fieldErrors := make([]models.FieldError, len(errs))
	for i, e := range errs {
		fieldErrors[i] = models.FieldError{
			Field:   e.Field,
			Message: e.Message,
			Code:    e.Code,
		}
	}
	return fieldErrors
}
