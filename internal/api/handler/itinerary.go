package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tripweaver/tripweaver/internal/api/models"
	"github.com/tripweaver/tripweaver/internal/api/response"
	"github.com/tripweaver/tripweaver/internal/featureflags"
	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/user"
)

// ItineraryHandler handles saved itinerary endpoints.
type ItineraryHandler struct {
	itineraryService *itinerary.Service
	userService      *user.Service
	flags            *featureflags.Service
}

// NewItineraryHandler creates a new ItineraryHandler. The flags service may
// be nil.
func NewItineraryHandler(itineraryService *itinerary.Service, userService *user.Service, flags *featureflags.Service) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		userService:      userService,
		flags:            flags,
	}
}

// List handles GET /v1/me/itineraries - the viewer's saved itineraries,
// newest first.
func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	list, err := h.itineraryService.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, r, "failed to list itineraries")
		return
	}

	response.JSON(w, r, http.StatusOK, list)
}

// Save handles POST /v1/me/itineraries - create or update an itinerary.
// A body without an id creates; a body with an id updates that document.
func (h *ItineraryHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	var req models.SaveItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if req.Title == "" {
		response.BadRequest(w, r, "validation error", []models.FieldError{
			{Field: "title", Message: "is required"},
		})
		return
	}

	created := req.ID == ""
	avatarURL := h.userService.AvatarURL(r.Context(), userID)

	saved, err := h.itineraryService.Save(r.Context(), userID, avatarURL, &req)
	if err != nil {
		h.writeItineraryError(w, r, err, "failed to save itinerary")
		return
	}

	if created {
		response.Created(w, r, "/v1/me/itineraries/"+saved.ID, saved)
		return
	}
	response.JSON(w, r, http.StatusOK, saved)
}

// Get handles GET /v1/me/itineraries/{itineraryId}.
func (h *ItineraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	it, err := h.itineraryService.Get(r.Context(), userID, chi.URLParam(r, "itineraryId"))
	if err != nil {
		h.writeItineraryError(w, r, err, "failed to load itinerary")
		return
	}

	response.JSON(w, r, http.StatusOK, it)
}

// Delete handles DELETE /v1/me/itineraries/{itineraryId}.
func (h *ItineraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	if err := h.itineraryService.Delete(r.Context(), userID, chi.URLParam(r, "itineraryId")); err != nil {
		h.writeItineraryError(w, r, err, "failed to delete itinerary")
		return
	}

	response.NoContent(w, r)
}

// GetShared handles GET /v1/itineraries/{shareToken} - the shared view.
// No authentication required; an authenticated owner gets an editable view.
func (h *ItineraryHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	if h.flags != nil && h.flags.IsSharedViewsDisabled(r.Context()) {
		response.NotFound(w, r, "itinerary not found")
		return
	}

	// Viewer may be anonymous here.
	userID := GetUserID(r.Context())

	it, err := h.itineraryService.GetShared(r.Context(), userID, chi.URLParam(r, "shareToken"))
	if err != nil {
		if errors.Is(err, itinerary.ErrInvalidShareToken) {
			response.NotFound(w, r, "itinerary not found")
			return
		}
		h.writeItineraryError(w, r, err, "failed to load itinerary")
		return
	}

	response.JSON(w, r, http.StatusOK, it)
}

// AddActivity handles POST /v1/me/itineraries/{itineraryId}/days/{dayIndex}/activities.
func (h *ItineraryHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	dayIndex, ok := indexParam(w, r, "dayIndex")
	if !ok {
		return
	}

	var input models.ActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	it, err := h.itineraryService.AddActivity(r.Context(), userID, chi.URLParam(r, "itineraryId"), dayIndex, &input)
	if err != nil {
		h.writeItineraryError(w, r, err, "failed to add activity")
		return
	}

	response.JSON(w, r, http.StatusOK, it)
}

// EditActivity handles PUT /v1/me/itineraries/{itineraryId}/days/{dayIndex}/activities/{activityIndex}.
func (h *ItineraryHandler) EditActivity(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	dayIndex, ok := indexParam(w, r, "dayIndex")
	if !ok {
		return
	}
	activityIndex, ok := indexParam(w, r, "activityIndex")
	if !ok {
		return
	}

	var input models.ActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	it, err := h.itineraryService.EditActivity(r.Context(), userID, chi.URLParam(r, "itineraryId"), dayIndex, activityIndex, &input)
	if err != nil {
		h.writeItineraryError(w, r, err, "failed to edit activity")
		return
	}

	response.JSON(w, r, http.StatusOK, it)
}

// DeleteActivity handles DELETE /v1/me/itineraries/{itineraryId}/days/{dayIndex}/activities/{activityIndex}.
func (h *ItineraryHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	dayIndex, ok := indexParam(w, r, "dayIndex")
	if !ok {
		return
	}
	activityIndex, ok := indexParam(w, r, "activityIndex")
	if !ok {
		return
	}

	it, err := h.itineraryService.DeleteActivity(r.Context(), userID, chi.URLParam(r, "itineraryId"), dayIndex, activityIndex)
	if err != nil {
		h.writeItineraryError(w, r, err, "failed to delete activity")
		return
	}

	response.JSON(w, r, http.StatusOK, it)
}

// writeItineraryError maps domain errors onto problem responses.
func (h *ItineraryHandler) writeItineraryError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, itinerary.ErrItineraryNotFound):
		response.NotFound(w, r, "itinerary not found")
	case errors.Is(err, itinerary.ErrNotOwner):
		response.Forbidden(w, r, "only the owner may modify this itinerary")
	case errors.Is(err, itinerary.ErrDayOutOfRange):
		response.BadRequest(w, r, "day index out of range", nil)
	case errors.Is(err, itinerary.ErrActivityOutOfRange):
		response.BadRequest(w, r, "activity index out of range", nil)
	case itinerary.IsValidationError(err):
		response.BadRequest(w, r, err.Error(), nil)
	default:
		response.InternalError(w, r, fallback)
	}
}

// indexParam parses a non-negative integer path parameter, writing a 400
// response if it is malformed.
func indexParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 {
		response.BadRequest(w, r, name+" must be a non-negative integer", nil)
		return 0, false
	}
	return idx, true
}
