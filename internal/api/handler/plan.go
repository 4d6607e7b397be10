package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/tripweaver/tripweaver/internal/api/models"
	"github.com/tripweaver/tripweaver/internal/api/response"
	"github.com/tripweaver/tripweaver/internal/featureflags"
	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/planner"
)

// GenerationEnqueuer hands generation requests to the background worker.
type GenerationEnqueuer interface {
	EnqueueGeneration(ctx context.Context, userID string, req planner.GenerationRequest) (string, error)
}

// PlanHandler handles itinerary generation and destination suggestion
// endpoints.
type PlanHandler struct {
	plannerService *planner.Service
	enqueuer       GenerationEnqueuer
	flags          *featureflags.Service
}

// NewPlanHandler creates a new PlanHandler. The enqueuer may be nil when
// async generation is not configured; the flags service may be nil.
func NewPlanHandler(plannerService *planner.Service, enqueuer GenerationEnqueuer, flags *featureflags.Service) *PlanHandler {
	return &PlanHandler{
		plannerService: plannerService,
		enqueuer:       enqueuer,
		flags:          flags,
	}
}

// Generate handles POST /v1/plan/itinerary:generate - synchronous generation.
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	it, err := h.plannerService.GenerateItinerary(r.Context(), toGenerationRequest(req))
	if err != nil {
		if errors.Is(err, planner.ErrGenerationFailed) {
			response.BadGateway(w, r, "itinerary generation is unavailable right now")
			return
		}
		response.InternalError(w, r, "generation failed")
		return
	}

	out := itinerary.ToAPI(it, userID)
	// A fresh plan has no owner yet; the requester may always edit it.
	out.Editable = true
	response.JSON(w, r, http.StatusOK, out)
}

// Enqueue handles POST /v1/plan/itinerary:enqueue - asynchronous generation.
// The itinerary is generated and saved by the worker; the client polls the
// itinerary list for the result.
func (h *PlanHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	if h.enqueuer == nil {
		response.ServiceUnavailable(w, r, "async generation is not configured")
		return
	}
	if h.flags != nil && h.flags.IsAsyncGenerationDisabled(r.Context()) {
		response.ServiceUnavailable(w, r, "async generation is temporarily disabled")
		return
	}

	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	jobID, err := h.enqueuer.EnqueueGeneration(r.Context(), userID, toGenerationRequest(req))
	if err != nil {
		response.ServiceUnavailable(w, r, "unable to enqueue generation")
		return
	}

	response.Accepted(w, r, "/v1/me/itineraries", models.EnqueueGenerationResponse{
		JobID:  jobID,
		Status: "queued",
	})
}

// Destinations handles GET /v1/plan/destinations - seasonal destination
// suggestions for the current date.
func (h *PlanHandler) Destinations(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	suggestions, err := h.plannerService.SuggestDestinations(r.Context(), time.Now())
	if err != nil {
		if errors.Is(err, planner.ErrGenerationFailed) {
			response.BadGateway(w, r, "destination suggestions are unavailable right now")
			return
		}
		response.InternalError(w, r, "suggestion lookup failed")
		return
	}

	response.JSON(w, r, http.StatusOK, toDestinationSuggestions(suggestions))
}

func (h *PlanHandler) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (*models.GenerateItineraryRequest, bool) {
	var req models.GenerateItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return nil, false
	}

	if errs := req.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation error", errs)
		return nil, false
	}

	return &req, true
}

func toGenerationRequest(req *models.GenerateItineraryRequest) planner.GenerationRequest {
	return planner.GenerationRequest{
		Location:   req.Location,
		Month:      req.Month,
		Days:       req.Days,
		Activities: req.Activities,
		Type:       planner.TravelType(req.Type),
	}
}

func toDestinationSuggestions(s *planner.DestinationSuggestions) models.DestinationSuggestions {
	out := models.DestinationSuggestions{
		DomesticDestinations: make([]models.Destination, 0, len(s.Domestic)),
		ForeignDestinations:  make([]models.Destination, 0, len(s.Foreign)),
	}
	for _, d := range s.Domestic {
		out.DomesticDestinations = append(out.DomesticDestinations, models.Destination{
			Destination: d.Name,
			Reason:      d.Reason,
			ImageURL:    d.ImageURL,
		})
	}
	for _, d := range s.Foreign {
		out.ForeignDestinations = append(out.ForeignDestinations, models.Destination{
			Destination: d.Name,
			Reason:      d.Reason,
			ImageURL:    d.ImageURL,
		})
	}
	return out
}
