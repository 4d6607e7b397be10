package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripweaver/tripweaver/internal/api/models"
)

// Service provides itinerary operations: save (create-or-update), list,
// fetch, shared fetch, delete, and the per-day activity mutations. All write
// paths are gated on ownership.
type Service struct {
	repo Repository
}

// NewService creates a new itinerary service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save persists an itinerary for the owner. A request without an identifier
// creates a new document; one with an identifier updates that document.
// Centralizing the branch here keeps callers from duplicate-creating an
// already saved itinerary.
func (s *Service) Save(ctx context.Context, ownerID, avatarURL string, input *models.SaveItineraryRequest) (*models.Itinerary, error) {
	it := fromSaveRequest(input)
	it.OwnerID = ownerID

	if it.IsNew() {
		now := time.Now()
		it.ID = generateItineraryID()
		it.CreatedBy = ownerID
		it.CreatorProfile = avatarURL
		it.CreatedAt = &now

		if err := s.repo.Create(ctx, &it); err != nil {
			return nil, fmt.Errorf("creating itinerary: %w", err)
		}

		result := ToAPI(&it, ownerID)
		return &result, nil
	}

	existing, err := s.repo.GetByOwnerAndID(ctx, ownerID, it.ID)
	if err != nil {
		return nil, err
	}
	if !CanEdit(ownerID, existing) {
		return nil, ErrNotOwner
	}

	if err := s.repo.Update(ctx, &it); err != nil {
		return nil, fmt.Errorf("updating itinerary: %w", err)
	}

	// Reflect the immutable fields the update did not touch.
	it.CreatedBy = existing.CreatedBy
	it.CreatorProfile = existing.CreatorProfile
	it.CreatedAt = existing.CreatedAt

	result := ToAPI(&it, ownerID)
	return &result, nil
}

// List returns all of the viewer's saved itineraries, newest first.
func (s *Service) List(ctx context.Context, viewerID string) (*models.ItineraryList, error) {
	docs, err := s.repo.ListByOwner(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	items := make([]models.Itinerary, 0, len(docs))
	for _, it := range docs {
		items = append(items, ToAPI(it, viewerID))
	}

	return &models.ItineraryList{Items: items}, nil
}

// Get returns one of the viewer's own itineraries.
func (s *Service) Get(ctx context.Context, viewerID, itineraryID string) (*models.Itinerary, error) {
	it, err := s.repo.GetByOwnerAndID(ctx, viewerID, itineraryID)
	if err != nil {
		return nil, err
	}

	result := ToAPI(it, viewerID)
	return &result, nil
}

// GetShared resolves a composite "<itineraryId>-<ownerId>" token. The viewer
// need not be the owner, and may be anonymous; the response still reports
// whether this particular viewer could edit.
func (s *Service) GetShared(ctx context.Context, viewerID, token string) (*models.Itinerary, error) {
	itineraryID, ownerID, err := ParseShareToken(token)
	if err != nil {
		return nil, err
	}

	it, err := s.repo.GetByOwnerAndID(ctx, ownerID, itineraryID)
	if err != nil {
		return nil, err
	}

	result := ToAPI(it, viewerID)
	return &result, nil
}

// Delete permanently removes one of the viewer's itineraries.
func (s *Service) Delete(ctx context.Context, viewerID, itineraryID string) error {
	it, err := s.repo.GetByOwnerAndID(ctx, viewerID, itineraryID)
	if err != nil {
		return err
	}
	if !CanEdit(viewerID, it) {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, viewerID, itineraryID)
}

// AddActivity inserts an activity into a day of a saved itinerary and
// persists the re-sorted result.
func (s *Service) AddActivity(ctx context.Context, viewerID, itineraryID string, dayIndex int, input *models.ActivityInput) (*models.Itinerary, error) {
	return s.mutate(ctx, viewerID, itineraryID, func(it Itinerary) (Itinerary, error) {
		return AddActivity(it, dayIndex, activityFromInput(input))
	})
}

// EditActivity replaces an activity within a day of a saved itinerary and
// persists the re-sorted result.
func (s *Service) EditActivity(ctx context.Context, viewerID, itineraryID string, dayIndex, activityIndex int, input *models.ActivityInput) (*models.Itinerary, error) {
	return s.mutate(ctx, viewerID, itineraryID, func(it Itinerary) (Itinerary, error) {
		return EditActivity(it, dayIndex, activityIndex, activityFromInput(input))
	})
}

// DeleteActivity removes an activity from a day of a saved itinerary.
func (s *Service) DeleteActivity(ctx context.Context, viewerID, itineraryID string, dayIndex, activityIndex int) (*models.Itinerary, error) {
	return s.mutate(ctx, viewerID, itineraryID, func(it Itinerary) (Itinerary, error) {
		return DeleteActivity(it, dayIndex, activityIndex)
	})
}

// mutate loads a document, checks the edit gate, applies a pure mutation,
// and persists the result.
func (s *Service) mutate(ctx context.Context, viewerID, itineraryID string, op func(Itinerary) (Itinerary, error)) (*models.Itinerary, error) {
	existing, err := s.repo.GetByOwnerAndID(ctx, viewerID, itineraryID)
	if err != nil {
		return nil, err
	}
	if !CanEdit(viewerID, existing) {
		return nil, ErrNotOwner
	}

	updated, err := op(*existing)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("persisting mutation: %w", err)
	}

	result := ToAPI(&updated, viewerID)
	return &result, nil
}

// ToAPI converts a domain itinerary to its API shape for a given viewer.
func ToAPI(it *Itinerary, viewerID string) models.Itinerary {
	days := make([]models.Day, 0, len(it.Days))
	for _, d := range it.Days {
		activities := make([]models.Activity, 0, len(d.Activities))
		for _, a := range d.Activities {
			activities = append(activities, models.Activity{
				Time:        a.TimeRange,
				Location:    a.Location,
				Description: a.Description,
				Type:        string(a.Type),
			})
		}
		days = append(days, models.Day{Day: d.Number, Title: d.Title, Activities: activities})
	}

	out := models.Itinerary{
		ID:             it.ID,
		Title:          it.Title,
		Info:           models.ItineraryInfo{Weather: it.Info.Weather},
		Destination:    it.Destination,
		Month:          it.Month,
		Itinerary:      days,
		Budget:         models.BudgetBreakdown(it.Budget),
		CreatedBy:      it.CreatedBy,
		CreatorProfile: it.CreatorProfile,
		Editable:       CanEdit(viewerID, it),
	}

	if it.Accommodation != nil {
		out.Accommodation = &models.Accommodation{
			Budget:   models.AccommodationTier(it.Accommodation.Budget),
			MidRange: models.AccommodationTier(it.Accommodation.MidRange),
			Luxury:   models.AccommodationTier(it.Accommodation.Luxury),
		}
	}
	if it.CreatedAt != nil {
		ts := models.Timestamp(*it.CreatedAt)
		out.CreatedAt = &ts
	}
	if !it.IsNew() {
		out.ShareToken = ShareToken(it)
	}

	return out
}

// fromSaveRequest converts an API save request to a domain itinerary.
// Activity type tags are coerced to the closed enumeration on the way in.
func fromSaveRequest(input *models.SaveItineraryRequest) Itinerary {
	days := make([]Day, 0, len(input.Itinerary))
	for _, d := range input.Itinerary {
		activities := make([]Activity, 0, len(d.Activities))
		for _, a := range d.Activities {
			activities = append(activities, Activity{
				TimeRange:   a.Time,
				Location:    a.Location,
				Description: a.Description,
				Type:        ParseActivityType(a.Type),
			})
		}
		days = append(days, Day{Number: d.Day, Title: d.Title, Activities: SortActivities(activities)})
	}

	it := Itinerary{
		ID:          input.ID,
		Title:       input.Title,
		Info:        Info(input.Info),
		Destination: input.Destination,
		Month:       input.Month,
		Days:        days,
		Budget:      Budget(input.Budget),
	}

	if input.Accommodation != nil {
		it.Accommodation = &Accommodation{
			Budget:   AccommodationTier(input.Accommodation.Budget),
			MidRange: AccommodationTier(input.Accommodation.MidRange),
			Luxury:   AccommodationTier(input.Accommodation.Luxury),
		}
	}

	return it
}

// activityFromInput converts an API activity payload to the domain shape.
func activityFromInput(input *models.ActivityInput) Activity {
	return Activity{
		TimeRange:   input.Time,
		Location:    input.Location,
		Description: input.Description,
		Type:        ParseActivityType(input.Type),
	}
}

// generateItineraryID generates a dash-free itinerary ID. Dash-free matters:
// the share token uses the first dash as its separator.
func generateItineraryID() string {
	return "itn_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:20]
}

// IsValidationError reports whether err is an activity validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
