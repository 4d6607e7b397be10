package itinerary

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use MongoRepository.
type InMemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]*Itinerary
}

// NewInMemoryRepository creates a new in-memory itinerary repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{docs: make(map[string]*Itinerary)}
}

// Create stores a new document.
func (r *InMemoryRepository) Create(_ context.Context, it *Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *it
	r.docs[it.ID] = &cpy
	return nil
}

// ListByOwner returns all of an owner's itineraries, newest first.
func (r *InMemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*Itinerary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Itinerary
	for _, it := range r.docs {
		if it.OwnerID == ownerID {
			cpy := *it
			out = append(out, &cpy)
		}
	}

	// Newest first; a missing creation time sorts as the zero time, i.e. oldest.
	sort.SliceStable(out, func(i, j int) bool {
		ti := zeroIfNil(out[i].CreatedAt)
		tj := zeroIfNil(out[j].CreatedAt)
		return ti.After(tj)
	})

	return out, nil
}

// GetByOwnerAndID returns a single document.
func (r *InMemoryRepository) GetByOwnerAndID(_ context.Context, ownerID, itineraryID string) (*Itinerary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.docs[itineraryID]
	if !ok || it.OwnerID != ownerID {
		return nil, ErrItineraryNotFound
	}

	cpy := *it
	return &cpy, nil
}

// Update merges mutable fields into the stored document.
func (r *InMemoryRepository) Update(_ context.Context, it *Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.docs[it.ID]
	if !ok || existing.OwnerID != it.OwnerID {
		return ErrItineraryNotFound
	}

	updated := *it
	// Creator identity and creation time are immutable after create.
	updated.CreatedBy = existing.CreatedBy
	updated.CreatorProfile = existing.CreatorProfile
	updated.CreatedAt = existing.CreatedAt
	r.docs[it.ID] = &updated
	return nil
}

// Delete permanently removes a document.
func (r *InMemoryRepository) Delete(_ context.Context, ownerID, itineraryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.docs[itineraryID]
	if !ok || existing.OwnerID != ownerID {
		return ErrItineraryNotFound
	}

	delete(r.docs, itineraryID)
	return nil
}

func zeroIfNil(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
