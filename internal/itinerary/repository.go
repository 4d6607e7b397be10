package itinerary

import "context"

// Repository defines persistence for itinerary documents. Implementations
// scope every operation to an owner, matching the per-user collection layout
// of the backing document store.
type Repository interface {
	// Create stores a new document. The caller has already assigned the ID
	// and stamped creator identity and creation time.
	Create(ctx context.Context, it *Itinerary) error

	// ListByOwner returns all of an owner's itineraries, newest first.
	// Documents without a creation time sort as oldest.
	ListByOwner(ctx context.Context, ownerID string) ([]*Itinerary, error)

	// GetByOwnerAndID returns a single document, or ErrItineraryNotFound if
	// no document matches. Absence is a normal outcome, not a fault.
	GetByOwnerAndID(ctx context.Context, ownerID, itineraryID string) (*Itinerary, error)

	// Update merges the itinerary's mutable fields into the stored document.
	// Creator identity and creation time are never rewritten. Returns
	// ErrItineraryNotFound if the document no longer exists.
	Update(ctx context.Context, it *Itinerary) error

	// Delete permanently removes a document. Irreversible.
	Delete(ctx context.Context, ownerID, itineraryID string) error
}
