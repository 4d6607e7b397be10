package itinerary

import (
	"errors"
	"strings"
)

// ErrInvalidShareToken is returned for a share token that does not split
// into an itinerary ID and an owner ID.
var ErrInvalidShareToken = errors.New("invalid share token")

// CanEdit reports whether viewerID may mutate the itinerary: the viewer must
// be signed in (non-empty) and be the creator. Every server-side write path
// checks this; the presentation layer uses the same predicate to decide
// whether to offer edit controls at all.
func CanEdit(viewerID string, it *Itinerary) bool {
	return viewerID != "" && viewerID == it.CreatedBy
}

// ShareToken builds the composite "<itineraryID>-<ownerID>" token used to
// address an itinerary without requiring the viewer to be the owner.
// Identifiers are generated dash-free, so the first dash is an unambiguous
// separator.
func ShareToken(it *Itinerary) string {
	return it.ID + "-" + it.OwnerID
}

// ParseShareToken splits a composite share token into its itinerary and
// owner identifiers.
func ParseShareToken(token string) (itineraryID, ownerID string, err error) {
	itineraryID, ownerID, ok := strings.Cut(token, "-")
	if !ok || itineraryID == "" || ownerID == "" {
		return "", "", ErrInvalidShareToken
	}
	return itineraryID, ownerID, nil
}
